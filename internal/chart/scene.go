// Package chart renders report data as standalone SVG documents.
//
// Layout code builds a Scene out of Rect, Line and Text primitives; the Scene
// is turned into markup by a single serializer, WriteTo.
package chart

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// Element is one drawable primitive of a Scene.
type Element interface {
	element()
}

type Rect struct {
	X, Y          int
	Width, Height int
	Fill          string
}

type Line struct {
	X1, Y1, X2, Y2 int
	Stroke         string
}

type Text struct {
	X, Y    int
	Size    int
	Fill    string
	Anchor  string
	Content string
}

func (Rect) element() {}
func (Line) element() {}
func (Text) element() {}

// Scene is an ordered list of primitives drawn on a Width x Height canvas.
type Scene struct {
	Width    int
	Height   int
	Elements []Element
}

func (s *Scene) Add(elements ...Element) {
	s.Elements = append(s.Elements, elements...)
}

// WriteTo serializes the scene as an SVG document. Output depends only on
// the scene contents.
func (s *Scene) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	w2 := strconv.Itoa(s.Width)
	h2 := strconv.Itoa(s.Height)

	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="` + w2 + `" height="` + h2 + `" viewBox="0 0 ` + w2 + ` ` + h2 + `">`)

	for _, el := range s.Elements {
		switch e := el.(type) {
		case Rect:
			b.WriteString(`<rect`)
			attr(&b, "x", strconv.Itoa(e.X))
			attr(&b, "y", strconv.Itoa(e.Y))
			attr(&b, "width", strconv.Itoa(e.Width))
			attr(&b, "height", strconv.Itoa(e.Height))
			attr(&b, "fill", e.Fill)
			b.WriteString(`/>`)
		case Line:
			b.WriteString(`<line`)
			attr(&b, "x1", strconv.Itoa(e.X1))
			attr(&b, "y1", strconv.Itoa(e.Y1))
			attr(&b, "x2", strconv.Itoa(e.X2))
			attr(&b, "y2", strconv.Itoa(e.Y2))
			attr(&b, "stroke", e.Stroke)
			b.WriteString(`/>`)
		case Text:
			b.WriteString(`<text`)
			attr(&b, "x", strconv.Itoa(e.X))
			attr(&b, "y", strconv.Itoa(e.Y))
			attr(&b, "font-family", "sans-serif")
			if e.Size > 0 {
				attr(&b, "font-size", strconv.Itoa(e.Size))
			}
			attr(&b, "fill", e.Fill)
			attr(&b, "text-anchor", e.Anchor)
			b.WriteString(`>`)
			escape(&b, e.Content)
			b.WriteString(`</text>`)
		}
	}

	b.WriteString(`</svg>`)

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// attr writes name="value", skipping empty values.
func attr(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	escape(b, value)
	b.WriteString(`"`)
}

func escape(b *strings.Builder, s string) {
	// strings.Builder never returns a write error.
	_ = xml.EscapeText(b, []byte(s))
}
