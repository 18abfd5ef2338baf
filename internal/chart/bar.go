package chart

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	"fleet-service/internal/model"
)

const (
	Width  = 900
	Height = 420

	margin      = 50
	barGap      = 10
	minBarWidth = 6
	gridSteps   = 4

	barFill    = "#4C78A8"
	axisStroke = "#333"
	gridStroke = "#eee"
	mutedFill  = "#666"
	labelFill  = "#333"

	NoDataText = "No data"
)

var ErrInvalidValue = errors.New("chart: value is not a finite number")

// BarChart lays out one bar per row, left to right in data order. Bars
// beyond roughly sixty rows overlap at the minimum width.
func BarChart(spec model.ChartSpec) (*Scene, error) {
	for _, row := range spec.Data {
		if math.IsNaN(row.Value) || math.IsInf(row.Value, 0) {
			return nil, fmt.Errorf("%w: key %d", ErrInvalidValue, row.Key)
		}
	}

	const (
		plotW = Width - 2*margin
		plotH = Height - 2*margin
	)

	maxValue := 0.0
	for _, row := range spec.Data {
		if row.Value > maxValue {
			maxValue = row.Value
		}
	}
	if maxValue <= 0 {
		maxValue = 1.0
	}

	bars := len(spec.Data)
	if bars < 1 {
		bars = 1
	}
	barW := (plotW - barGap*(bars-1)) / bars
	if barW < minBarWidth {
		barW = minBarWidth
	}

	scene := &Scene{Width: Width, Height: Height}
	scene.Add(
		Rect{X: 0, Y: 0, Width: Width, Height: Height, Fill: "white"},
		Text{X: margin, Y: 28, Size: 18, Content: spec.Title},
		Line{X1: margin, Y1: Height - margin, X2: Width - margin, Y2: Height - margin, Stroke: axisStroke},
		Line{X1: margin, Y1: margin, X2: margin, Y2: Height - margin, Stroke: axisStroke},
	)

	for step := 0; step <= gridSteps; step++ {
		frac := float64(step) / gridSteps
		y := int(float64(Height-margin) - frac*plotH)
		scene.Add(
			Line{X1: margin, Y1: y, X2: Width - margin, Y2: y, Stroke: gridStroke},
			Text{X: 10, Y: y + 4, Size: 10, Fill: mutedFill, Content: Label(frac * maxValue)},
		)
	}

	if len(spec.Data) == 0 {
		scene.Add(Text{X: margin + 10, Y: margin + 40, Size: 14, Fill: mutedFill, Content: NoDataText})
		return scene, nil
	}

	for i, row := range spec.Data {
		barH := int((row.Value / maxValue) * plotH)
		if barH < 0 {
			barH = 0
		}
		x := margin + i*(barW+barGap)
		y := Height - margin - barH

		scene.Add(
			Rect{X: x, Y: y, Width: barW, Height: barH, Fill: barFill},
			Text{X: x + barW/2, Y: y - 4, Size: 10, Fill: labelFill, Anchor: "middle", Content: Label(row.Value)},
			Text{X: x + barW/2, Y: Height - margin + 16, Size: 10, Fill: labelFill, Anchor: "middle", Content: spec.AxisLabelPrefix + strconv.FormatInt(row.Key, 10)},
		)
	}

	return scene, nil
}

// Label formats a value rounded to an integer.
func Label(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

// Render lays out and serializes spec.
func Render(spec model.ChartSpec) ([]byte, error) {
	scene, err := BarChart(spec)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := scene.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ErrorSVG is the small placeholder image served with failed chart requests.
func ErrorSVG(message string) []byte {
	scene := &Scene{Width: 600, Height: 120}
	scene.Add(Text{X: 10, Y: 40, Content: message})

	var buf bytes.Buffer
	_, _ = scene.WriteTo(&buf)
	return buf.Bytes()
}
