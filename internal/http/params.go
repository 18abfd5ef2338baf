package http

import (
	"strings"

	"fleet-service/internal/model"
)

// Params is a query string parsed once per request. Keys match exactly and
// the first occurrence of a key wins.
type Params map[string]string

// ParseParams decodes raw (without the leading '?'). Chunks without '=' are
// skipped. Malformed percent escapes are kept literally instead of failing
// the whole query the way url.ParseQuery does.
func ParseParams(raw string) Params {
	params := Params{}
	for _, chunk := range strings.Split(raw, "&") {
		key, value, ok := strings.Cut(chunk, "=")
		if !ok {
			continue
		}
		if _, seen := params[key]; seen {
			continue
		}
		params[key] = decodeComponent(value)
	}
	return params
}

// Get returns the decoded value, or "" when the key is absent.
func (p Params) Get(name string) string {
	return p[name]
}

// Date returns the first ten characters of the value when it is a date.
func (p Params) Date(name string) (string, bool) {
	v := p[name]
	if !model.IsDate(v) {
		return "", false
	}
	return v[:10], true
}

// Int parses the leading decimal digits of the value. Absent, non-numeric
// and non-positive values yield def.
func (p Params) Int(name string, def int) int {
	v := strings.TrimLeft(p[name], " ")
	n := 0
	digits := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			break
		}
		if n > (1<<31-1)/10 {
			return def
		}
		n = n*10 + int(c-'0')
		digits++
	}
	if digits == 0 || n <= 0 {
		return def
	}
	return n
}

func decodeComponent(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
