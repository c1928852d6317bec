// Package cssutil builds and parses the inline style attributes carried
// by live-tree markup. Only the declaration list syntax is handled;
// selectors and at-rules never appear in inline styles.
package cssutil

import (
	"strconv"
	"strings"
)

// Style accumulates CSS declarations in insertion order.
type Style struct {
	props []string
	vals  []string
}

// Set appends a declaration. Empty values are skipped so callers can
// pass through optional fields unconditionally.
func (s *Style) Set(prop, val string) *Style {
	if val == "" {
		return s
	}
	s.props = append(s.props, prop)
	s.vals = append(s.vals, val)
	return s
}

// SetPx appends a pixel-dimension declaration.
func (s *Style) SetPx(prop string, v float64) *Style {
	return s.Set(prop, Px(v))
}

// String renders the declaration list ("a: b; c: d").
func (s *Style) String() string {
	var b strings.Builder
	for i := range s.props {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(s.props[i])
		b.WriteString(": ")
		b.WriteString(s.vals[i])
	}
	return b.String()
}

// Parse splits a declaration list into a property map. Later
// declarations win, matching how browsers apply inline styles.
func Parse(style string) map[string]string {
	out := map[string]string{}
	for _, decl := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if prop != "" && val != "" {
			out[prop] = val
		}
	}
	return out
}

// Px formats a point dimension as a px value, with trailing zeros
// trimmed ("12px", "1.5px").
func Px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// ParsePx reads a numeric dimension, tolerating a px/pt suffix and
// surrounding space. Returns false for keywords like "auto".
func ParsePx(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSuffix(s, "pt")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseFloat reads a bare numeric value ("1.2", "0.5").
func ParseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Num formats a bare numeric value with trailing zeros trimmed.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseRotation extracts the angle in degrees from a
// "rotate(45deg)" transform value.
func ParseRotation(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if !strings.HasPrefix(s, "rotate(") || !strings.HasSuffix(s, ")") {
		return 0, false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "rotate("), ")")
	inner = strings.TrimSuffix(strings.TrimSpace(inner), "deg")
	return ParseFloat(inner)
}

// Rotation renders a rotate() transform value.
func Rotation(deg float64) string {
	return "rotate(" + Num(deg) + "deg)"
}
