package tplpack

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is the internal color representation: red, green, blue and
// alpha components in the 0.0-1.0 range. Alpha defaults to 1.0 (opaque)
// when absent from the wire form.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// RGB creates an opaque color from 0.0-1.0 components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA creates a color with explicit alpha.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// UnmarshalJSON accepts the object form and defaults alpha to 1.0 when
// the key is absent.
func (c *Color) UnmarshalJSON(data []byte) error {
	raw := struct {
		R float64  `json:"r"`
		G float64  `json:"g"`
		B float64  `json:"b"`
		A *float64 `json:"a"`
	}{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.R, c.G, c.B = raw.R, raw.G, raw.B
	if raw.A != nil {
		c.A = *raw.A
	} else {
		c.A = 1
	}
	return nil
}

// ParseColor normalizes a CSS color value into the internal
// representation. Hex notation (#rgb, #rrggbb, #rrggbbaa) and function
// notation (rgb(), rgba()) are accepted.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba("):
		return parseFuncColor(s)
	}
	return Color{}, false
}

// parseHexColor handles #rgb, #rrggbb and #rrggbbaa.
func parseHexColor(s string) (Color, bool) {
	hex := s[1:]
	switch len(hex) {
	case 3:
		var comp [3]float64
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(strings.Repeat(string(hex[i]), 2), 16, 8)
			if err != nil {
				return Color{}, false
			}
			comp[i] = float64(v) / 255
		}
		return RGB(comp[0], comp[1], comp[2]), true
	case 6, 8:
		var comp [4]float64
		comp[3] = 1
		for i := 0; i*2 < len(hex); i++ {
			v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
			if err != nil {
				return Color{}, false
			}
			comp[i] = float64(v) / 255
		}
		return RGBA(comp[0], comp[1], comp[2], comp[3]), true
	}
	return Color{}, false
}

// parseFuncColor handles rgb(r, g, b) and rgba(r, g, b, a) with
// 0-255 integer components and a 0.0-1.0 alpha.
func parseFuncColor(s string) (Color, bool) {
	open := strings.IndexByte(s, '(')
	closing := strings.LastIndexByte(s, ')')
	if open == -1 || closing == -1 || closing < open {
		return Color{}, false
	}
	parts := strings.Split(s[open+1:closing], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, false
	}
	var comp [4]float64
	comp[3] = 1
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, false
		}
		if i < 3 {
			v /= 255
		}
		comp[i] = v
	}
	return RGBA(comp[0], comp[1], comp[2], comp[3]), true
}

// CSS renders the color in rgba() function notation, the form embedded
// into live-tree style attributes.
func (c Color) CSS() string {
	a := strconv.FormatFloat(round2(c.A), 'f', -1, 64)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", byteComp(c.R), byteComp(c.G), byteComp(c.B), a)
}

// Hex renders the color as #rrggbb, dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", byteComp(c.R), byteComp(c.G), byteComp(c.B))
}

// Equal compares colors within one 8-bit step per channel.
func (c Color) Equal(o Color) bool {
	const tol = 1.0/255 + 1e-9
	return math.Abs(c.R-o.R) <= tol &&
		math.Abs(c.G-o.G) <= tol &&
		math.Abs(c.B-o.B) <= tol &&
		math.Abs(c.A-o.A) <= tol
}

// byteComp converts a 0.0-1.0 component to its 0-255 value.
func byteComp(v float64) int {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return int(math.Round(v * 255))
}

// round2 rounds to two decimal places for compact alpha output.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
