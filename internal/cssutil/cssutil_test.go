package cssutil

// Notes:
// - Style keeps insertion order and skips empty values
// - Parse normalizes property names and lets later declarations win
// - Dimension round trip: Px/ParsePx, rotation transform

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStyle_String(t *testing.T) {
	t.Parallel()

	var s Style
	s.Set("color", "red").
		Set("display", "").
		SetPx("width", 150).
		SetPx("margin", 1.5)

	want := "color: red; width: 150px; margin: 1.5px"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStyle_Empty(t *testing.T) {
	t.Parallel()

	var s Style
	if got := s.String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		style string
		want  map[string]string
	}{
		{
			name:  "basic declarations",
			style: "color: red; width: 150px",
			want:  map[string]string{"color": "red", "width": "150px"},
		},
		{
			name:  "later declaration wins",
			style: "color: red; color: blue",
			want:  map[string]string{"color": "blue"},
		},
		{
			name:  "property names lowercased",
			style: "COLOR: red",
			want:  map[string]string{"color": "red"},
		},
		{
			name:  "trailing semicolon and spacing tolerated",
			style: "  width :  10px ; ",
			want:  map[string]string{"width": "10px"},
		},
		{
			name:  "declarations without colon dropped",
			style: "color red; width: 10px",
			want:  map[string]string{"width": "10px"},
		},
		{
			name:  "empty input",
			style: "",
			want:  map[string]string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, Parse(tt.style)); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPx(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{12, "12px"},
		{1.5, "1.5px"},
		{0, "0px"},
		{595, "595px"},
	}
	for _, tt := range tests {
		tt := tt
		if got := Px(tt.in); got != tt.want {
			t.Errorf("Px(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParsePx(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"12px", 12, true},
		{"1.5px", 1.5, true},
		{"40pt", 40, true},
		{" 10 ", 10, true},
		{"10PX", 10, true},
		{"auto", 0, false},
		{"", 0, false},
		{"px", 0, false},
	}
	for _, tt := range tests {
		tt := tt
		got, ok := ParsePx(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParsePx(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRotation(t *testing.T) {
	t.Parallel()

	if got := Rotation(45); got != "rotate(45deg)" {
		t.Errorf("Rotation(45) = %q", got)
	}

	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"rotate(45deg)", 45, true},
		{"rotate(-90deg)", -90, true},
		{"ROTATE(10DEG)", 10, true},
		{"rotate( 1.5deg )", 1.5, true},
		{"scale(2)", 0, false},
		{"rotate(45deg", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		tt := tt
		got, ok := ParseRotation(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseRotation(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
