package color

import (
	"math"
	"testing"

	"github.com/unkn0wn-root/themr/internal/errdef"
)

func mustParse(t *testing.T, literal string) Color {
	t.Helper()
	c, err := Parse(literal)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", literal, err)
	}
	return c
}

func TestParseHexForms(t *testing.T) {
	cases := []struct {
		literal string
		r, g, b int
		a       float64
	}{
		{"#123", 0x11, 0x22, 0x33, 1},
		{"#fab7", 0xFF, 0xAA, 0xBB, 119.0 / 255},
		{"#112233", 0x11, 0x22, 0x33, 1},
		{"#11223344", 0x11, 0x22, 0x33, 68.0 / 255},
		{"#ABCDEF", 0xAB, 0xCD, 0xEF, 1},
	}
	for _, tc := range cases {
		c := mustParse(t, tc.literal)
		if got := int(math.Round(c.R * 255)); got != tc.r {
			t.Fatalf("%s: red = %d, want %d", tc.literal, got, tc.r)
		}
		if got := int(math.Round(c.G * 255)); got != tc.g {
			t.Fatalf("%s: green = %d, want %d", tc.literal, got, tc.g)
		}
		if got := int(math.Round(c.B * 255)); got != tc.b {
			t.Fatalf("%s: blue = %d, want %d", tc.literal, got, tc.b)
		}
		if math.Abs(c.A-tc.a) > 1e-9 {
			t.Fatalf("%s: alpha = %v, want %v", tc.literal, c.A, tc.a)
		}
	}
}

func TestParseRGBAFunctional(t *testing.T) {
	c := mustParse(t, "rgba(136, 192, 208, .85)")
	if int(math.Round(c.R*255)) != 136 || int(math.Round(c.G*255)) != 192 ||
		int(math.Round(c.B*255)) != 208 {
		t.Fatalf("unexpected channels: %+v", c)
	}
	if math.Abs(c.A-0.85) > 1e-9 {
		t.Fatalf("alpha = %v, want 0.85", c.A)
	}

	opaque := mustParse(t, "rgb(255,0,0)")
	if opaque.A != 1 {
		t.Fatalf("expected implicit alpha 1, got %v", opaque.A)
	}
}

func TestParseRejectsMalformedLiterals(t *testing.T) {
	bad := []string{
		"",
		"zzz",
		"#12",
		"#12345",
		"#1234567",
		"#123456789",
		"#12g456",
		"rgba(256,0,0,1)",
		"rgba(10,10,10,1.5)",
		"rgba(10,10)",
		"112233",
	}
	for _, literal := range bad {
		_, err := Parse(literal)
		if err == nil {
			t.Fatalf("Parse(%q) should fail", literal)
		}
		if errdef.CodeOf(err) != errdef.CodeColor {
			t.Fatalf("Parse(%q): expected CodeColor, got %q", literal, errdef.CodeOf(err))
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, literal := range []string{"#1E1E1E", "#D4D4D4", "#2D2D30", "#FF7F00"} {
		c := mustParse(t, literal)
		if c.Hex() != literal {
			t.Fatalf("Hex round-trip: got %q, want %q", c.Hex(), literal)
		}
	}
}

func TestHexACollapsesOpaqueAlpha(t *testing.T) {
	if got := mustParse(t, "#FFFFFF").HexA(); got != "#FFFFFF" {
		t.Fatalf("opaque HexA = %q", got)
	}
	if got := mustParse(t, "#FF000080").HexA(); got != "#FF000080" {
		t.Fatalf("translucent HexA = %q", got)
	}
	// 0xFE is close enough to opaque to drop the alpha byte.
	if got := mustParse(t, "#FF0000FE").HexA(); got != "#FF0000" {
		t.Fatalf("near-opaque HexA = %q", got)
	}
}

func TestHSLRoundTrip(t *testing.T) {
	samples := []Color{
		{R: 0.3, G: 0.6, B: 0.9, A: 1},
		{R: 1, G: 0, B: 0, A: 1},
		{R: 0.1, G: 0.1, B: 0.1, A: 0.5},
		{R: 0, G: 0, B: 0, A: 1},
		{R: 1, G: 1, B: 1, A: 1},
	}
	for _, c := range samples {
		h, s, l := c.HSL()
		back := FromHSL(h, s, l, c.A)
		if math.Abs(back.R-c.R) > 1e-6 ||
			math.Abs(back.G-c.G) > 1e-6 ||
			math.Abs(back.B-c.B) > 1e-6 {
			t.Fatalf("HSL round-trip drifted: %+v -> %+v", c, back)
		}
	}
}

func TestRedHSL(t *testing.T) {
	h, s, l := mustParse(t, "#FF0000").HSL()
	if math.Abs(h-0) > 1e-9 || math.Abs(s-1) > 1e-9 || math.Abs(l-0.5) > 1e-9 {
		t.Fatalf("red HSL = (%v, %v, %v)", h, s, l)
	}
}

func TestDistanceProperties(t *testing.T) {
	a := mustParse(t, "#1E1E1E")
	b := mustParse(t, "#2D2D30")

	if Distance(a, a) != 0 {
		t.Fatalf("distance to self = %v", Distance(a, a))
	}
	if Distance(a, b) != Distance(b, a) {
		t.Fatalf("distance is not symmetric")
	}

	want := 255 * math.Sqrt(3)
	got := Distance(Color{A: 1}, Color{R: 1, G: 1, B: 1, A: 1})
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("black-white distance = %v, want %v", got, want)
	}

	// Alpha must not contribute.
	if Distance(a, a.WithAlpha(0.2)) != 0 {
		t.Fatalf("alpha leaked into distance")
	}
}

func TestLightenDarken(t *testing.T) {
	red := mustParse(t, "#FF0000")

	lightened := red.Lighten(50)
	_, _, l := lightened.HSL()
	if math.Abs(l-0.75) > 1e-6 {
		t.Fatalf("lighten 50%%: lightness = %v, want 0.75", l)
	}

	darkened := red.Darken(50)
	_, _, l = darkened.HSL()
	if math.Abs(l-0.25) > 1e-6 {
		t.Fatalf("darken 50%%: lightness = %v, want 0.25", l)
	}

	translucent := mustParse(t, "#FF000080")
	if got := translucent.Lighten(10).A; math.Abs(got-translucent.A) > 1e-9 {
		t.Fatalf("lighten changed alpha: %v", got)
	}

	white := mustParse(t, "#FFFFFF")
	if white.Lighten(100).Hex() != "#FFFFFF" {
		t.Fatalf("lighten past white should clamp")
	}
	black := mustParse(t, "#000000")
	if black.Darken(100).Hex() != "#000000" {
		t.Fatalf("darken past black should clamp")
	}
}
