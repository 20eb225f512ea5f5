package color

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/unkn0wn-root/themr/internal/errdef"
)

// Color is an immutable RGBA value with channels in [0, 1].
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

var rgbaPattern = regexp.MustCompile(
	`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})(?:\s*,\s*([0-9]*\.?[0-9]+))?\s*\)$`,
)

// Parse accepts #RGB, #RGBA, #RRGGBB, #RRGGBBAA and rgba(r,g,b,a) with
// r,g,b in 0-255 and a in [0,1]. Hex digits are case-insensitive.
func Parse(literal string) (Color, error) {
	trimmed := strings.TrimSpace(literal)
	if strings.HasPrefix(trimmed, "#") {
		return parseHex(trimmed)
	}
	if m := rgbaPattern.FindStringSubmatch(trimmed); m != nil {
		return parseRGBAFunc(trimmed, m)
	}
	return Color{}, errdef.New(errdef.CodeColor, "invalid color literal %q", literal)
}

func parseHex(literal string) (Color, error) {
	digits := literal[1:]
	for i := 0; i < len(digits); i++ {
		if hexNibble(digits[i]) < 0 {
			return Color{}, errdef.New(errdef.CodeColor, "invalid hex color %q", literal)
		}
	}
	var r, g, b, a int
	switch len(digits) {
	case 3, 4:
		r = hexNibble(digits[0]) * 0x11
		g = hexNibble(digits[1]) * 0x11
		b = hexNibble(digits[2]) * 0x11
		a = 0xFF
		if len(digits) == 4 {
			a = hexNibble(digits[3]) * 0x11
		}
	case 6, 8:
		r = hexNibble(digits[0])<<4 + hexNibble(digits[1])
		g = hexNibble(digits[2])<<4 + hexNibble(digits[3])
		b = hexNibble(digits[4])<<4 + hexNibble(digits[5])
		a = 0xFF
		if len(digits) == 8 {
			a = hexNibble(digits[6])<<4 + hexNibble(digits[7])
		}
	default:
		return Color{}, errdef.New(errdef.CodeColor, "invalid hex color %q", literal)
	}
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, nil
}

func parseRGBAFunc(literal string, m []string) (Color, error) {
	channel := func(raw string) (float64, error) {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > 255 {
			return 0, errdef.New(errdef.CodeColor, "channel %q out of range in %q", raw, literal)
		}
		return float64(v) / 255, nil
	}
	r, err := channel(m[1])
	if err != nil {
		return Color{}, err
	}
	g, err := channel(m[2])
	if err != nil {
		return Color{}, err
	}
	b, err := channel(m[3])
	if err != nil {
		return Color{}, err
	}
	a := 1.0
	if m[4] != "" {
		a, err = strconv.ParseFloat(m[4], 64)
		if err != nil || a < 0 || a > 1 {
			return Color{}, errdef.New(errdef.CodeColor, "alpha %q out of range in %q", m[4], literal)
		}
	}
	return Color{R: r, G: g, B: b, A: a}, nil
}

func hexNibble(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// HSL returns hue in degrees [0, 360) and saturation/lightness in [0, 1].
func (c Color) HSL() (h, s, l float64) {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
}

// FromHSL builds a Color from hue in degrees, saturation, lightness and alpha.
// Channels are clamped to [0, 1] after conversion.
func FromHSL(h, s, l, a float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	rgb := colorful.Hsl(h, clamp01(s), clamp01(l)).Clamped()
	return Color{R: rgb.R, G: rgb.G, B: rgb.B, A: clamp01(a)}
}

// Distance is the Euclidean RGB distance over the 0-255 channel range.
// Alpha is ignored: transparency never participates in nearest-color search.
func Distance(a, b Color) float64 {
	dr := (a.R - b.R) * 255
	dg := (a.G - b.G) * 255
	db := (a.B - b.B) * 255
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Lighten moves lightness toward 1.0 by percent of the remaining distance.
func (c Color) Lighten(percent float64) Color {
	h, s, l := c.HSL()
	return FromHSL(h, s, l+(1-l)*percent/100, c.A)
}

// Darken moves lightness toward 0.0 by percent of the remaining distance.
func (c Color) Darken(percent float64) Color {
	h, s, l := c.HSL()
	return FromHSL(h, s, l-l*percent/100, c.A)
}

// WithAlpha returns a copy carrying the given alpha.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// Hex renders the canonical #RRGGBB form, dropping alpha.
func (c Color) Hex() string {
	return "#" + hexByte(c.R) + hexByte(c.G) + hexByte(c.B)
}

// HexA renders #RRGGBB when alpha is effectively opaque (>= 254/255),
// otherwise #RRGGBBAA.
func (c Color) HexA() string {
	if c.A >= 254.0/255 {
		return c.Hex()
	}
	return c.Hex() + hexByte(c.A)
}

func hexByte(v float64) string {
	b := int(math.Round(clamp01(v) * 255))
	const digits = "0123456789ABCDEF"
	return string([]byte{digits[b>>4], digits[b&0xF]})
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
