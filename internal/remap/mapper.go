// Package remap computes replacement colors for a target template's symbols
// from a source theme's palette. Direct semantic matches are copied verbatim;
// everything else goes through nearest-color search plus an HSL adjustment
// that keeps the source hue while preserving the target's relative
// saturation and lightness.
package remap

import (
	"github.com/unkn0wn-root/themr/internal/color"
	"github.com/unkn0wn-root/themr/internal/palette"
	"github.com/unkn0wn-root/themr/internal/stylesheet"
)

// DefaultBlendFactor is how far saturation and lightness move from the
// matched source color toward the target default. Tuned against
// representative theme pairs, not derived.
const DefaultBlendFactor = 0.25

// DefaultAliases maps common template symbol names to the semantic keys
// source themes use for the same role.
var DefaultAliases = map[string]string{
	"background":     "editor.background",
	"foreground":     "editor.foreground",
	"selection_bg":   "editor.selectionBackground",
	"selection_fg":   "editor.selectionForeground",
	"line_highlight": "editor.lineHighlightBackground",
	"caret":          "editorCursor.foreground",
	"comment":        "comment",
	"keyword":        "keyword",
	"string":         "string",
	"number":         "constant.numeric",
}

type Options struct {
	// BlendFactor overrides DefaultBlendFactor when > 0.
	BlendFactor float64
	// Aliases extends DefaultAliases; entries here win on collision.
	Aliases map[string]string
}

// Mapping is the final symbol name -> color assignment for one conversion.
type Mapping map[string]color.Color

type Mapper struct {
	source  *palette.Palette
	entries []palette.Entry
	blend   float64
	aliases map[string]string
}

func New(source *palette.Palette, opts Options) *Mapper {
	blend := opts.BlendFactor
	if blend <= 0 {
		blend = DefaultBlendFactor
	}
	aliases := make(map[string]string, len(DefaultAliases)+len(opts.Aliases))
	for name, key := range DefaultAliases {
		aliases[name] = key
	}
	for name, key := range opts.Aliases {
		aliases[name] = key
	}
	return &Mapper{
		source:  source,
		entries: source.Entries(),
		blend:   blend,
		aliases: aliases,
	}
}

// Map computes the replacement for one target symbol. With an empty source
// palette the target default comes back unchanged.
func (m *Mapper) Map(name string, def color.Color) color.Color {
	if c, ok := m.direct(name); ok {
		return c.WithAlpha(def.A)
	}
	return m.MapColor(def)
}

func (m *Mapper) direct(name string) (color.Color, bool) {
	if c, ok := m.source.Get(name); ok {
		return c, true
	}
	if key, ok := m.aliases[name]; ok {
		if c, ok := m.source.Get(key); ok {
			return c, true
		}
	}
	return color.Color{}, false
}

// MapColor runs the nearest-color fallback for a literal that has no symbol
// name: find the closest source color by RGB distance (first seen wins ties),
// then adjust hue toward it while blending saturation and lightness back
// toward the target's. Alpha always stays the target's.
func (m *Mapper) MapColor(target color.Color) color.Color {
	nearest, ok := m.nearest(target)
	if !ok {
		return target
	}
	return m.adjust(nearest, target)
}

func (m *Mapper) nearest(target color.Color) (color.Color, bool) {
	if len(m.entries) == 0 {
		return color.Color{}, false
	}
	best := m.entries[0].Color
	bestDist := color.Distance(target, best)
	for _, e := range m.entries[1:] {
		if d := color.Distance(target, e.Color); d < bestDist {
			best = e.Color
			bestDist = d
		}
	}
	return best, true
}

// adjust keeps the matched source hue and moves saturation/lightness a
// blend-factor step from the source values toward the target's, so the
// template's contrast pattern survives the hue swap.
func (m *Mapper) adjust(src, target color.Color) color.Color {
	hs, ss, ls := src.HSL()
	_, st, lt := target.HSL()
	s := ss + (st-ss)*m.blend
	l := ls + (lt-ls)*m.blend
	return color.FromHSL(hs, s, l, target.A)
}

// MapTable produces the Theme Mapping for every color symbol in a resolved
// template table.
func (m *Mapper) MapTable(table *stylesheet.Table) Mapping {
	mapping := make(Mapping, table.Len())
	for _, name := range table.Names() {
		def, ok := table.Color(name)
		if !ok {
			continue
		}
		mapping[name] = m.Map(name, def)
	}
	return mapping
}

// Empty reports whether the source palette has no usable colors; callers log
// this and fall back to target defaults rather than failing.
func (m *Mapper) Empty() bool {
	return len(m.entries) == 0
}
