package palette

import (
	"github.com/unkn0wn-root/themr/internal/color"
)

// Entry is one semantic key with its color.
type Entry struct {
	Key   string
	Color color.Color
}

// Palette is an ordered key -> color mapping. Insertion order is preserved;
// re-adding an existing key updates the color but keeps the original slot.
type Palette struct {
	order []Entry
	index map[string]int
}

func New() *Palette {
	return &Palette{index: make(map[string]int)}
}

func (p *Palette) Add(key string, c color.Color) {
	if idx, ok := p.index[key]; ok {
		p.order[idx].Color = c
		return
	}
	p.index[key] = len(p.order)
	p.order = append(p.order, Entry{Key: key, Color: c})
}

// AddLiteral parses and adds a color literal. Invalid literals are ignored:
// source themes routinely carry non-color values under color-ish keys.
func (p *Palette) AddLiteral(key, literal string) bool {
	c, err := color.Parse(literal)
	if err != nil {
		return false
	}
	p.Add(key, c)
	return true
}

func (p *Palette) Get(key string) (color.Color, bool) {
	idx, ok := p.index[key]
	if !ok {
		return color.Color{}, false
	}
	return p.order[idx].Color, true
}

func (p *Palette) Len() int {
	return len(p.order)
}

func (p *Palette) Keys() []string {
	keys := make([]string, len(p.order))
	for i, e := range p.order {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy in insertion order.
func (p *Palette) Entries() []Entry {
	out := make([]Entry, len(p.order))
	copy(out, p.order)
	return out
}
