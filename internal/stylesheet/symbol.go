package stylesheet

import (
	"regexp"
	"strings"

	"github.com/unkn0wn-root/themr/internal/color"
)

type Kind int

const (
	KindRaw Kind = iota
	KindColor
	KindDimension
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindDimension:
		return "dimension"
	case KindString:
		return "string"
	default:
		return "raw"
	}
}

// Symbol is one @def entry. Value holds the raw token text as written;
// resolved literals live in the table's memo.
type Symbol struct {
	Name  string
	Kind  Kind
	Value string
	File  string
	Line  int
}

// Table is an ordered name -> symbol mapping. Redefinition overwrites the
// value but keeps the first slot; last definition wins.
type Table struct {
	order    []string
	symbols  map[string]Symbol
	resolved map[string]string
}

func NewTable() *Table {
	return &Table{
		symbols:  make(map[string]Symbol),
		resolved: make(map[string]string),
	}
}

func (t *Table) Define(sym Symbol) {
	sym.Kind = classify(sym.Value)
	if _, exists := t.symbols[sym.Name]; !exists {
		t.order = append(t.order, sym.Name)
	}
	t.symbols[sym.Name] = sym
	delete(t.resolved, sym.Name)
}

func (t *Table) Get(name string) (Symbol, bool) {
	sym, ok := t.symbols[name]
	return sym, ok
}

func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

func (t *Table) Len() int {
	return len(t.order)
}

// Resolved returns the memoized literal for a symbol, if resolution ran.
func (t *Table) Resolved(name string) (string, bool) {
	lit, ok := t.resolved[name]
	return lit, ok
}

// Color parses a symbol's resolved literal as a color.
func (t *Table) Color(name string) (color.Color, bool) {
	lit, ok := t.resolved[name]
	if !ok {
		return color.Color{}, false
	}
	c, err := color.Parse(lit)
	if err != nil {
		return color.Color{}, false
	}
	return c, true
}

func (t *Table) setResolved(name, literal string) {
	t.resolved[name] = literal
	if sym, ok := t.symbols[name]; ok && sym.Kind == KindRaw {
		// A reference like ${other} classifies as raw until the literal
		// behind it is known.
		sym.Kind = classify(literal)
		t.symbols[name] = sym
	}
}

var dimensionPattern = regexp.MustCompile(`^-?[0-9]+(?:\.[0-9]+)?(?:px|pt|em|ex|%)?$`)

func classify(value string) Kind {
	v := strings.TrimSpace(value)
	switch {
	case strings.HasPrefix(v, "#"),
		strings.HasPrefix(v, "rgb("),
		strings.HasPrefix(v, "rgba("),
		strings.Contains(v, "@lighten("),
		strings.Contains(v, "@darken("):
		return KindColor
	case dimensionPattern.MatchString(v):
		return KindDimension
	case len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"':
		return KindString
	default:
		return KindRaw
	}
}
