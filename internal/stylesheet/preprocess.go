package stylesheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/unkn0wn-root/themr/internal/color"
	"github.com/unkn0wn-root/themr/internal/errdef"
)

// Diagnostic is a non-fatal preprocessing warning: an unresolved reference or
// a malformed function call. It never aborts a run.
type Diagnostic struct {
	File   string
	Line   int
	Name   string
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s: %s", d.File, d.Line, d.Name, d.Reason)
}

// Defined is the build-flag set consulted by @ifdef/@ifndef. Supplied once
// per run, never mutated mid-run.
type Defined map[string]struct{}

func NewDefined(names ...string) Defined {
	d := make(Defined, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		d[name] = struct{}{}
	}
	return d
}

func (d Defined) Has(name string) bool {
	_, ok := d[name]
	return ok
}

// Includer resolves an @importtheme name to a canonical identity and the
// file's content. The identity is what import-cycle detection compares.
type Includer interface {
	Resolve(name string) (id string, content []byte, err error)
}

// Result is a fully preprocessed stylesheet: no directives, no references,
// no function calls left in Text.
type Result struct {
	Text        string
	Table       *Table
	Diagnostics []Diagnostic
}

type Preprocessor struct {
	defined Defined
	include Includer
}

func New(defined Defined, include Includer) *Preprocessor {
	if defined == nil {
		defined = NewDefined()
	}
	return &Preprocessor{defined: defined, include: include}
}

// Run preprocesses src in two passes: collect directives into the symbol
// table while filtering conditionals and inlining imports, then resolve all
// symbols and interpolate the body. Structural errors (malformed directives,
// cyclic definitions or imports) abort the run; unresolved references are
// downgraded to diagnostics.
func (p *Preprocessor) Run(file string, src string) (*Result, error) {
	st := &runState{
		p:         p,
		table:     NewTable(),
		visiting:  make(map[string]bool),
		importing: []string{file},
	}

	body, err := st.collect(file, src)
	if err != nil {
		return nil, err
	}

	// Resolve every symbol up front so cycles surface even when nothing in
	// the body references the offending definition.
	for _, name := range st.table.Names() {
		if _, err := st.resolveSymbol(name); err != nil {
			return nil, err
		}
	}

	var out strings.Builder
	for i, ln := range body {
		text, err := st.expand(ln.text, ln.file, ln.line)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(text)
	}
	if strings.HasSuffix(src, "\n") && len(body) > 0 {
		out.WriteByte('\n')
	}

	return &Result{Text: out.String(), Table: st.table, Diagnostics: st.diags}, nil
}

type runState struct {
	p         *Preprocessor
	table     *Table
	diags     []Diagnostic
	visiting  map[string]bool
	importing []string
}

type bodyLine struct {
	file string
	line int
	text string
}

// condFrame is one pending @ifdef/@ifndef block. Nesting is an explicit
// stack, not recursion, so depth is bounded by input size only.
type condFrame struct {
	parent   bool
	active   bool
	taken    bool
	elseSeen bool
	line     int
}

func (st *runState) collect(file, src string) ([]bodyLine, error) {
	var body []bodyLine
	var conds []condFrame

	active := func() bool {
		if len(conds) == 0 {
			return true
		}
		return conds[len(conds)-1].active
	}

	lines := strings.Split(src, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for i, raw := range lines {
		n := i + 1
		trimmed := strings.TrimSpace(raw)
		directive := firstToken(trimmed)

		switch directive {
		case "@ifdef", "@ifndef":
			name, err := directiveArg(trimmed, directive, file, n)
			if err != nil {
				return nil, err
			}
			on := st.p.defined.Has(name)
			if directive == "@ifndef" {
				on = !on
			}
			branch := active() && on
			conds = append(conds, condFrame{
				parent: active(),
				active: branch,
				taken:  branch,
				line:   n,
			})

		case "@else":
			if len(conds) == 0 {
				return nil, errdef.New(errdef.CodeDirective, "%s:%d: @else without open conditional", file, n)
			}
			top := &conds[len(conds)-1]
			if top.elseSeen {
				return nil, errdef.New(errdef.CodeDirective, "%s:%d: duplicate @else", file, n)
			}
			top.elseSeen = true
			top.active = top.parent && !top.taken
			if top.active {
				top.taken = true
			}

		case "@endif":
			if len(conds) == 0 {
				return nil, errdef.New(errdef.CodeDirective, "%s:%d: @endif without open conditional", file, n)
			}
			conds = conds[:len(conds)-1]

		case "@def":
			if !active() {
				continue
			}
			name, value, err := parseDef(trimmed, file, n)
			if err != nil {
				return nil, err
			}
			st.table.Define(Symbol{Name: name, Value: value, File: file, Line: n})

		case "@importtheme":
			if !active() {
				continue
			}
			name, err := directiveArg(trimmed, directive, file, n)
			if err != nil {
				return nil, err
			}
			imported, err := st.importTheme(strings.Trim(name, `"`), file, n)
			if err != nil {
				return nil, err
			}
			body = append(body, imported...)

		default:
			if !active() {
				continue
			}
			body = append(body, bodyLine{file: file, line: n, text: raw})
		}
	}

	if len(conds) > 0 {
		return nil, errdef.New(
			errdef.CodeDirective,
			"%s: conditional opened at line %d is never closed", file, conds[len(conds)-1].line,
		)
	}
	return body, nil
}

func (st *runState) importTheme(name, fromFile string, line int) ([]bodyLine, error) {
	if st.p.include == nil {
		return nil, errdef.New(errdef.CodeDirective, "%s:%d: @importtheme %q with no include root", fromFile, line, name)
	}
	id, content, err := st.p.include.Resolve(name)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "%s:%d: import %q", fromFile, line, name)
	}
	for _, open := range st.importing {
		if open == id {
			return nil, errdef.New(errdef.CodeCyclicImport, "%s:%d: import cycle through %q", fromFile, line, name)
		}
	}
	st.importing = append(st.importing, id)
	body, err := st.collect(id, string(content))
	st.importing = st.importing[:len(st.importing)-1]
	return body, err
}

var (
	refPattern = regexp.MustCompile(`\$\{([^}]+)\}`)
	// The color argument is either an rgba()/rgb() call, whose own commas
	// and parens must not terminate the outer call, or a bare token.
	funcPattern = regexp.MustCompile(`@(lighten|darken)\(\s*(rgba?\([^)]*\)|[^,()]+?)\s*,\s*(-?[0-9]+(?:\.[0-9]+)?)\s*\)`)
	// badFuncPattern catches calls the grammar above rejects (wrong arity,
	// junk arguments) so they can be dropped instead of leaking into output.
	badFuncPattern = regexp.MustCompile(`@(lighten|darken)\((?:[^()]|\([^()]*\))*\)`)
)

// resolveSymbol resolves one symbol to a literal, memoized. A symbol that
// transitively references itself is a fatal cyclic definition.
func (st *runState) resolveSymbol(name string) (string, error) {
	if lit, ok := st.table.Resolved(name); ok {
		return lit, nil
	}
	sym, ok := st.table.Get(name)
	if !ok {
		return "", nil
	}
	if st.visiting[name] {
		return "", errdef.New(
			errdef.CodeCyclicDef,
			"%s:%d: symbol %q transitively references itself", sym.File, sym.Line, name,
		)
	}
	st.visiting[name] = true
	defer delete(st.visiting, name)

	lit, err := st.expand(sym.Value, sym.File, sym.Line)
	if err != nil {
		return "", err
	}
	st.table.setResolved(name, lit)
	return lit, nil
}

// expand substitutes ${name} references and evaluates @lighten/@darken in a
// piece of text. Undefined references become empty strings plus a warning;
// only cycles escalate to errors.
func (st *runState) expand(text, file string, line int) (string, error) {
	var firstErr error
	out := refPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-1])
		if _, ok := st.table.Get(name); !ok {
			st.warn(file, line, name, "undefined symbol reference")
			return ""
		}
		lit, err := st.resolveSymbol(name)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return ""
		}
		return lit
	})
	if firstErr != nil {
		return "", firstErr
	}
	return st.evalFunctions(out, file, line), nil
}

func (st *runState) evalFunctions(text, file string, line int) string {
	out := funcPattern.ReplaceAllStringFunc(text, func(match string) string {
		m := funcPattern.FindStringSubmatch(match)
		src, err := color.Parse(m[2])
		if err != nil {
			st.warn(file, line, "@"+m[1], fmt.Sprintf("argument %q is not a color", m[2]))
			return ""
		}
		pct, _ := strconv.ParseFloat(m[3], 64)
		if m[1] == "lighten" {
			return src.Lighten(pct).HexA()
		}
		return src.Darken(pct).HexA()
	})
	// Anything that still looks like a call did not match the grammar.
	// It is dropped, not passed through: output carries no directive syntax.
	out = badFuncPattern.ReplaceAllStringFunc(out, func(match string) string {
		m := badFuncPattern.FindStringSubmatch(match)
		st.warn(file, line, "@"+m[1], "malformed function call")
		return ""
	})
	for _, fn := range []string{"@lighten(", "@darken("} {
		if idx := strings.Index(out, fn); idx >= 0 {
			// Unterminated call; everything after it is part of the junk.
			st.warn(file, line, strings.TrimSuffix(fn, "("), "malformed function call")
			out = out[:idx]
		}
	}
	return out
}

func (st *runState) warn(file string, line int, name, reason string) {
	st.diags = append(st.diags, Diagnostic{File: file, Line: line, Name: name, Reason: reason})
}

func firstToken(line string) string {
	if !strings.HasPrefix(line, "@") {
		return ""
	}
	if idx := strings.IndexAny(line, " \t"); idx > 0 {
		return line[:idx]
	}
	return strings.TrimSuffix(line, ";")
}

func directiveArg(line, directive, file string, n int) (string, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, directive))
	rest = strings.TrimSuffix(rest, ";")
	rest = strings.TrimSpace(rest)
	if rest == "" || len(strings.Fields(rest)) != 1 {
		return "", errdef.New(errdef.CodeDirective, "%s:%d: %s needs exactly one argument", file, n, directive)
	}
	return rest, nil
}

// parseDef splits "@def NAME VALUE;" into name and raw value. The trailing
// semicolon is optional; the value may span to end of line.
func parseDef(line, file string, n int) (string, string, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "@def"))
	idx := strings.IndexAny(rest, " \t")
	if idx <= 0 {
		return "", "", errdef.New(errdef.CodeDirective, "%s:%d: @def needs a name and a value", file, n)
	}
	name := rest[:idx]
	value := strings.TrimSpace(rest[idx+1:])
	value = strings.TrimSuffix(value, ";")
	value = strings.TrimSpace(value)
	if value == "" {
		return "", "", errdef.New(errdef.CodeDirective, "%s:%d: @def %s has no value", file, n, name)
	}
	return name, value, nil
}
