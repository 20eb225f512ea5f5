// Package generator orchestrates a conversion run: preprocess the reference
// template once, build a color mapping per source theme, substitute the
// mapping back into the template and write one stylesheet per theme.
package generator

import (
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/unkn0wn-root/themr/internal/color"
	"github.com/unkn0wn-root/themr/internal/errdef"
	"github.com/unkn0wn-root/themr/internal/palette"
	"github.com/unkn0wn-root/themr/internal/remap"
	"github.com/unkn0wn-root/themr/internal/stylesheet"
)

// hexTokenPattern matches the color literals the template carries:
// a hex literal directly followed by the declaration's semicolon.
var hexTokenPattern = regexp.MustCompile(`#[0-9A-Fa-f]{3,8};`)

type Options struct {
	// TemplatePath is the reference template stylesheet.
	TemplatePath string
	// OutDir receives one subdirectory per converted theme.
	OutDir string
	// Defined is the build-flag set for conditional blocks.
	Defined stylesheet.Defined
	// Resolve emits the fully preprocessed stylesheet instead of a template
	// copy that keeps directives for the host application to process.
	Resolve bool
	// BlendFactor and Aliases tune the mapper; zero values use its defaults.
	BlendFactor float64
	Aliases     map[string]string
	// Logf receives progress and recoverable-condition messages.
	Logf func(format string, args ...interface{})
}

type Output struct {
	Name        string
	Text        string
	Diagnostics []stylesheet.Diagnostic
}

type Generator struct {
	opts Options
	raw  string
	pre  *stylesheet.Result
	// symbolFor points a resolved color literal back at the symbol that
	// produced it, so resolved text keeps direct-match semantics.
	symbolFor map[color.Color]string
}

// New reads and preprocesses the reference template. Imports resolve
// relative to the template's directory.
func New(opts Options) (*Generator, error) {
	raw, err := os.ReadFile(opts.TemplatePath)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "read template %q", opts.TemplatePath)
	}
	include := stylesheet.DirIncluder{Dir: filepath.Dir(opts.TemplatePath)}
	return NewFromSource(opts, filepath.Base(opts.TemplatePath), string(raw), include)
}

// NewFromSource is New for in-memory templates.
func NewFromSource(opts Options, name, src string, include stylesheet.Includer) (*Generator, error) {
	if opts.Logf == nil {
		opts.Logf = log.Printf
	}
	pre, err := stylesheet.New(opts.Defined, include).Run(name, src)
	if err != nil {
		return nil, err
	}
	g := &Generator{
		opts:      opts,
		raw:       src,
		pre:       pre,
		symbolFor: make(map[color.Color]string, pre.Table.Len()),
	}
	for _, symName := range pre.Table.Names() {
		c, ok := pre.Table.Color(symName)
		if !ok {
			continue
		}
		key := c.WithAlpha(1)
		if _, taken := g.symbolFor[key]; !taken {
			g.symbolFor[key] = symName
		}
	}
	return g, nil
}

// Template exposes the preprocessed reference for callers that only need the
// resolved symbol table (read-only, shared across batch workers).
func (g *Generator) Template() *stylesheet.Result {
	return g.pre
}

// Convert produces the output stylesheet for one source theme. Inputs are
// not mutated; every call builds a fresh mapping.
func (g *Generator) Convert(theme *palette.Theme) Output {
	mapper := remap.New(theme.Colors, remap.Options{
		BlendFactor: g.opts.BlendFactor,
		Aliases:     g.opts.Aliases,
	})
	text := g.raw
	if g.opts.Resolve {
		text = g.pre.Text
	}

	if mapper.Empty() {
		// Every symbol keeps its target default; the text passes through
		// untouched rather than round-tripping literals through re-encoding.
		g.opts.Logf("theme %q has no usable colors; keeping template defaults", theme.Name)
	} else {
		run := &rewriteRun{
			gen:     g,
			mapper:  mapper,
			mapping: mapper.MapTable(g.pre.Table),
			cache:   make(map[color.Color]color.Color),
		}
		if g.opts.Resolve {
			text = run.rewriteHexTokens(text)
		} else {
			text = run.rewriteTemplate(text)
		}
	}
	if !g.opts.Resolve && strings.EqualFold(theme.Type, "light") {
		// The host's dark base flips panel chrome; light themes want the
		// neutral base instead.
		text = strings.ReplaceAll(text, `@importtheme "dark";`, `@importtheme "_base";`)
	}

	return Output{Name: theme.Name, Text: text, Diagnostics: g.pre.Diagnostics}
}

type rewriteRun struct {
	gen     *Generator
	mapper  *remap.Mapper
	mapping remap.Mapping
	cache   map[color.Color]color.Color
}

// rewriteTemplate keeps directives intact: @def lines carrying a literal
// color get the mapped color spliced in, everything else goes through the
// hex-token rewrite. Derived defs (@lighten/${ref}) are left alone so they
// re-derive from the remapped bases.
func (r *rewriteRun) rewriteTemplate(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "@def ") && !strings.HasPrefix(trimmed, "@def\t") {
			lines[i] = r.rewriteHexTokens(line)
			continue
		}
		rest := strings.TrimSpace(trimmed[len("@def"):])
		idx := strings.IndexAny(rest, " \t")
		if idx <= 0 {
			continue
		}
		name := rest[:idx]
		value := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest[idx+1:]), ";"))
		if _, err := color.Parse(value); err != nil {
			// Not a literal color (reference or function); leave it so it
			// re-derives from the remapped bases.
			continue
		}
		mapped, ok := r.mapping[name]
		if !ok {
			// Defined under a build flag that was off for this run; the
			// nearest-color path still applies.
			lines[i] = r.rewriteHexTokens(line)
			continue
		}
		lines[i] = "@def " + name + " " + mapped.HexA() + ";"
	}
	return strings.Join(lines, "\n")
}

// rewriteHexTokens remaps every `#hex;` literal, memoizing per RGB so a
// color repeated across the template maps consistently.
func (r *rewriteRun) rewriteHexTokens(text string) string {
	return hexTokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		literal := token[:len(token)-1]
		c, err := color.Parse(literal)
		if err != nil {
			return token
		}
		key := c.WithAlpha(1)
		mapped, ok := r.cache[key]
		if !ok {
			if name, isSymbol := r.gen.symbolFor[key]; isSymbol {
				if m, has := r.mapping[name]; has {
					mapped = m
				} else {
					mapped = r.mapper.MapColor(c)
				}
			} else {
				mapped = r.mapper.MapColor(c)
			}
			r.cache[key] = mapped
		}
		return mapped.WithAlpha(c.A).HexA() + ";"
	})
}

// Write emits <outdir>/<theme name>/theme.css. The file appears atomically:
// content goes to a temp file first, so a failed conversion never leaves a
// partial stylesheet behind.
func (g *Generator) Write(out Output) (string, error) {
	dir := filepath.Join(g.opts.OutDir, sanitizeName(out.Name))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errdef.Wrap(errdef.CodeFilesystem, err, "create output dir %q", dir)
	}
	final := filepath.Join(dir, "theme.css")
	tmp := filepath.Join(dir, ".theme.css.tmp")
	if err := os.WriteFile(tmp, []byte(out.Text), 0o644); err != nil {
		return "", errdef.Wrap(errdef.CodeFilesystem, err, "write %q", tmp)
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", errdef.Wrap(errdef.CodeFilesystem, err, "rename %q", final)
	}
	return final, nil
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" {
		return "theme"
	}
	return name
}
