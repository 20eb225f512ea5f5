package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unkn0wn-root/themr/internal/config"
	"github.com/unkn0wn-root/themr/internal/generator"
	"github.com/unkn0wn-root/themr/internal/palette"
	"github.com/unkn0wn-root/themr/internal/stylesheet"
	"github.com/unkn0wn-root/themr/internal/util"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6E6E"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#6EF17E"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6A86"))
	styleKey     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD46A"))
)

func main() {
	var (
		configPath    string
		templatePath  string
		outDir        string
		themePath     string
		extensionsDir string
		defineRaw     string
		blend         float64
		resolve       bool
		workers       int
		listOnly      bool
		preview       bool
		showVersion   bool
	)

	flag.StringVar(&configPath, "config", "", "Path to themr settings TOML")
	flag.StringVar(&templatePath, "template", "", "Reference template stylesheet")
	flag.StringVar(&outDir, "out", "", "Output directory for converted themes")
	flag.StringVar(&themePath, "theme", "", "Path to a single VS Code theme JSON to convert")
	flag.StringVar(&extensionsDir, "extensions", "", "VS Code extensions directory to convert in batch")
	flag.StringVar(&defineRaw, "define", "", "Build flags for @ifdef blocks (comma/space separated)")
	flag.Float64Var(&blend, "blend", 0, "Saturation/lightness blend factor (0 = default)")
	flag.BoolVar(&resolve, "resolve", false, "Emit fully resolved stylesheets instead of template copies")
	flag.IntVar(&workers, "workers", 0, "Batch conversion workers (0 = NumCPU)")
	flag.BoolVar(&listOnly, "list", false, "List themes found under -extensions and exit")
	flag.BoolVar(&preview, "preview", false, "Render the -theme palette as terminal swatches and exit")
	flag.BoolVar(&showVersion, "version", false, "Show themr version")
	flag.Parse()

	if showVersion {
		fmt.Printf("themr %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	settings, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	if templatePath != "" {
		settings.Template = templatePath
	}
	if outDir != "" {
		settings.OutputDir = outDir
	}
	if blend > 0 {
		settings.BlendFactor = blend
	}
	if workers > 0 {
		settings.Workers = workers
	}
	if defineRaw != "" {
		settings.Define = util.DedupeNonEmptyStrings(splitList(defineRaw))
	}

	switch {
	case preview:
		if themePath == "" {
			log.Fatalf("-preview needs -theme")
		}
		theme, err := palette.LoadTheme(themePath)
		if err != nil {
			log.Fatalf("load theme: %v", err)
		}
		printPalette(theme)

	case listOnly:
		if extensionsDir == "" {
			log.Fatalf("-list needs -extensions")
		}
		listThemes(extensionsDir)

	case themePath != "" || extensionsDir != "":
		if settings.Template == "" {
			log.Fatalf("no template: pass -template or set it in the settings file")
		}
		gen, err := generator.New(generator.Options{
			TemplatePath: settings.Template,
			OutDir:       settings.OutputDir,
			Defined:      stylesheet.NewDefined(settings.Define...),
			Resolve:      resolve,
			BlendFactor:  settings.BlendFactor,
			Aliases:      settings.Aliases,
			Logf:         log.Printf,
		})
		if err != nil {
			log.Fatalf("template: %v", err)
		}
		printDiagnostics(gen.Template().Diagnostics)

		if themePath != "" {
			convertOne(gen, themePath)
			return
		}
		convertExtensions(gen, extensionsDir, settings.Workers)

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func convertOne(gen *generator.Generator, themePath string) {
	theme, err := palette.LoadTheme(themePath)
	if err != nil {
		log.Fatalf("load theme: %v", err)
	}
	out := gen.Convert(theme)
	printDiagnostics(out.Diagnostics)
	path, err := gen.Write(out)
	if err != nil {
		log.Fatalf("write theme: %v", err)
	}
	fmt.Println(styleSuccess.Render("✓"), out.Name, styleDim.Render(path))
}

func convertExtensions(gen *generator.Generator, extensionsDir string, workers int) {
	themes := collectThemes(extensionsDir)
	if len(themes) == 0 {
		log.Fatalf("no themes found under %q", extensionsDir)
	}

	results := gen.ConvertBatch(context.Background(), themes, workers)
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Println(styleError.Render("✗"), res.Theme, styleDim.Render(res.Err.Error()))
			continue
		}
		printDiagnostics(res.Diagnostics)
		fmt.Println(styleSuccess.Render("✓"), res.Theme, styleDim.Render(res.Path))
	}
	fmt.Printf("%d converted, %d failed\n", len(results)-failed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func collectThemes(extensionsDir string) []*palette.Theme {
	entries, err := os.ReadDir(extensionsDir)
	if err != nil {
		log.Fatalf("read extensions dir: %v", err)
	}
	var themes []*palette.Theme
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		found, err := palette.LoadExtensionThemes(filepath.Join(extensionsDir, entry.Name()))
		if err != nil {
			// Extensions without themes (or with broken ones) are expected;
			// keep going and say why.
			log.Printf("skip %s: %v", entry.Name(), err)
		}
		themes = append(themes, found...)
	}
	return themes
}

func listThemes(extensionsDir string) {
	themes := collectThemes(extensionsDir)
	names := make([]string, 0, len(themes))
	for _, theme := range themes {
		names = append(names, theme.Name)
	}
	sort.Strings(names)
	for _, name := range util.DedupeSortedStrings(names) {
		fmt.Println(name)
	}
}

func printPalette(theme *palette.Theme) {
	fmt.Printf("%s (%s), %d colors\n", theme.Name, theme.Type, theme.Colors.Len())
	for _, entry := range theme.Colors.Entries() {
		swatch := lipgloss.NewStyle().
			Background(lipgloss.Color(entry.Color.Hex())).
			Render("    ")
		fmt.Printf("%s %s %s\n",
			swatch,
			styleDim.Render(entry.Color.HexA()),
			styleKey.Render(entry.Key),
		)
	}
}

func printDiagnostics(diags []stylesheet.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, styleDim.Render("warn: "+d.String()))
	}
}

func splitList(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
