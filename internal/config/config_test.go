package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if settings.OutputDir != "themes" {
		t.Fatalf("default output dir wrong: %q", settings.OutputDir)
	}
	if len(settings.Define) != 1 || settings.Define[0] != "GUI" {
		t.Fatalf("default defines wrong: %v", settings.Define)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "themr.toml")
	content := []byte(`
template = "rsrc/theme.css"
output_dir = "out"
define = ["GUI", "GUI", "", "DARK"]
blend_factor = 0.4

[aliases]
base_bg = "editor.background"
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if settings.Template != "rsrc/theme.css" || settings.OutputDir != "out" {
		t.Fatalf("paths not applied: %+v", settings)
	}
	if len(settings.Define) != 2 {
		t.Fatalf("defines not deduped: %v", settings.Define)
	}
	if settings.BlendFactor != 0.4 {
		t.Fatalf("blend factor not applied: %v", settings.BlendFactor)
	}
	if settings.Aliases["base_bg"] != "editor.background" {
		t.Fatalf("aliases not applied: %v", settings.Aliases)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "themr.toml")
	if err := os.WriteFile(path, []byte("tempalte = \"oops\"\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unknown-key error")
	}
}
