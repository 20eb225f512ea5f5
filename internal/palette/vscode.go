package palette

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/unkn0wn-root/themr/internal/errdef"
)

// Theme is a parsed VS Code color theme flattened into a palette. Workbench
// colors and token foregrounds share one namespace: token scopes become keys.
type Theme struct {
	Name   string
	Type   string // "dark" or "light"
	Colors *Palette
}

type themeFile struct {
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Colors      map[string]string `json:"colors"`
	TokenColors []tokenColor      `json:"tokenColors"`
}

type tokenColor struct {
	Name     string          `json:"name"`
	Scope    json.RawMessage `json:"scope"`
	Settings tokenSettings   `json:"settings"`
}

type tokenSettings struct {
	FontStyle  string `json:"fontStyle"`
	Foreground string `json:"foreground"`
}

func (tc tokenColor) scopes() []string {
	if len(tc.Scope) == 0 {
		return nil
	}
	var single string
	if err := json.Unmarshal(tc.Scope, &single); err == nil {
		return []string{single}
	}
	var many []string
	if err := json.Unmarshal(tc.Scope, &many); err == nil {
		return many
	}
	return nil
}

// ParseTheme parses VS Code theme JSON. The format allows // and /* */
// comments, so the text is run through a comment stripper first.
func ParseTheme(data []byte) (*Theme, error) {
	clean := stripComments(string(data))
	var raw themeFile
	dec := json.NewDecoder(bytes.NewReader([]byte(clean)))
	if err := dec.Decode(&raw); err != nil {
		return nil, errdef.Wrap(errdef.CodeTheme, err, "decode theme JSON")
	}

	theme := &Theme{
		Name:   raw.Name,
		Type:   raw.Type,
		Colors: New(),
	}
	// Token scopes first, then workbench colors, matching the order the
	// upstream format lists them for key collisions.
	for _, tc := range raw.TokenColors {
		if tc.Settings.Foreground == "" {
			continue
		}
		for _, scope := range tc.scopes() {
			theme.Colors.AddLiteral(scope, tc.Settings.Foreground)
		}
	}
	for _, key := range sortedColorKeys(raw.Colors) {
		theme.Colors.AddLiteral(key, raw.Colors[key])
	}
	return theme, nil
}

// JSON object order is lost by map decoding; keys are added sorted so palette
// order (and with it nearest-match tie breaking) is deterministic.
func sortedColorKeys(colors map[string]string) []string {
	keys := make([]string, 0, len(colors))
	for k := range colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func LoadTheme(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "read theme %q", path)
	}
	theme, err := ParseTheme(data)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeTheme, err, "parse theme %q", path)
	}
	if strings.TrimSpace(theme.Name) == "" {
		base := filepath.Base(path)
		theme.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return theme, nil
}

type extensionManifest struct {
	Contributes struct {
		Themes []struct {
			Label   string `json:"label"`
			UITheme string `json:"uiTheme"`
			Path    string `json:"path"`
		} `json:"themes"`
	} `json:"contributes"`
}

// LoadExtensionThemes reads a VS Code extension directory's package.json and
// loads every theme it contributes. Themes that fail to parse are skipped;
// their errors are joined into the second return value.
func LoadExtensionThemes(dir string) ([]*Theme, error) {
	manifestPath := filepath.Join(dir, "package.json")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "read manifest %q", manifestPath)
	}
	var manifest extensionManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errdef.Wrap(errdef.CodeTheme, err, "decode manifest %q", manifestPath)
	}

	var themes []*Theme
	var combinedErr error
	for _, contributed := range manifest.Contributes.Themes {
		if strings.TrimSpace(contributed.Path) == "" {
			continue
		}
		path := filepath.Join(dir, contributed.Path)
		raw, err := os.ReadFile(path)
		if err != nil {
			combinedErr = errors.Join(combinedErr, errdef.Wrap(errdef.CodeFilesystem, err, "read theme %q", path))
			continue
		}
		theme, err := ParseTheme(raw)
		if err != nil {
			combinedErr = errors.Join(combinedErr, errdef.Wrap(errdef.CodeTheme, err, "parse theme %q", path))
			continue
		}
		// Theme files frequently omit "name"; the manifest label is the
		// better fallback before resorting to the file name.
		if strings.TrimSpace(theme.Name) == "" {
			theme.Name = contributed.Label
		}
		if strings.TrimSpace(theme.Name) == "" {
			base := filepath.Base(path)
			theme.Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
		themes = append(themes, theme)
	}
	return themes, combinedErr
}
