// Package config loads converter settings: defaults first, then an optional
// TOML file, with command-line flags layered on top by the caller.
package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/unkn0wn-root/themr/internal/errdef"
	"github.com/unkn0wn-root/themr/internal/util"
)

type Settings struct {
	// Template is the reference template stylesheet path.
	Template string `toml:"template"`
	// OutputDir receives one subdirectory per converted theme.
	OutputDir string `toml:"output_dir"`
	// Define lists build flags active during preprocessing.
	Define []string `toml:"define"`
	// BlendFactor tunes the saturation/lightness blend; 0 means default.
	BlendFactor float64 `toml:"blend_factor"`
	// Aliases maps template symbol names to source theme keys.
	Aliases map[string]string `toml:"aliases"`
	// Workers bounds batch conversion concurrency; 0 means NumCPU.
	Workers int `toml:"workers"`
}

func Default() Settings {
	return Settings{
		OutputDir: "themes",
		Define:    []string{"GUI"},
	}
}

// Load reads settings from path over the defaults. A missing file is not an
// error: defaults apply. Unknown keys are rejected so typos surface instead
// of silently reverting to defaults.
func Load(path string) (Settings, error) {
	settings := Default()
	if path == "" {
		return settings, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, errdef.Wrap(errdef.CodeFilesystem, err, "read settings %q", path)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&settings); err != nil {
		return Default(), errdef.Wrap(errdef.CodeFilesystem, err, "decode settings %q", path)
	}
	settings.Define = util.DedupeNonEmptyStrings(settings.Define)
	return settings, nil
}
