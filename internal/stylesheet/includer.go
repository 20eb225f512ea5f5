package stylesheet

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/unkn0wn-root/themr/internal/errdef"
)

// DirIncluder resolves @importtheme names against a directory: the literal
// name first, then with the stylesheet extensions appended. Files are read
// in full and closed before Resolve returns, parse failures included.
type DirIncluder struct {
	Dir string
}

func (inc DirIncluder) Resolve(name string) (string, []byte, error) {
	candidates := []string{name, name + ".css", name + ".theme"}
	for _, candidate := range candidates {
		path := filepath.Join(inc.Dir, candidate)
		content, err := os.ReadFile(path)
		if err == nil {
			return path, content, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", nil, errdef.Wrap(errdef.CodeFilesystem, err, "read import %q", path)
		}
	}
	return "", nil, errdef.New(errdef.CodeFilesystem, "import %q not found under %q", name, inc.Dir)
}

// MapIncluder serves imports from memory; used by tests and embedded
// template sets.
type MapIncluder map[string]string

func (inc MapIncluder) Resolve(name string) (string, []byte, error) {
	if content, ok := inc[name]; ok {
		return name, []byte(content), nil
	}
	return "", nil, errdef.New(errdef.CodeFilesystem, "import %q not found", name)
}
