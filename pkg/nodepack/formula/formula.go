// Package formula describes the slice of a package-manager formula that the
// Node.js build helpers need: its declared dependency names and a way to
// resolve where a named dependency is installed.
package formula

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Formula is the declared identity of a build recipe's package.
type Formula struct {
	// Name is the formula name, e.g. "typescript".
	Name string

	// Dependencies are the names of the formula's declared dependencies,
	// e.g. "node@18" or "python@3.12".
	Dependencies []string
}

// ErrUnavailable is returned by a Registry when the named dependency is not
// installed. Callers decide whether that is fatal: environment setup ignores
// it, shebang detection does not.
var ErrUnavailable = errors.New("dependency unavailable")

// Registry resolves installed dependency locations by name.
type Registry interface {
	// Prefix returns the installation prefix of the named dependency.
	// It returns an error wrapping ErrUnavailable when the dependency
	// is not installed.
	Prefix(name string) (string, error)
}

// DirRegistry resolves dependencies against a cellar-style directory layout
// where each installed package is linked at <root>/opt/<name>.
type DirRegistry struct {
	// Root is the package manager's installation root.
	Root string
}

// Prefix returns <root>/opt/<name> if that directory exists.
func (r DirRegistry) Prefix(name string) (string, error) {
	prefix := filepath.Join(r.Root, "opt", name)
	info, err := os.Stat(prefix)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnavailable, name, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s: not a directory", ErrUnavailable, name)
	}
	return prefix, nil
}

// BinDir returns the bin directory under an installation prefix.
func BinDir(prefix string) string {
	return filepath.Join(prefix, "bin")
}
