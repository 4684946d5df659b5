package shebang

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/kegworks/nodepack/pkg/nodepack/formula"
)

// nodeDepPattern matches a dependency name of "node", optionally with a
// version qualifier such as "node@18".
var nodeDepPattern = regexp.MustCompile(`^node(@.+)?$`)

// ErrNoNodeDependency is returned when a formula declares no node
// dependency to build a shebang rule from.
var ErrNoNodeDependency = errors.New("no node dependency")

// ErrAmbiguousNodeDependency is returned when a formula declares more than
// one node dependency, leaving the target interpreter undecidable.
var ErrAmbiguousNodeDependency = errors.New("ambiguous node dependency")

// DetectRule inspects a formula's declared dependencies for exactly one
// node (or node@<version>) entry, resolves that dependency's installed
// node binary through the registry, and returns the rewrite rule for it.
//
// Unlike environment setup, an uninstalled node dependency is a hard
// failure here: there is no interpreter to point the shebangs at.
func DetectRule(f *formula.Formula, reg formula.Registry) (RewriteRule, error) {
	var matches []string
	for _, dep := range f.Dependencies {
		if nodeDepPattern.MatchString(dep) {
			matches = append(matches, dep)
		}
	}

	switch len(matches) {
	case 0:
		return RewriteRule{}, fmt.Errorf("%w declared by %s", ErrNoNodeDependency, f.Name)
	case 1:
	default:
		return RewriteRule{}, fmt.Errorf("%w declared by %s: %v", ErrAmbiguousNodeDependency, f.Name, matches)
	}

	prefix, err := reg.Prefix(matches[0])
	if err != nil {
		return RewriteRule{}, fmt.Errorf("resolving %s: %w", matches[0], err)
	}

	return BuildRule(filepath.Join(formula.BinDir(prefix), "node")), nil
}
