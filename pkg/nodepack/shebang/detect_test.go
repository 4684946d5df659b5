package shebang

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kegworks/nodepack/pkg/nodepack/formula"
)

// fakeRegistry resolves prefixes from a fixed map.
type fakeRegistry map[string]string

func (r fakeRegistry) Prefix(name string) (string, error) {
	prefix, ok := r[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", formula.ErrUnavailable, name)
	}
	return prefix, nil
}

func TestDetectRule(t *testing.T) {
	reg := fakeRegistry{
		"node":    "/opt/cellar/opt/node",
		"node@18": "/opt/cellar/opt/node@18",
	}

	t.Run("fails without a node dependency", func(t *testing.T) {
		f := &formula.Formula{Name: "demo", Dependencies: []string{"python@3.12", "openssl@3"}}

		_, err := DetectRule(f, reg)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoNodeDependency)
	})

	t.Run("fails with no dependencies at all", func(t *testing.T) {
		f := &formula.Formula{Name: "demo"}

		_, err := DetectRule(f, reg)
		assert.ErrorIs(t, err, ErrNoNodeDependency)
	})

	t.Run("fails on ambiguous node dependencies", func(t *testing.T) {
		f := &formula.Formula{Name: "demo", Dependencies: []string{"node", "node@18"}}

		_, err := DetectRule(f, reg)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAmbiguousNodeDependency)
	})

	t.Run("resolves a single versioned node dependency", func(t *testing.T) {
		f := &formula.Formula{Name: "demo", Dependencies: []string{"openssl@3", "node@18"}}

		rule, err := DetectRule(f, reg)
		require.NoError(t, err)
		assert.Equal(t, "/opt/cellar/opt/node@18/bin/node$1", rule.Replacement)
		assert.Equal(t, len("#! /usr/bin/env node "), rule.MaxLength)
	})

	t.Run("ignores lookalike dependency names", func(t *testing.T) {
		f := &formula.Formula{Name: "demo", Dependencies: []string{"nodejs-tools", "node"}}

		rule, err := DetectRule(f, reg)
		require.NoError(t, err)
		assert.Equal(t, "/opt/cellar/opt/node/bin/node$1", rule.Replacement)
	})

	t.Run("fails hard when the dependency is not installed", func(t *testing.T) {
		f := &formula.Formula{Name: "demo", Dependencies: []string{"node@20"}}

		_, err := DetectRule(f, reg)
		require.Error(t, err)
		assert.ErrorIs(t, err, formula.ErrUnavailable)
	})
}
