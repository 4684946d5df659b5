package shebang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// canonicalForms are the shebang permutations the rule must recognize.
var canonicalForms = []string{
	"#!/usr/bin/node",
	"#!/usr/bin/env node",
	"#! /usr/bin/env node",
}

func TestBuildRule_MatchesCanonicalForms(t *testing.T) {
	rule := BuildRule("/opt/node/bin/node")

	for _, form := range canonicalForms {
		assert.True(t, rule.Pattern.MatchString(form), "pattern should match %q", form)
	}
}

func TestBuildRule_MatchesNewlineTerminatedForms(t *testing.T) {
	rule := BuildRule("/opt/node/bin/node")

	// A generic engine hands the rule the raw first line, newline included
	for _, form := range canonicalForms {
		assert.True(t, rule.Pattern.MatchString(form+"\n"), "pattern should match %q", form+"\n")
	}
}

func TestBuildRule_MatchesWithTrailingFlags(t *testing.T) {
	rule := BuildRule("/opt/node/bin/node")

	for _, form := range canonicalForms {
		assert.True(t, rule.Pattern.MatchString(form+" --max-old-space-size=4096"),
			"pattern should match %q with flags", form)
	}
}

func TestBuildRule_RejectsOtherInterpreters(t *testing.T) {
	rule := BuildRule("/opt/node/bin/node")

	for _, line := range []string{
		"#!/usr/bin/env python3",
		"#!/usr/bin/nodejs",
		"#!/bin/node",
		"#!/usr/bin/env nodemon",
		"console.log('not a shebang')",
	} {
		assert.False(t, rule.Pattern.MatchString(line), "pattern should not match %q", line)
	}
}

func TestBuildRule_MaxLengthBoundsEveryMatch(t *testing.T) {
	rule := BuildRule("/opt/node/bin/node")

	// The declared bound is the longest literal form, separator included
	assert.Equal(t, len("#! /usr/bin/env node "), rule.MaxLength)

	for _, form := range canonicalForms {
		match := rule.Pattern.FindString(form + " --flag")
		require.NotEmpty(t, match)
		assert.LessOrEqual(t, len(match), rule.MaxLength,
			"match %q exceeds declared MaxLength", match)
	}
}

func TestBuildRule_ReplacementPreservesTrailer(t *testing.T) {
	rule := BuildRule("/opt/node/bin/node")

	tests := []struct {
		name string
		line string
		want string
	}{
		{"env form", "#!/usr/bin/env node", "/opt/node/bin/node"},
		{"direct form", "#!/usr/bin/node", "/opt/node/bin/node"},
		{"spaced env form", "#! /usr/bin/env node", "/opt/node/bin/node"},
		{"flags survive", "#! /usr/bin/env node --flag", "/opt/node/bin/node --flag"},
		{"env flags survive", "#!/usr/bin/env node --inspect", "/opt/node/bin/node --inspect"},
		{"newline-terminated env form", "#!/usr/bin/env node\n", "/opt/node/bin/node\n"},
		{"newline-terminated direct form", "#!/usr/bin/node\n", "/opt/node/bin/node\n"},
		{"newline-terminated with flags", "#! /usr/bin/env node --flag\n", "/opt/node/bin/node --flag\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rule.Pattern.ReplaceAllString(tt.line, rule.Replacement)
			assert.Equal(t, tt.want, got)
		})
	}
}
