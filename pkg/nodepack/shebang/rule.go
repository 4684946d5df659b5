// Package shebang builds and applies rewrite rules that repoint the
// interpreter line of installed Node.js scripts at a package-manager-owned
// node binary instead of whatever /usr/bin/env happens to find.
package shebang

import "regexp"

// nodePattern matches every shebang form that resolves node from the
// environment: an optional space after #!, an optional "env " indirection,
// then the node token followed by a space (flags may trail) or the end of
// the line. The trailing separator is captured so the replacement keeps it.
// Multiline mode makes $ match before a trailing newline, so the rule works
// on a raw first line whether or not it is newline-terminated.
var nodePattern = regexp.MustCompile(`(?m)^#! ?/usr/bin/(?:env )?node( |$)`)

// longestForm is the longest literal the pattern can match. Its length
// bounds how many bytes of a file's first line the rewrite engine may
// overwrite in place, so it must never be shorter than any actual match.
const longestForm = "#! /usr/bin/env node "

// RewriteRule describes one first-line rewrite: if the first MaxLength
// bytes of a file match Pattern, the match is replaced by expanding
// Replacement (a Regexp replacement template).
type RewriteRule struct {
	Pattern     *regexp.Regexp
	MaxLength   int
	Replacement string
}

// BuildRule returns the rewrite rule that replaces an environment-resolved
// node shebang with the given interpreter binary. Whatever followed the
// node token on the original line (a space before flags, or nothing) is
// preserved through the capture group.
func BuildRule(interpreterPath string) RewriteRule {
	return RewriteRule{
		Pattern:     nodePattern,
		MaxLength:   len(longestForm),
		Replacement: interpreterPath + "$1",
	}
}
