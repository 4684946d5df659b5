package packager

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// InstallArgs returns the standard argument vector for installing a packed
// archive globally under a formula prefix. The caller appends the archive
// filename and runs the packing tool with the result.
//
// The npm cache is redirected under the user cache directory so builds
// never write into the user's real ~/.npm.
func InstallArgs(prefix string) []string {
	return []string{
		"install",
		"-ddd",
		"--global",
		"--build-from-source",
		"--cache=" + filepath.Join(xdg.CacheHome, "nodepack", "npm_cache"),
		"--prefix=" + prefix,
	}
}
