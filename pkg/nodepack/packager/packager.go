// Package packager produces a script-free installable archive from a
// package.json-described project. It strips the lifecycle hooks the packing
// tool cannot be trusted to skip, then shells out to the tool itself.
package packager

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/kegworks/nodepack/pkg/nodepack/logging"
	"github.com/kegworks/nodepack/pkg/nodepack/manifest"
)

// DefaultTool is the packing tool invoked when none is configured.
const DefaultTool = "npm"

// ErrPackFailed indicates the packing tool exited with a non-zero status.
var ErrPackFailed = errors.New("pack command failed")

// ErrNoArtifact indicates the packing tool exited successfully but printed
// no output. Some tool versions do this instead of failing; either way no
// artifact name was produced.
var ErrNoArtifact = errors.New("pack command produced no output")

// Packer runs the packing tool against project directories.
type Packer struct {
	// Tool is the packing tool binary. Empty means DefaultTool.
	Tool string

	logger *logging.Logger
}

// New returns a Packer using the given packing tool binary.
// An empty tool selects DefaultTool.
func New(tool string) *Packer {
	if tool == "" {
		tool = DefaultTool
	}
	return &Packer{
		Tool:   tool,
		logger: logging.Get("packager"),
	}
}

// Pack packages the project at dir into a single archive and returns the
// archive filename relative to dir, as reported by the packing tool.
//
// A missing package.json is not an error: projects that install straight
// from the source tree have nothing to pack, so Pack returns ("", nil).
// The subprocess blocks until it exits; ctx is passed through so a caller
// that terminates can take the tool down with it, but no timeout is set.
func (p *Packer) Pack(ctx context.Context, dir string) (string, error) {
	m, err := manifest.Load(dir)
	if errors.Is(err, fs.ErrNotExist) {
		p.logger.Debug("no manifest, skipping pack", "dir", dir)
		return "", nil
	}
	if err != nil {
		// An unparsable manifest is fatal: the script-stripping step
		// cannot run safely against a file we cannot read back.
		p.logger.Warn("could not parse manifest", "dir", dir, "error", err)
		return "", err
	}

	if m.StripLifecycleScripts() {
		if err := m.Save(); err != nil {
			return "", fmt.Errorf("rewriting manifest: %w", err)
		}
		p.logger.Debug("stripped lifecycle scripts", "manifest", m.Path())
	}

	tool := p.Tool
	if tool == "" {
		tool = DefaultTool
	}
	cmd := exec.CommandContext(ctx, tool, "pack", "--ignore-scripts")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w in %s: %v\n%s", ErrPackFailed, dir, err, out)
	}

	artifact := lastNonEmptyLine(string(out))
	if artifact == "" {
		return "", fmt.Errorf("%w in %s", ErrNoArtifact, dir)
	}

	if info, err := os.Stat(filepath.Join(dir, artifact)); err == nil {
		p.logger.Info("packed", "artifact", artifact, "size", humanize.IBytes(uint64(info.Size())))
	} else {
		p.logger.Info("packed", "artifact", artifact)
	}

	return artifact, nil
}

// lastNonEmptyLine returns the last non-empty line of the tool's output
// with trailing whitespace stripped. By the packing tool's contract this is
// the artifact filename.
func lastNonEmptyLine(out string) string {
	lines := strings.Split(out, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
