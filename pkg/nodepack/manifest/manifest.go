// Package manifest reads and rewrites package.json files for the packaging
// step. The only mutation it supports is removing lifecycle script hooks
// that must not run while a project is being packed.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Filename is the manifest file name at a project root.
const Filename = "package.json"

// LifecycleScripts are the script hooks stripped before packing. The
// packing tool's own --ignore-scripts flag does not suppress these three,
// so removing them from the manifest is the only reliable way to keep
// them from running.
var LifecycleScripts = []string{"prepare", "prepack", "postpack"}

// Manifest is a parsed package.json. Mutations operate on the decoded
// document; nothing touches disk until Save is called.
type Manifest struct {
	path string
	doc  map[string]any
}

// Path returns the manifest file path on disk.
func (m *Manifest) Path() string {
	return m.path
}

// Load parses the package.json at the given project root.
// If the file does not exist the returned error wraps fs.ErrNotExist;
// callers treat that as "nothing to do", not a failure.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, Filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &Manifest{path: path, doc: doc}, nil
}

// Scripts returns the manifest's scripts mapping, or nil if absent or not
// an object.
func (m *Manifest) Scripts() map[string]any {
	scripts, ok := m.doc["scripts"].(map[string]any)
	if !ok {
		return nil
	}
	return scripts
}

// StripLifecycleScripts removes the prepare, prepack and postpack hooks
// from the scripts mapping. It reports whether any entry was removed, so
// callers can skip rewriting an untouched manifest.
func (m *Manifest) StripLifecycleScripts() bool {
	scripts := m.Scripts()
	if scripts == nil {
		return false
	}

	removed := false
	for _, name := range LifecycleScripts {
		if _, ok := scripts[name]; ok {
			delete(scripts, name)
			removed = true
		}
	}
	return removed
}

// Save rewrites the manifest file with pretty-printed JSON using an atomic
// replace, so a reader never observes a partially written file.
func (m *Manifest) Save() error {
	data, err := json.MarshalIndent(m.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", m.path, err)
	}
	data = append(data, '\n')

	// Write atomically using a temp file and rename
	tmpPath := fmt.Sprintf("%s.%s.tmp", m.path, uuid.NewString())
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing temp manifest: %w", err)
	}

	if err := os.Rename(tmpPath, m.path); err != nil {
		// Cleanup temp file on rename failure
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", m.path, err)
	}

	return nil
}
