// Package nodeenv puts the package manager's node toolchain ahead of any
// user-installed copy for the duration of a build. Setup is best-effort:
// a build that never resolves node keeps the environment it started with.
package nodeenv

import (
	"os"
	"sync"

	"github.com/kegworks/nodepack/pkg/nodepack/formula"
	"github.com/kegworks/nodepack/pkg/nodepack/logging"
)

// NodeFormula is the dependency name resolved during environment setup.
const NodeFormula = "node"

var setupOnce sync.Once

// Setup prepends the registry's node bin directory to PATH so node and its
// companion tools resolve ahead of user-installed copies. It runs at most
// once per process; later calls are no-ops regardless of the registry
// passed. An unavailable node formula is ignored and PATH is left alone.
func Setup(reg formula.Registry) {
	setupOnce.Do(func() {
		logger := logging.Get("nodeenv")

		prefix, err := reg.Prefix(NodeFormula)
		if err != nil {
			logger.Debug("node unavailable, leaving PATH unchanged", "error", err)
			return
		}

		binDir := formula.BinDir(prefix)
		path := os.Getenv("PATH")
		if path == "" {
			path = binDir
		} else {
			path = binDir + string(os.PathListSeparator) + path
		}
		if err := os.Setenv("PATH", path); err != nil {
			logger.Warn("could not update PATH", "error", err)
			return
		}
		logger.Debug("prepended node bin dir to PATH", "dir", binDir)
	})
}

// reset re-arms the one-shot latch. Tests only.
func reset() {
	setupOnce = sync.Once{}
}
