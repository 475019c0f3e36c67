// Package kit resolves and maintains the on-disk home of the recon tooling:
// a root directory (default ~/.reconkit) holding installed binaries, git
// clones, the Python virtualenv, and bootstrap receipts.
package kit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/araultra/reconkit/pkg/pathutil"
)

// Paths locates every directory the kit uses.
type Paths struct {
	// Root is the kit home directory.
	Root string
	// Bin holds go-installed binaries and symlinks to git tool entrypoints.
	Bin string
	// Src holds git clones of tools that are run from source.
	Src string
	// Venv is the Python virtualenv pip tools are installed into.
	Venv string
	// Receipts holds one JSON receipt per bootstrap run.
	Receipts string
}

// DefaultRoot returns the kit home under the user's home directory.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user home: %w", err)
	}
	return filepath.Join(home, ".reconkit"), nil
}

// Resolve maps a root directory to the full kit layout. An empty root means
// the default home. The root is made absolute so later chdirs cannot move
// the kit out from under a running command.
func Resolve(root string) (Paths, error) {
	if root == "" {
		def, err := DefaultRoot()
		if err != nil {
			return Paths{}, err
		}
		root = def
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return Paths{}, fmt.Errorf("failed to resolve kit root %q: %w", root, err)
	}
	if pathutil.IsFilesystemRoot(abs) {
		return Paths{}, fmt.Errorf("kit root %s is the filesystem root", abs)
	}
	return Paths{
		Root:     abs,
		Bin:      filepath.Join(abs, "bin"),
		Src:      filepath.Join(abs, "src"),
		Venv:     filepath.Join(abs, "venv"),
		Receipts: filepath.Join(abs, "receipts"),
	}, nil
}

// EnsureLayout creates every kit directory that does not exist yet.
func (p Paths) EnsureLayout() error {
	dirs := []string{p.Root, p.Bin, p.Src, p.Venv, p.Receipts}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// VenvPip returns the pip executable inside the kit virtualenv.
func (p Paths) VenvPip() string {
	return filepath.Join(p.Venv, "bin", "pip")
}

// VenvPython returns the python executable inside the kit virtualenv.
func (p Paths) VenvPython() string {
	return filepath.Join(p.Venv, "bin", "python")
}

// VenvExists reports whether the virtualenv has been created. The marker is
// pyvenv.cfg, which every venv writes at its root.
func (p Paths) VenvExists() bool {
	info, err := os.Stat(filepath.Join(p.Venv, "pyvenv.cfg"))
	return err == nil && info.Mode().IsRegular()
}
