// Package inventory gathers what is actually installed on the machine: the
// Homebrew listing, the Python package listing, and the kit bin directory.
// Every source degrades to an empty contribution when it is unavailable;
// a machine without Homebrew still gets a full audit.
package inventory

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/araultra/reconkit/pkg/execx"
	"github.com/araultra/reconkit/pkg/reconcile"
)

// Options configures a Collector.
type Options struct {
	// BrewBin is the Homebrew executable. Defaults to "brew".
	BrewBin string
	// PipBin is the pip executable to list Python packages with. The caller
	// picks the kit venv pip when the venv exists, pip3 otherwise.
	PipBin string
	// BinDir is the directory whose file names count as installed binaries.
	BinDir string
}

// Collector reads the three installed-tool sources.
type Collector struct {
	runner execx.Runner
	opts   Options
}

// New builds a Collector. A nil runner gets the real system runner.
func New(runner execx.Runner, opts Options) *Collector {
	if runner == nil {
		runner = execx.System{}
	}
	if opts.BrewBin == "" {
		opts.BrewBin = "brew"
	}
	if opts.PipBin == "" {
		opts.PipBin = "pip3"
	}
	return &Collector{runner: runner, opts: opts}
}

// Snapshot is everything the machine reports as installed, split by origin
// so the report can print each listing before reconciliation unions them.
type Snapshot struct {
	// BrewPackages holds formula and cask names, merged.
	BrewPackages []string
	// PipPackages holds Python package names.
	PipPackages []string
	// Binaries holds file names from the kit bin directory.
	Binaries []string
	// Notes records sources that degraded to empty, one line per source.
	Notes []string
}

// InstalledSet unions the three listings into the reconciliation input.
func (s Snapshot) InstalledSet() reconcile.Set {
	return reconcile.Union(
		reconcile.NewSet(s.BrewPackages...),
		reconcile.NewSet(s.PipPackages...),
		reconcile.NewSet(s.Binaries...),
	)
}

// Collect reads all sources. It never fails: unavailable sources come back
// as empty listings with a note explaining what was skipped.
func (c *Collector) Collect(ctx context.Context) Snapshot {
	var snap Snapshot

	formulas, err := c.BrewFormulas(ctx)
	if err != nil {
		snap.Notes = append(snap.Notes, fmt.Sprintf("homebrew formulas unavailable: %v", err))
	}
	casks, err := c.BrewCasks(ctx)
	if err != nil {
		snap.Notes = append(snap.Notes, fmt.Sprintf("homebrew casks unavailable: %v", err))
	}
	snap.BrewPackages = reconcile.NewSet(append(formulas, casks...)...).Items()

	pips, err := c.PipPackages(ctx)
	if err != nil {
		snap.Notes = append(snap.Notes, fmt.Sprintf("python packages unavailable: %v", err))
	}
	snap.PipPackages = reconcile.NewSet(pips...).Items()

	bins, err := c.Binaries()
	if err != nil {
		snap.Notes = append(snap.Notes, fmt.Sprintf("bin directory unavailable: %v", err))
	}
	snap.Binaries = reconcile.NewSet(bins...).Items()

	return snap
}

// BrewFormulas lists installed Homebrew formulas, one name per line.
func (c *Collector) BrewFormulas(ctx context.Context) ([]string, error) {
	out, err := c.runner.Output(ctx, execx.Command{
		Name: c.opts.BrewBin,
		Args: []string{"list", "--formula", "-1"},
	})
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// BrewCasks lists installed Homebrew casks, one name per line.
func (c *Collector) BrewCasks(ctx context.Context) ([]string, error) {
	out, err := c.runner.Output(ctx, execx.Command{
		Name: c.opts.BrewBin,
		Args: []string{"list", "--cask", "-1"},
	})
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// PipPackages lists installed Python packages via pip list.
func (c *Collector) PipPackages(ctx context.Context) ([]string, error) {
	out, err := c.runner.Output(ctx, execx.Command{
		Name: c.opts.PipBin,
		Args: []string{"list"},
	})
	if err != nil {
		return nil, err
	}
	return parsePipList(out), nil
}

// Binaries lists the file names in the bin directory. Dot files are noise
// on macOS (.DS_Store) and never tools, so they are dropped.
func (c *Collector) Binaries() ([]string, error) {
	entries, err := os.ReadDir(c.opts.BinDir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// splitLines turns newline-delimited command output into trimmed, non-blank
// entries.
func splitLines(out []byte) []string {
	var names []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	return names
}

// parsePipList extracts package names from pip's column output. Rows start
// after the dashed separator line; the first whitespace-delimited token of
// each row is the name. Output without a separator has no rows.
func parsePipList(out []byte) []string {
	lines := strings.Split(string(out), "\n")
	var names []string
	inRows := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !inRows {
			if trimmed != "" && strings.Trim(trimmed, "- ") == "" {
				inRows = true
			}
			continue
		}
		if trimmed == "" {
			continue
		}
		fields := strings.Fields(trimmed)
		names = append(names, fields[0])
	}
	return names
}
