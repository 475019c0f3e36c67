// Package audit runs one reconciliation pass: validate the project, collect
// the installed inventory, scan the sources, parse the manifest, and compare
// required against installed. Every run is stateless; nothing persists
// between invocations.
package audit

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/araultra/reconkit/pkg/catalog"
	"github.com/araultra/reconkit/pkg/execx"
	"github.com/araultra/reconkit/pkg/inventory"
	"github.com/araultra/reconkit/pkg/log"
	"github.com/araultra/reconkit/pkg/reconcile"
	"github.com/araultra/reconkit/pkg/report"
	"github.com/araultra/reconkit/pkg/scan"
)

// DefaultManifestName is the manifest looked for in the project root when
// no explicit path is given.
const DefaultManifestName = "requirements.txt"

// Options configures one audit run.
type Options struct {
	// ProjectDir is the tree to scan. Its absence is the only fatal input;
	// everything else degrades to an empty contribution.
	ProjectDir string
	// ManifestPath overrides the manifest location. Empty means
	// requirements.txt in the project root.
	ManifestPath string
	// Extensions restricts which project files are scanned.
	Extensions []string
	// Tools is the allow-list whose names the scan looks for.
	Tools []catalog.Tool
	// BrewBin, PipBin and BinDir configure the inventory collector.
	BrewBin string
	PipBin  string
	BinDir  string
	// Runner executes external commands; nil means the real system.
	Runner execx.Runner
}

// Run produces the audit report. The returned error is fatal by definition:
// soft conditions are logged and absorbed before this returns.
func Run(ctx context.Context, opts Options) (report.Report, error) {
	if opts.ProjectDir == "" {
		return report.Report{}, errors.New("project directory is required")
	}

	names := make([]string, len(opts.Tools))
	for i, t := range opts.Tools {
		names[i] = t.Name
	}

	// The project gate comes first so a bad target fails before any
	// listing command runs.
	scanRes, err := scan.Project(scan.Options{
		Root:        opts.ProjectDir,
		Extensions:  opts.Extensions,
		Identifiers: names,
	})
	if err != nil {
		return report.Report{}, err
	}
	for _, note := range scanRes.Notes {
		log.Warnf("scan: %s", note)
	}
	log.Debugf("scanned %d files under %s", scanRes.FilesScanned, opts.ProjectDir)

	collector := inventory.New(opts.Runner, inventory.Options{
		BrewBin: opts.BrewBin,
		PipBin:  opts.PipBin,
		BinDir:  opts.BinDir,
	})
	snap := collector.Collect(ctx)
	for _, note := range snap.Notes {
		log.Warnf("inventory: %s", note)
	}

	manifestPath := opts.ManifestPath
	if manifestPath == "" {
		manifestPath = filepath.Join(opts.ProjectDir, DefaultManifestName)
	}
	manifestNames, err := scan.ParseManifest(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("no manifest at %s", manifestPath)
		} else {
			log.Warnf("manifest %s unreadable: %v", manifestPath, err)
		}
		manifestNames = nil
	}

	required := reconcile.NewSet(scanRes.Referenced...).
		Union(reconcile.NewSet(manifestNames...))
	installed := snap.InstalledSet()
	res := reconcile.Reconcile(required, installed)

	return report.Report{
		BrewPackages:     snap.BrewPackages,
		PipPackages:      snap.PipPackages,
		Binaries:         snap.Binaries,
		Imports:          scanRes.Imports,
		ManifestPackages: manifestNames,
		Referenced:       scanRes.Referenced,
		Missing:          res.Missing.Items(),
		Extra:            res.Extra.Items(),
	}, nil
}
