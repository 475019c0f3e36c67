package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/araultra/reconkit/pkg/audit"
	"github.com/araultra/reconkit/pkg/log"
	"github.com/araultra/reconkit/pkg/pathutil"
	"github.com/araultra/reconkit/pkg/report"
)

var (
	auditProject  string
	auditManifest string
	auditGoBin    string
	auditJSON     bool
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Compare installed tooling against what the project requires",
	Long: `Audit collects the installed inventory (Homebrew packages, pip packages in
the kit virtualenv, binaries in the kit bin directory), scans the project tree
and its requirements.txt for the recon tools they reference, and prints a
sectioned report ending with the two reconciliation lists: tools required but
not installed, and tools installed but not required.

Only an absent project directory is fatal. A missing package manager or
manifest contributes an empty section and the audit carries on.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		paths, err := resolveKit()
		if err != nil {
			return err
		}

		binDir := auditGoBin
		if binDir == "" {
			binDir = cfg.BinDir
		}
		if binDir == "" {
			binDir = paths.Bin
		}

		manifest := auditManifest
		if manifest == "" {
			manifest = cfg.Manifest
		}

		project := resolveProject(auditProject)
		if abs, err := filepath.Abs(project); err == nil && pathutil.PathOverlaps(abs, paths.Root) {
			log.Warnf("kit root %s overlaps the project tree; the scan will read kit sources", paths.Root)
		}

		rep, err := audit.Run(cmd.Context(), audit.Options{
			ProjectDir:   project,
			ManifestPath: manifest,
			Extensions:   cfg.Extensions,
			Tools:        cfg.MergedTools(),
			BrewBin:      cfg.BrewBin,
			PipBin:       resolvePip(paths),
			BinDir:       binDir,
		})
		if err != nil {
			return err
		}

		if auditJSON {
			return report.WriteJSON(os.Stdout, rep)
		}
		return report.Write(os.Stdout, rep)
	},
}

func init() {
	auditCmd.Flags().StringVarP(&auditProject, "project", "p", "", "Project directory to audit (default: config project_dir, else .)")
	auditCmd.Flags().StringVarP(&auditManifest, "manifest", "m", "", "Manifest path (default: requirements.txt in the project root)")
	auditCmd.Flags().StringVar(&auditGoBin, "go-bin", "", "Binary directory to inventory (default: kit bin)")
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "Emit the report as JSON")
	rootCmd.AddCommand(auditCmd)
}
