package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/araultra/reconkit/pkg/catalog"
	"github.com/araultra/reconkit/pkg/execx"
	"github.com/araultra/reconkit/pkg/sources"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect the recon tool catalog",
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog tools with their install method and status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		paths, err := resolveKit()
		if err != nil {
			return err
		}

		runner := execx.System{}
		w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tMETHOD\tSOURCE\tINSTALLED")
		for _, t := range cfg.MergedTools() {
			installed := "-"
			if toolInstalled(runner, paths.Bin, t) {
				installed = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Name, t.Method, t.Source, installed)
		}
		return w.Flush()
	},
}

// toolInstalled reports whether the tool's binary resolves on PATH or sits in
// the kit bin, which may not be on PATH yet.
func toolInstalled(runner execx.Runner, kitBin string, t catalog.Tool) bool {
	bin := t.BinaryName()
	if _, err := runner.LookPath(bin); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(kitBin, bin)); err == nil {
		return true
	}
	return false
}

var toolsVerifyOnly []string

var toolsVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify catalog sources against their upstream registries",
	Long: `Verify resolves every catalog entry against the registry it installs from:
the Homebrew JSON API for formulas and casks, the PyPI JSON API for pip
packages, and the GitHub API for go-installed and git-cloned tools. Entries
hosted outside github.com are skipped. The command exits non-zero when any
source is missing or errored.

Set GITHUB_TOKEN (or GH_TOKEN) to raise the GitHub rate limit.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tools := cfg.MergedTools()
		if len(toolsVerifyOnly) > 0 {
			byName := make(map[string]catalog.Tool, len(tools))
			for _, t := range tools {
				byName[t.Name] = t
			}
			picked := make([]catalog.Tool, 0, len(toolsVerifyOnly))
			for _, name := range toolsVerifyOnly {
				t, ok := byName[name]
				if !ok {
					return fmt.Errorf("unknown tool %q: not in the catalog", name)
				}
				picked = append(picked, t)
			}
			tools = picked
		}

		verifier := sources.NewVerifier(cmd.Context())
		results := verifier.VerifyAll(cmd.Context(), tools)

		w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tMETHOD\tSTATUS\tVERSION\tDETAIL")
		var bad int
		for _, r := range results {
			version := r.Version
			if version == "" {
				version = "-"
			}
			detail := r.Detail
			if detail == "" {
				detail = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Name, r.Method, r.Status, version, detail)
			if r.Status == sources.StatusMissing || r.Status == sources.StatusError {
				bad++
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if bad > 0 {
			return fmt.Errorf("%d source(s) failed verification", bad)
		}
		return nil
	},
}

func init() {
	toolsVerifyCmd.Flags().StringSliceVar(&toolsVerifyOnly, "only", nil, "Verify only the named tools")
	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsVerifyCmd)
	rootCmd.AddCommand(toolsCmd)
}
