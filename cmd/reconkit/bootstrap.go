package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/araultra/reconkit/pkg/bootstrap"
	"github.com/araultra/reconkit/pkg/execx"
	"github.com/araultra/reconkit/pkg/log"
	"github.com/araultra/reconkit/pkg/preflight"
)

var (
	bootstrapOnly          []string
	bootstrapDryRun        bool
	bootstrapSkipPreflight bool
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Install the recon tool catalog into the kit home",
	Long: `Bootstrap plans and runs the installation of every catalog tool: Homebrew
formulas and casks, pip packages into the kit virtualenv (created on first
need), go-installed binaries into the kit bin, and git-cloned tools with their
entrypoints symlinked into the kit bin.

Steps run sequentially and a failing tool does not stop the rest; failures are
collected and the command exits non-zero when any step failed. Every real run
writes a JSON receipt under the kit receipts directory.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		paths, err := resolveKit()
		if err != nil {
			return err
		}

		plan, err := bootstrap.NewPlan(bootstrap.Options{
			Kit:     paths,
			Tools:   cfg.MergedTools(),
			Only:    bootstrapOnly,
			BrewBin: cfg.BrewBin,
		})
		if err != nil {
			return err
		}
		if len(plan.Steps) == 0 {
			log.Progress("nothing to install")
			return nil
		}

		if bootstrapDryRun {
			for _, line := range plan.Describe() {
				fmt.Println(line)
			}
			return nil
		}

		needs := plan.Needs()
		checker := preflight.NewChecker(preflight.Config{
			Skip:          bootstrapSkipPreflight,
			RequireBrew:   needs.Brew,
			RequireGit:    needs.Git,
			RequireGo:     needs.Go,
			RequirePython: needs.Python,
			KitBin:        paths.Bin,
		})
		if err := preflight.Summarize(checker.Run(cmd.Context())); err != nil {
			return err
		}

		res, err := bootstrap.Execute(cmd.Context(), execx.System{}, plan)
		if err != nil {
			return err
		}

		if receipt, err := bootstrap.WriteReceipt(paths, res); err != nil {
			log.Warnf("bootstrap: %v", err)
		} else {
			log.Progressf("receipt written to %s", receipt)
		}

		if failed := res.FailedSteps(); len(failed) > 0 {
			names := make([]string, len(failed))
			for i, f := range failed {
				names[i] = f.Name
			}
			return fmt.Errorf("bootstrap finished with %d failed step(s): %s",
				len(failed), strings.Join(names, ", "))
		}

		log.Progressf("bootstrap complete: %d step(s)", len(res.Steps))
		return nil
	},
}

func init() {
	bootstrapCmd.Flags().StringSliceVar(&bootstrapOnly, "only", nil, "Install only the named tools")
	bootstrapCmd.Flags().BoolVar(&bootstrapDryRun, "dry-run", false, "Print the install plan without executing it")
	bootstrapCmd.Flags().BoolVar(&bootstrapSkipPreflight, "skip-preflight", false, "Skip the toolchain checks before installing")
	rootCmd.AddCommand(bootstrapCmd)
}
