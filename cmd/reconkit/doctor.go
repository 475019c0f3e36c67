package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/araultra/reconkit/pkg/preflight"
)

// brewAPIURL is probed for reachability; tools verify degrades without it.
const brewAPIURL = "https://formulae.brew.sh"

var doctorProject string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that this machine can run and provision the toolkit",
	Long: `Doctor runs every preflight check: the installer toolchain (brew, git, go,
python3), the project directory when one is configured, the kit bin directory,
PATH coverage, and the Homebrew API. Warnings do not fail the command; any
error-level result does.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		paths, err := resolveKit()
		if err != nil {
			return err
		}

		pfCfg := preflight.Config{
			RequireBrew:   true,
			RequireGit:    true,
			RequireGo:     true,
			RequirePython: true,
			ProjectPath:   doctorProject,
			KitBin:        paths.Bin,
			BrewAPIURL:    brewAPIURL,
		}
		if pfCfg.ProjectPath == "" {
			pfCfg.ProjectPath = cfg.ProjectDir
		}

		results := preflight.NewChecker(pfCfg).Run(cmd.Context())

		var warns, errs int
		for _, r := range results {
			fmt.Printf("[%s] %s: %s\n", r.Level, r.Name, r.Message)
			switch r.Level {
			case preflight.LevelWarn:
				warns++
			case preflight.LevelError:
				errs++
			}
		}
		fmt.Printf("\n%d checks, %d warnings, %d errors\n", len(results), warns, errs)

		if preflight.HasErrors(results) {
			return errors.New("doctor found blocking problems")
		}
		return nil
	},
}

func init() {
	doctorCmd.Flags().StringVarP(&doctorProject, "project", "p", "", "Project directory to check (default: config project_dir)")
	rootCmd.AddCommand(doctorCmd)
}
