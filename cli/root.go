package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/byte4ever/multipush/endpoint"
	"github.com/byte4ever/multipush/git"
)

// jsonOutput switches machine-readable output on for
// the commands that support it.
var jsonOutput bool

// rootCmd is the root command for multipush.
var rootCmd = &cobra.Command{
	Use:     "multipush",
	Version: "dev",
	Short:   "Push one working copy to several hosting platforms at once",
	Long: `multipush keeps a git working copy's remotes in agreement with a small
per-repository configuration and pushes the current branch to every enabled
hosting platform in one go, reporting per-destination outcomes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// SetVersion overrides the build version shown by
// --version.
func SetVersion(v string) {
	if v == "" {
		return
	}

	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the CLI. The returned error has already
// been silenced by cobra; main prints it and exits 1.
func Execute() error {
	return rootCmd.Execute()
}

// deps bundles what every command needs: the VCS
// driver, the endpoint registry, and the working-copy
// directory.
type deps struct {
	drv git.Driver
	reg endpoint.Registry
	dir string
}

// prodDeps resolves the production dependencies and
// checks the environment: the current directory must
// be inside a git working copy.
func prodDeps() (deps, error) {
	const errCtx = "resolving working copy"

	dir, err := os.Getwd()
	if err != nil {
		return deps{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	drv := git.NewShell()

	if !drv.IsRepository(dir) {
		return deps{}, fmt.Errorf(
			"%s: %w", errCtx, git.ErrNotRepository,
		)
	}

	return deps{
		drv: drv,
		reg: endpoint.Default(),
		dir: dir,
	}, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(
		&jsonOutput, "json", false,
		"output in JSON format",
	)
}
