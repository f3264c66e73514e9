package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/byte4ever/multipush/config"
	"github.com/byte4ever/multipush/pusher"
)

var initYes bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Configure push destinations for this working copy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := prodDeps()
		if err != nil {
			return err
		}

		return runInit(
			d,
			NewPrompter(os.Stdin, cmd.OutOrStdout()),
			cmd.OutOrStdout(),
			initYes,
		)
	},
}

// runInit is the guided configuration flow: discover
// what the remotes already say, collect the operator's
// choices, fold everything into a record, persist it,
// and reconcile the remotes to match.
func runInit(
	d deps,
	pr *Prompter,
	out io.Writer,
	assumeYes bool,
) error {
	disc := pusher.Discover(d.drv, d.reg, d.dir)

	// A previous record seeds defaults; absence and
	// corruption both just mean a fresh start.
	prev, err := config.Load(d.dir)
	if err != nil && !errors.Is(err, config.ErrNoConfig) {
		return err
	}

	repository := disc.Repository
	if repository == "" {
		repository = pr.Ask("Repository name", "")
	} else if !assumeYes {
		repository = pr.Ask(
			"Repository name", repository,
		)
	}

	if repository == "" {
		return errors.New(
			"a repository name is required",
		)
	}

	var preselected []string

	for _, key := range d.reg.Keys() {
		if _, ok := disc.Platforms[key]; ok {
			preselected = append(preselected, key)
		}
	}

	selected := preselected
	if !assumeYes {
		selected = pr.SelectPlatforms(
			d.reg, preselected,
		)
	}

	if len(selected) == 0 {
		return errors.New("no platform selected")
	}

	uniform := ""
	if !assumeYes {
		uniform = pr.Ask(
			"Account for all selected platforms (empty to decide per platform)",
			"",
		)
	}

	cfg, err := config.MergeForInit(
		prev, d.reg, repository, disc.Accounts(),
		config.Selections{
			Selected:       selected,
			UniformAccount: uniform,
			Fallback:       d.drv.AuthorName(d.dir),
		},
	)
	if err != nil {
		return err
	}

	if err := config.Save(d.dir, cfg); err != nil {
		return err
	}

	if err := pusher.Reconcile(
		d.drv, d.reg, cfg, d.dir,
	); err != nil {
		return err
	}

	fmt.Fprintf(
		out,
		"configured %d platform(s) for %s\n",
		len(cfg.EnabledKeys(d.reg)), repository,
	)

	return nil
}

func init() {
	initCmd.Flags().BoolVarP(
		&initYes, "yes", "y", false,
		"accept discovered defaults without prompting",
	)

	rootCmd.AddCommand(initCmd)
}
