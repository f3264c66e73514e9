package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/byte4ever/multipush/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configured platforms against the live remotes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := prodDeps()
		if err != nil {
			return err
		}

		return runStatus(d, cmd.OutOrStdout())
	},
}

// platformStatus is one row of the status view.
type platformStatus struct {
	Key       string `json:"key"`
	Enabled   bool   `json:"enabled"`
	Account   string `json:"account,omitempty"`
	ConfigURL string `json:"config_url,omitempty"`
	RemoteURL string `json:"remote_url,omitempty"`

	// InSync is true when a remote binding named
	// after the platform exists and points at the
	// configured URL.
	InSync bool `json:"in_sync"`
}

// statusView is the full status report.
type statusView struct {
	Repository string           `json:"repository"`
	Branch     string           `json:"branch"`
	Platforms  []platformStatus `json:"platforms"`
}

// runStatus renders the configured platforms next to
// the working copy's actual remote bindings, flagging
// drift.
func runStatus(d deps, out io.Writer) error {
	cfg, err := config.Load(d.dir)
	if err != nil {
		if errors.Is(err, config.ErrNoConfig) {
			return errors.New(
				"no configuration found, run \"multipush init\" first",
			)
		}

		return err
	}

	view := buildStatus(d, cfg)

	if jsonOutput {
		by, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(out, string(by))

		return nil
	}

	fmt.Fprintf(
		out, "repository: %s (branch %s)\n",
		view.Repository, view.Branch,
	)

	sync := color.New(color.FgGreen).Sprint("in sync")
	drift := color.New(color.FgYellow).Sprint("drift")
	off := color.New(color.Faint).Sprint("disabled")

	for _, pf := range view.Platforms {
		state := off

		if pf.Enabled {
			state = drift
			if pf.InSync {
				state = sync
			}
		}

		fmt.Fprintf(
			out, "%-10s %-8s %s\n",
			pf.Key, state, pf.ConfigURL,
		)

		if pf.Enabled && !pf.InSync &&
			pf.RemoteURL != "" {
			fmt.Fprintf(
				out, "%-10s %-8s remote points at %s\n",
				"", "", pf.RemoteURL,
			)
		}
	}

	return nil
}

// buildStatus folds the record and the live remote
// listing into the status view. A failing remote
// listing degrades to "no remote present" rows.
func buildStatus(
	d deps,
	cfg *config.Config,
) statusView {
	live := make(map[string]string)

	if remotes, err := d.drv.ListRemotes(
		d.dir,
	); err == nil {
		for _, rm := range remotes {
			live[rm.Name] = rm.FetchURL
		}
	}

	view := statusView{
		Repository: cfg.Repository,
		Branch:     d.drv.CurrentBranch(d.dir),
	}

	for _, key := range d.reg.Keys() {
		pf, ok := cfg.Platforms[key]
		if !ok {
			continue
		}

		remoteURL := live[key]

		view.Platforms = append(
			view.Platforms,
			platformStatus{
				Key:       key,
				Enabled:   pf.Enabled,
				Account:   pf.Account,
				ConfigURL: pf.URL,
				RemoteURL: remoteURL,
				InSync:    remoteURL == pf.URL,
			},
		)
	}

	return view
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
