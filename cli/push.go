package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/byte4ever/multipush/config"
	"github.com/byte4ever/multipush/pusher"
)

var (
	pushForce   bool
	pushTags    bool
	pushYes     bool
	pushMessage string
)

var pushCmd = &cobra.Command{
	Use:   "push [branch]",
	Short: "Reconcile remotes and push to every enabled platform",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := prodDeps()
		if err != nil {
			return err
		}

		branch := ""
		if len(args) == 1 {
			branch = args[0]
		}

		return runPush(
			d,
			NewPrompter(os.Stdin, cmd.OutOrStdout()),
			cmd.OutOrStdout(),
			pushRequest{
				Branch:  branch,
				Force:   pushForce,
				Tags:    pushTags,
				Yes:     pushYes,
				Message: pushMessage,
			},
		)
	},
}

// pushRequest carries the parsed push flags.
type pushRequest struct {
	Branch  string
	Force   bool
	Tags    bool
	Yes     bool
	Message string
}

// runPush is the whole push flow: load the record,
// optionally commit pending changes, reconcile the
// remotes, push everywhere, and render the report.
func runPush(
	d deps,
	pr *Prompter,
	out io.Writer,
	req pushRequest,
) error {
	cfg, err := config.Load(d.dir)
	if err != nil {
		if errors.Is(err, config.ErrNoConfig) {
			return errors.New(
				"no configuration found, run \"multipush init\" first",
			)
		}

		return err
	}

	if err := maybeCommit(d, pr, req); err != nil {
		return err
	}

	if !req.Yes && !pr.Confirm(
		fmt.Sprintf(
			"Push to %d platform(s)?",
			len(cfg.EnabledKeys(d.reg)),
		),
		true,
	) {
		return errors.New("aborted")
	}

	// Reconciliation is a precondition: its first
	// failure halts the run before any push.
	if err := pusher.Reconcile(
		d.drv, d.reg, cfg, d.dir,
	); err != nil {
		return err
	}

	report, err := pusher.PushAll(
		d.drv, d.reg, cfg, d.dir,
		pusher.Options{
			Branch: req.Branch,
			Force:  req.Force,
			Tags:   req.Tags,
		},
	)
	if err != nil {
		return err
	}

	if err := renderReport(out, report); err != nil {
		return err
	}

	if !report.Ok() {
		return fmt.Errorf(
			"%d push(es) failed",
			len(report.Failures),
		)
	}

	return nil
}

// maybeCommit offers to commit a dirty tree before
// pushing. A declined offer is not an error; the push
// proceeds with whatever is committed.
func maybeCommit(
	d deps,
	pr *Prompter,
	req pushRequest,
) error {
	if d.drv.IsClean(d.dir) {
		return nil
	}

	message := req.Message

	switch {
	case message != "":
		// Explicit -m always commits.
	case req.Yes:
		// Non-interactive run, leave the tree as
		// is.
		return nil
	default:
		if !pr.Confirm(
			"Working tree has uncommitted changes, commit them?",
			false,
		) {
			return nil
		}

		message = pr.Ask("Commit message", "update")
	}

	return d.drv.CommitAll(d.dir, message)
}

// renderReport prints the push report, colored for
// humans or as JSON with --json.
func renderReport(
	out io.Writer,
	report pusher.Report,
) error {
	if jsonOutput {
		by, err := json.MarshalIndent(
			report, "", "  ",
		)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, string(by))

		return nil
	}

	okMark := color.New(color.FgGreen).Sprint("ok")
	koMark := color.New(color.FgRed).Sprint("failed")

	for _, key := range report.Successes {
		fmt.Fprintf(out, "%s\t%s\n", okMark, key)
	}

	for _, f := range report.Failures {
		fmt.Fprintf(
			out, "%s\t%s: %s\n",
			koMark, f.EndpointKey, f.Message,
		)
	}

	return nil
}

func init() {
	pushCmd.Flags().BoolVarP(
		&pushForce, "force", "f", false,
		"force push",
	)
	pushCmd.Flags().BoolVarP(
		&pushTags, "tags", "t", false,
		"also push tags",
	)
	pushCmd.Flags().BoolVarP(
		&pushYes, "yes", "y", false,
		"skip confirmation prompts",
	)
	pushCmd.Flags().StringVarP(
		&pushMessage, "message", "m", "",
		"commit pending changes with this message before pushing",
	)

	rootCmd.AddCommand(pushCmd)
}
