package pusher

import (
	"errors"
	"log/slog"

	"github.com/byte4ever/multipush/config"
	"github.com/byte4ever/multipush/endpoint"
	"github.com/byte4ever/multipush/git"
)

// ErrNothingToPush reports that no platform is enabled
// in the record. An empty run is surfaced explicitly,
// never as a silent empty report.
var ErrNothingToPush = errors.New(
	"nothing to push: no platform is enabled",
)

// Options adjusts a PushAll run.
type Options struct {
	// Branch overrides the branch to push. Empty
	// means the working copy's current branch.
	Branch string

	// Force adds a force-push directive to every
	// attempt.
	Force bool

	// Tags also pushes tags on every attempt.
	Tags bool
}

// PushAll pushes the branch to every enabled platform
// in registry order. Attempts are independent and
// unconditional: one destination's failure never
// prevents the others from being attempted. The
// returned Report lists outcomes in attempt order.
//
// The only error is ErrNothingToPush when the record
// has no enabled platform.
func PushAll(
	drv git.Driver,
	reg endpoint.Registry,
	cfg *config.Config,
	dir string,
	opts Options,
) (Report, error) {
	keys := cfg.EnabledKeys(reg)
	if len(keys) == 0 {
		return Report{}, ErrNothingToPush
	}

	branch := opts.Branch
	if branch == "" {
		branch = drv.CurrentBranch(dir)
	}

	var report Report

	for _, key := range keys {
		slog.Info(
			"pushing",
			"remote", key,
			"branch", branch,
			"force", opts.Force,
			"tags", opts.Tags,
		)

		err := drv.Push(dir, key, branch, git.PushOptions{
			Force: opts.Force,
			Tags:  opts.Tags,
		})
		if err != nil {
			report.Failures = append(
				report.Failures,
				Failure{
					EndpointKey: key,
					Message:     err.Error(),
				},
			)

			slog.Error(
				"push failed",
				"remote", key,
				"error", err,
			)

			continue
		}

		report.Successes = append(
			report.Successes, key,
		)
	}

	return report, nil
}
