package pusher

import (
	"fmt"
	"log/slog"

	"github.com/byte4ever/multipush/config"
	"github.com/byte4ever/multipush/endpoint"
	"github.com/byte4ever/multipush/git"
)

// Reconcile makes the working copy's remote bindings
// match the record: every enabled platform gets a
// remote named after its endpoint key pointing at its
// resolved URL, created or repointed as needed.
//
// Reconciliation stops at the first failure and names
// the offending platform; already-reconciled remotes
// are left in place. Misconfiguration is cheap to fix
// and retry, so partial progress is preserved rather
// than rolled back.
//
// Repointing is skipped when the current URL already
// matches, so running Reconcile twice in a row mutates
// nothing the second time.
func Reconcile(
	drv git.Driver,
	reg endpoint.Registry,
	cfg *config.Config,
	dir string,
) error {
	const errCtx = "reconciling remotes"

	current := currentURLs(drv, dir)

	for _, key := range cfg.EnabledKeys(reg) {
		pf := cfg.Platforms[key]

		if drv.RemoteExists(dir, key) {
			if current[key] == pf.URL {
				continue
			}

			if err := drv.SetRemoteURL(
				dir, key, pf.URL,
			); err != nil {
				return fmt.Errorf(
					"%s: %s: %w", errCtx, key, err,
				)
			}

			slog.Info(
				"repointed remote",
				"remote", key,
				"url", pf.URL,
			)

			continue
		}

		if err := drv.AddRemote(
			dir, key, pf.URL,
		); err != nil {
			return fmt.Errorf(
				"%s: %s: %w", errCtx, key, err,
			)
		}

		slog.Info(
			"created remote",
			"remote", key,
			"url", pf.URL,
		)
	}

	return nil
}

// currentURLs snapshots remote name to fetch URL. A
// listing failure degrades to an empty map; existence
// checks still go through the driver.
func currentURLs(
	drv git.Driver,
	dir string,
) map[string]string {
	remotes, err := drv.ListRemotes(dir)
	if err != nil {
		return nil
	}

	urls := make(map[string]string, len(remotes))
	for _, rm := range remotes {
		urls[rm.Name] = rm.FetchURL
	}

	return urls
}
