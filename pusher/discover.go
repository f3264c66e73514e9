package pusher

import (
	"log/slog"
	"path/filepath"

	"github.com/byte4ever/multipush/endpoint"
	"github.com/byte4ever/multipush/git"
)

// primaryRemote is the conventional name whose parsed
// repository name outranks every other guess.
const primaryRemote = "origin"

// PlatformInfo is what discovery learned about one
// platform from an existing remote binding.
type PlatformInfo struct {
	// Account is the owner parsed from the remote
	// URL.
	Account string

	// Binding is the remote name the information
	// came from.
	Binding string

	// URL is the remote URL that matched.
	URL string
}

// Discovery is the read-only result of inspecting a
// working copy's remote bindings.
type Discovery struct {
	// Repository is the best repository-name guess:
	// the name parsed from the primary remote, else
	// the first parsed name, else the working-copy
	// directory basename.
	Repository string

	// Platforms maps endpoint key to the first
	// binding discovered for it.
	Platforms map[string]PlatformInfo
}

// Accounts returns the discovered account per endpoint
// key, in the shape config.MergeForInit consumes.
func (d Discovery) Accounts() map[string]string {
	out := make(map[string]string, len(d.Platforms))
	for key, info := range d.Platforms {
		out[key] = info.Account
	}

	return out
}

// Discover inspects the working copy at dir and
// classifies every remote binding against the
// registry. It is read-only and never fails: when the
// underlying VCS query errors (e.g. dir is not a
// repository) it returns an empty Discovery.
//
// The fold over bindings is deterministic: bindings
// are processed in the tool's listing order, the URL
// classified is the fetch URL with the push URL as
// fallback, and the first binding seen per endpoint
// key wins.
func Discover(
	drv git.Driver,
	reg endpoint.Registry,
	dir string,
) Discovery {
	disc := Discovery{
		Platforms: make(map[string]PlatformInfo),
	}

	remotes, err := drv.ListRemotes(dir)
	if err != nil {
		slog.Warn(
			"remote discovery skipped",
			"error", err,
		)

		return Discovery{}
	}

	var primaryRepo, firstRepo string

	for _, rm := range remotes {
		url := rm.FetchURL
		if url == "" {
			url = rm.PushURL
		}

		key, account, repo, ok := reg.Match(url)
		if !ok {
			// Unknown host: ignored for discovery,
			// not an error.
			continue
		}

		if rm.Name == primaryRemote {
			primaryRepo = repo
		}

		if firstRepo == "" {
			firstRepo = repo
		}

		if _, seen := disc.Platforms[key]; seen {
			continue
		}

		disc.Platforms[key] = PlatformInfo{
			Account: account,
			Binding: rm.Name,
			URL:     url,
		}
	}

	switch {
	case primaryRepo != "":
		disc.Repository = primaryRepo
	case firstRepo != "":
		disc.Repository = firstRepo
	default:
		disc.Repository = filepath.Base(dir)
	}

	return disc
}
