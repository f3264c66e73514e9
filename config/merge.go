package config

import (
	"fmt"
	"time"

	"github.com/byte4ever/multipush/endpoint"
)

// Selections carries the operator's already-validated
// init answers. Interactive collection happens outside
// the core; this package only folds the answers into a
// record.
type Selections struct {
	// Selected lists the endpoint keys the operator
	// chose to enable in this run.
	Selected []string

	// UniformAccount, when non-empty, is used as
	// the account for every selected platform.
	UniformAccount string

	// Fallback is the identity used when neither
	// discovery nor a prior record supplies an
	// account (typically the VCS author name).
	Fallback string
}

// MergeForInit folds a previous record (nil when
// absent), discovered per-platform accounts, and the
// operator's selections into a fresh record.
//
// Account priority per selected platform: the uniform
// account when one was chosen, else the discovered
// account, else the previously persisted account, else
// the fallback identity.
//
// Platforms not selected in this run are carried over
// from the previous record unmodified except for their
// resolved URL, which is regenerated so it never
// diverges from the repository name.
func MergeForInit(
	prev *Config,
	reg endpoint.Registry,
	repository string,
	discovered map[string]string,
	sel Selections,
) (*Config, error) {
	const errCtx = "merging configuration"

	cfg := &Config{
		Repository: repository,
		Platforms:  make(map[string]Platform),
		CreatedAt:  time.Now(),
	}

	if prev != nil && !prev.CreatedAt.IsZero() {
		cfg.CreatedAt = prev.CreatedAt
	}

	// Carry over everything the operator did not
	// touch in this run.
	if prev != nil {
		for key, pf := range prev.Platforms {
			cfg.Platforms[key] = pf
		}
	}

	for _, key := range sel.Selected {
		account := resolveAccount(
			prev, key, discovered, sel,
		)

		url, err := reg.RenderURL(
			key, account, repository,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		cfg.Platforms[key] = Platform{
			Enabled: true,
			Account: account,
			URL:     url,
		}
	}

	// Regenerate carried-over URLs against the
	// possibly changed repository name.
	for key, pf := range cfg.Platforms {
		url, err := reg.RenderURL(
			key, pf.Account, repository,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		pf.URL = url
		cfg.Platforms[key] = pf
	}

	return cfg, nil
}

// resolveAccount applies the account priority order
// for one selected platform.
func resolveAccount(
	prev *Config,
	key string,
	discovered map[string]string,
	sel Selections,
) string {
	if sel.UniformAccount != "" {
		return sel.UniformAccount
	}

	if account, ok := discovered[key]; ok && account != "" {
		return account
	}

	if prev != nil {
		if pf, ok := prev.Platforms[key]; ok &&
			pf.Account != "" {
			return pf.Account
		}
	}

	return sel.Fallback
}
