package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	yaml "github.com/goccy/go-yaml"

	"github.com/byte4ever/multipush/endpoint"
)

// FileName is the record's well-known name at the
// working-copy root.
const FileName = ".multipush.yml"

// ErrNoConfig reports that no usable configuration
// record exists. Corruption is treated the same as
// absence.
var ErrNoConfig = errors.New("no configuration")

// Platform is the persisted state of one hosting
// platform.
type Platform struct {
	// Enabled marks the platform as a push
	// destination.
	Enabled bool `yaml:"enabled"`

	// Account is the owner/account name on the
	// platform.
	Account string `yaml:"account"`

	// URL is the resolved remote URL. Always equal
	// to rendering the endpoint template with
	// Account and the repository name.
	URL string `yaml:"url"`
}

// Config is the per-working-copy record.
type Config struct {
	// Repository is the repository name shared by
	// all platforms.
	Repository string `yaml:"repository"`

	// Platforms maps endpoint key to platform
	// state. Iterate it through EnabledKeys, never
	// in map order.
	Platforms map[string]Platform `yaml:"platforms"`

	// CreatedAt records when the working copy was
	// first configured.
	CreatedAt time.Time `yaml:"created_at"`
}

// EnabledKeys returns the enabled platform keys in
// registry order. Registry order is the push order and
// is visible in the final report.
func (c *Config) EnabledKeys(
	reg endpoint.Registry,
) []string {
	var keys []string

	for _, key := range reg.Keys() {
		if pf, ok := c.Platforms[key]; ok && pf.Enabled {
			keys = append(keys, key)
		}
	}

	return keys
}

// SetAccount changes the account of one platform and
// regenerates its resolved URL.
func (c *Config) SetAccount(
	reg endpoint.Registry,
	key string,
	account string,
) error {
	const errCtx = "setting account"

	pf, ok := c.Platforms[key]
	if !ok {
		return fmt.Errorf(
			"%s: platform %q not configured",
			errCtx, key,
		)
	}

	url, err := reg.RenderURL(
		key, account, c.Repository,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	pf.Account = account
	pf.URL = url
	c.Platforms[key] = pf

	return nil
}

// SetRepository changes the repository name and
// regenerates every platform's resolved URL.
func (c *Config) SetRepository(
	reg endpoint.Registry,
	name string,
) error {
	const errCtx = "setting repository name"

	c.Repository = name

	for key, pf := range c.Platforms {
		url, err := reg.RenderURL(
			key, pf.Account, name,
		)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		pf.URL = url
		c.Platforms[key] = pf
	}

	return nil
}

// SetEnabled flips the enabled flag of one platform.
func (c *Config) SetEnabled(
	key string,
	enabled bool,
) error {
	const errCtx = "toggling platform"

	pf, ok := c.Platforms[key]
	if !ok {
		return fmt.Errorf(
			"%s: platform %q not configured",
			errCtx, key,
		)
	}

	pf.Enabled = enabled
	c.Platforms[key] = pf

	return nil
}

// Load reads the record from dir. Both a missing and
// an unparseable file yield ErrNoConfig; the caller is
// expected to run the guided init flow in that case.
func Load(dir string) (*Config, error) {
	const errCtx = "loading configuration"

	path := filepath.Join(dir, FileName)

	by, err := os.ReadFile(path) //nolint:gosec // path rooted at the working copy
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %w", errCtx, ErrNoConfig,
		)
	}

	var cfg Config

	if err := yaml.Unmarshal(by, &cfg); err != nil {
		slog.Warn(
			"configuration file is corrupt, treating as absent",
			"path", path,
			"error", err,
		)

		return nil, fmt.Errorf(
			"%s: %w", errCtx, ErrNoConfig,
		)
	}

	if cfg.Platforms == nil {
		cfg.Platforms = make(map[string]Platform)
	}

	return &cfg, nil
}

// Save writes the record to dir atomically: the full
// document goes to a temp file first and is renamed
// into place, so the record is never partially
// written.
func Save(dir string, cfg *Config) error {
	const errCtx = "saving configuration"

	by, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tmp, err := os.CreateTemp(dir, FileName+".*")
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(by); err != nil {
		tmp.Close()        //nolint:errcheck
		os.Remove(tmpName) //nolint:errcheck

		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck

		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := os.Rename(
		tmpName, filepath.Join(dir, FileName),
	); err != nil {
		os.Remove(tmpName) //nolint:errcheck

		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
