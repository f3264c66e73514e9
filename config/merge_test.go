package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/multipush/config"
	"github.com/byte4ever/multipush/endpoint"
)

func TestMergeForInit_uniform_account(t *testing.T) {
	t.Parallel()

	reg := endpoint.Default()

	cfg, err := config.MergeForInit(
		nil, reg, "proj",
		map[string]string{"github": "discovered"},
		config.Selections{
			Selected:       []string{"github", "gitee"},
			UniformAccount: "alice",
			Fallback:       "Author Name",
		},
	)
	require.NoError(t, err)

	// Uniform account beats even a discovered one.
	for _, key := range []string{"github", "gitee"} {
		pf := cfg.Platforms[key]
		assert.True(t, pf.Enabled)
		assert.Equal(t, "alice", pf.Account)
	}

	assert.Equal(
		t,
		"git@gitee.com:alice/proj.git",
		cfg.Platforms["gitee"].URL,
	)
}

func TestMergeForInit_account_priority(t *testing.T) {
	t.Parallel()

	reg := endpoint.Default()

	prev := &config.Config{
		Repository: "proj",
		Platforms: map[string]config.Platform{
			"gitee": {
				Enabled: true,
				Account: "persisted",
				URL:     "git@gitee.com:persisted/proj.git",
			},
		},
	}

	cfg, err := config.MergeForInit(
		prev, reg, "proj",
		map[string]string{"github": "discovered"},
		config.Selections{
			Selected: []string{
				"github", "gitee", "gitlab",
			},
			Fallback: "author",
		},
	)
	require.NoError(t, err)

	// Discovered beats persisted beats fallback.
	assert.Equal(
		t, "discovered",
		cfg.Platforms["github"].Account,
	)
	assert.Equal(
		t, "persisted",
		cfg.Platforms["gitee"].Account,
	)
	assert.Equal(
		t, "author",
		cfg.Platforms["gitlab"].Account,
	)
}

func TestMergeForInit_untouched_platforms_survive(t *testing.T) {
	t.Parallel()

	reg := endpoint.Default()

	prev := &config.Config{
		Repository: "proj",
		Platforms: map[string]config.Platform{
			"bitbucket": {
				Enabled: true,
				Account: "carol",
				URL:     "git@bitbucket.org:carol/proj.git",
			},
		},
		CreatedAt: time.Date(
			2025, 3, 1, 0, 0, 0, 0, time.UTC,
		),
	}

	cfg, err := config.MergeForInit(
		prev, reg, "proj", nil,
		config.Selections{
			Selected:       []string{"github"},
			UniformAccount: "alice",
		},
	)
	require.NoError(t, err)

	// A uniform account never leaks onto platforms
	// that were not re-selected in this run.
	pf := cfg.Platforms["bitbucket"]
	assert.True(t, pf.Enabled)
	assert.Equal(t, "carol", pf.Account)
	assert.Equal(
		t, "git@bitbucket.org:carol/proj.git", pf.URL,
	)

	assert.Equal(t, prev.CreatedAt, cfg.CreatedAt)
}

func TestMergeForInit_rename_regenerates_carried_urls(t *testing.T) {
	t.Parallel()

	reg := endpoint.Default()

	prev := &config.Config{
		Repository: "proj",
		Platforms: map[string]config.Platform{
			"gitee": {
				Enabled: true,
				Account: "bob",
				URL:     "git@gitee.com:bob/proj.git",
			},
		},
	}

	cfg, err := config.MergeForInit(
		prev, reg, "renamed", nil,
		config.Selections{
			Selected:       []string{"github"},
			UniformAccount: "alice",
		},
	)
	require.NoError(t, err)

	// Carried-over entries keep account and enabled
	// state but follow the new repository name.
	assert.Equal(
		t,
		"git@gitee.com:bob/renamed.git",
		cfg.Platforms["gitee"].URL,
	)
}

func TestMergeForInit_fresh_record_has_created_at(t *testing.T) {
	t.Parallel()

	cfg, err := config.MergeForInit(
		nil, endpoint.Default(), "proj", nil,
		config.Selections{
			Selected:       []string{"github"},
			UniformAccount: "alice",
		},
	)
	require.NoError(t, err)
	assert.False(t, cfg.CreatedAt.IsZero())
}
