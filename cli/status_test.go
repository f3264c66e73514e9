package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStatus(t *testing.T) {
	d, drv := testDeps(t, nil)
	drv.Branch = "develop"

	// github in sync, gitee drifted, bitbucket has
	// no remote at all.
	cfg := aliceConfig()
	cfg.Platforms["bitbucket"] = cfg.Platforms["github"]

	drv.SeedRemote(
		"github", "git@github.com:alice/proj.git",
	)
	drv.SeedRemote(
		"gitee", "git@gitee.com:old/proj.git",
	)

	view := buildStatus(d, cfg)

	assert.Equal(t, "proj", view.Repository)
	assert.Equal(t, "develop", view.Branch)

	// Rows come out in registry order.
	require.Len(t, view.Platforms, 3)
	assert.Equal(t, "github", view.Platforms[0].Key)
	assert.Equal(t, "gitee", view.Platforms[1].Key)
	assert.Equal(
		t, "bitbucket", view.Platforms[2].Key,
	)

	assert.True(t, view.Platforms[0].InSync)

	assert.False(t, view.Platforms[1].InSync)
	assert.Equal(
		t,
		"git@gitee.com:old/proj.git",
		view.Platforms[1].RemoteURL,
	)

	assert.False(t, view.Platforms[2].InSync)
	assert.Empty(t, view.Platforms[2].RemoteURL)
}

func TestBuildStatus_listing_failure_degrades(t *testing.T) {
	d, drv := testDeps(t, nil)
	drv.FailList = true

	view := buildStatus(d, aliceConfig())

	require.Len(t, view.Platforms, 2)

	for _, pf := range view.Platforms {
		assert.False(t, pf.InSync)
		assert.Empty(t, pf.RemoteURL)
	}
}
