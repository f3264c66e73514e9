package git_test

import (
	"context"
	"os"
	oe "os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/multipush/git"
)

func TestShell_IsRepository(t *testing.T) {
	t.Parallel()

	drv := git.NewShell()

	dir := t.TempDir()
	assert.False(t, drv.IsRepository(dir))

	initGitRepo(t, dir)
	assert.True(t, drv.IsRepository(dir))
}

func TestShell_CurrentBranch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	initGitRepo(t, dir)

	drv := git.NewShell()
	assert.Equal(t, "main", drv.CurrentBranch(dir))

	gitCmd(t, dir, "checkout", "-b", "feature")
	assert.Equal(t, "feature", drv.CurrentBranch(dir))
}

func TestShell_CurrentBranch_outside_repo(t *testing.T) {
	t.Parallel()

	drv := git.NewShell()

	// Falls back to the conventional name.
	assert.Equal(
		t, "main", drv.CurrentBranch(t.TempDir()),
	)
}

func TestShell_AuthorName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	initGitRepo(t, dir)

	drv := git.NewShell()
	assert.Equal(t, "Test", drv.AuthorName(dir))
}

func TestShell_remote_lifecycle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	initGitRepo(t, dir)

	drv := git.NewShell()

	assert.False(t, drv.RemoteExists(dir, "github"))

	err := drv.AddRemote(
		dir, "github",
		"git@github.com:alice/proj.git",
	)
	require.NoError(t, err)
	assert.True(t, drv.RemoteExists(dir, "github"))

	err = drv.SetRemoteURL(
		dir, "github",
		"git@github.com:alice/renamed.git",
	)
	require.NoError(t, err)

	remotes, err := drv.ListRemotes(dir)
	require.NoError(t, err)
	require.Len(t, remotes, 1)

	assert.Equal(t, "github", remotes[0].Name)
	assert.Equal(
		t,
		"git@github.com:alice/renamed.git",
		remotes[0].FetchURL,
	)
	assert.Equal(
		t,
		"git@github.com:alice/renamed.git",
		remotes[0].PushURL,
	)
}

func TestShell_ListRemotes_preserves_order(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	initGitRepo(t, dir)

	drv := git.NewShell()

	require.NoError(t, drv.AddRemote(
		dir, "origin",
		"git@github.com:alice/proj.git",
	))
	require.NoError(t, drv.AddRemote(
		dir, "gitee",
		"git@gitee.com:alice/proj.git",
	))

	remotes, err := drv.ListRemotes(dir)
	require.NoError(t, err)
	require.Len(t, remotes, 2)

	assert.Equal(t, "origin", remotes[0].Name)
	assert.Equal(t, "gitee", remotes[1].Name)
}

func TestShell_SetRemoteURL_missing_remote(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	initGitRepo(t, dir)

	drv := git.NewShell()

	err := drv.SetRemoteURL(
		dir, "nope",
		"git@github.com:alice/proj.git",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestShell_IsClean_and_CommitAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	initGitRepo(t, dir)

	drv := git.NewShell()
	assert.True(t, drv.IsClean(dir))

	writeFile(t, dir, "new.txt", "hello\n")
	assert.False(t, drv.IsClean(dir))

	err := drv.CommitAll(dir, "add new file")
	require.NoError(t, err)
	assert.True(t, drv.IsClean(dir))
}

func TestShell_Push_to_local_bare_remote(t *testing.T) {
	t.Parallel()

	bare := t.TempDir()
	gitCmd(t, bare, "init", "--bare", "-b", "main")

	dir := t.TempDir()
	initGitRepo(t, dir)

	drv := git.NewShell()
	require.NoError(t, drv.AddRemote(dir, "mirror", bare))

	err := drv.Push(
		dir, "mirror", "main", git.PushOptions{},
	)
	require.NoError(t, err)
}

func TestShell_Push_failure_carries_diagnostic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	initGitRepo(t, dir)

	drv := git.NewShell()
	require.NoError(t, drv.AddRemote(
		dir, "mirror", "/nonexistent/nowhere",
	))

	err := drv.Push(
		dir, "mirror", "main", git.PushOptions{},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mirror")
}

// initGitRepo creates a git repository with one
// initial commit. Git hooks are disabled to avoid
// interference from pre-commit hooks.
func initGitRepo(tb testing.TB, dir string) {
	tb.Helper()

	cmds := [][]string{
		{"init", "-b", "main"},
		{
			"config",
			"user.email", "test@test.com",
		},
		{"config", "user.name", "Test"},
		// Disable hooks so pre-commit scanners do
		// not interfere with tests.
		{
			"config", "core.hooksPath",
			"/dev/null",
		},
		{
			"commit", "--allow-empty",
			"-m", "initial",
		},
	}

	for _, args := range cmds {
		gitCmd(tb, dir, args...)
	}
}

// writeFile creates a file under dir.
func writeFile(
	tb testing.TB,
	dir string,
	name string,
	content string,
) {
	tb.Helper()

	//nolint:gosec // test file
	err := os.WriteFile(
		filepath.Join(dir, name),
		[]byte(content),
		0o600,
	)
	if err != nil {
		tb.Fatal(err)
	}
}

// gitCmd runs a git command in the given directory.
func gitCmd(
	tb testing.TB,
	dir string,
	args ...string,
) {
	tb.Helper()

	//nolint:gosec // test helper
	cmd := oe.CommandContext(
		context.Background(), "git", args...,
	)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	if err != nil {
		tb.Fatalf(
			"git %v failed: %s: %v",
			args, string(out), err,
		)
	}
}
