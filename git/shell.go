package git

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Shell is the production Driver. It invokes the git
// binary in the working-copy directory and interprets
// exit status and text output.
type Shell struct{}

var _ Driver = (*Shell)(nil)

// NewShell returns a Driver backed by the git binary.
func NewShell() *Shell {
	return &Shell{}
}

// run executes git with the given arguments in dir and
// returns combined stdout+stderr output. Pass empty
// dir to use the current working directory.
func run(
	dir string,
	arg ...string,
) (string, error) {
	const errCtx = "executing git"

	slog.Info(
		"executing",
		"cmd", "git",
		"args", strings.Join(arg, " "),
	)

	cmd := exec.CommandContext(
		context.Background(), "git", arg...,
	)
	if dir != "" {
		cmd.Dir = dir
	}

	by, err := cmd.CombinedOutput()

	slog.Debug("output", "result", string(by))

	if err != nil {
		return string(by), fmt.Errorf(
			"%s: git %s: %w",
			errCtx, strings.Join(arg, " "), err,
		)
	}

	return string(by), nil
}

// IsRepository reports whether dir is inside a git
// working copy.
func (s *Shell) IsRepository(dir string) bool {
	out, err := run(
		dir, "rev-parse", "--is-inside-work-tree",
	)

	return err == nil &&
		strings.TrimSpace(out) == "true"
}

// CurrentBranch returns the checked-out branch name.
// Detached or unreadable HEAD falls back to "main".
func (s *Shell) CurrentBranch(dir string) string {
	out, err := run(
		dir, "rev-parse", "--abbrev-ref", "HEAD",
	)
	if err != nil {
		return "main"
	}

	branch := strings.TrimSpace(out)
	if branch == "" || branch == "HEAD" {
		return "main"
	}

	return branch
}

// AuthorName returns the configured user.name, empty
// when unset.
func (s *Shell) AuthorName(dir string) string {
	out, err := run(dir, "config", "user.name")
	if err != nil {
		return ""
	}

	return strings.TrimSpace(out)
}

// ListRemotes parses "git remote -v" output into
// Remote values. Lines look like
// "origin\tgit@github.com:a/b.git (fetch)".
func (s *Shell) ListRemotes(dir string) ([]Remote, error) {
	const errCtx = "listing remotes"

	out, err := run(dir, "remote", "-v")
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	byName := make(map[string]*Remote)

	var order []string

	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			continue
		}

		name, url, kind := fields[0], fields[1], fields[2]

		rm, seen := byName[name]
		if !seen {
			rm = &Remote{Name: name}
			byName[name] = rm
			order = append(order, name)
		}

		switch kind {
		case "(fetch)":
			rm.FetchURL = url
		case "(push)":
			rm.PushURL = url
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	remotes := make([]Remote, 0, len(order))
	for _, name := range order {
		remotes = append(remotes, *byName[name])
	}

	return remotes, nil
}

// RemoteExists reports whether a remote binding with
// the given name exists.
func (s *Shell) RemoteExists(dir string, name string) bool {
	_, err := run(dir, "remote", "get-url", name)

	return err == nil
}

// AddRemote creates a new remote binding.
func (s *Shell) AddRemote(
	dir string,
	name string,
	url string,
) error {
	const errCtx = "adding remote"

	if out, err := run(
		dir, "remote", "add", name, url,
	); err != nil {
		return fmt.Errorf(
			"%s %s: %s", errCtx, name,
			diagnostic(out, err),
		)
	}

	return nil
}

// SetRemoteURL repoints an existing remote binding.
func (s *Shell) SetRemoteURL(
	dir string,
	name string,
	url string,
) error {
	const errCtx = "setting remote url"

	if out, err := run(
		dir, "remote", "set-url", name, url,
	); err != nil {
		return fmt.Errorf(
			"%s %s: %s", errCtx, name,
			diagnostic(out, err),
		)
	}

	return nil
}

// Push sends branch to the named remote. The call
// blocks until git returns; there is no timeout here,
// interruption is the operator's signal to handle.
func (s *Shell) Push(
	dir string,
	remote string,
	branch string,
	opts PushOptions,
) error {
	const errCtx = "pushing"

	args := []string{"push", remote, branch}

	if opts.Force {
		args = append(args, "--force")
	}

	if opts.Tags {
		args = append(args, "--tags")
	}

	if out, err := run(dir, args...); err != nil {
		return fmt.Errorf(
			"%s to %s: %s", errCtx, remote,
			diagnostic(out, err),
		)
	}

	return nil
}

// IsClean reports whether the working tree has no
// uncommitted changes.
func (s *Shell) IsClean(dir string) bool {
	out, err := run(dir, "status", "--porcelain")
	if err != nil {
		slog.Error(
			"failed to check repo status",
			"error", err,
		)

		return false
	}

	return strings.TrimSpace(out) == ""
}

// CommitAll stages every change and commits it with
// the given message.
func (s *Shell) CommitAll(
	dir string,
	message string,
) error {
	const errCtx = "committing"

	if out, err := run(dir, "add", "-A"); err != nil {
		return fmt.Errorf(
			"%s: %s", errCtx, diagnostic(out, err),
		)
	}

	if out, err := run(
		dir, "commit", "-m", message,
	); err != nil {
		return fmt.Errorf(
			"%s: %s", errCtx, diagnostic(out, err),
		)
	}

	return nil
}

// diagnostic prefers the tool's own output over the
// exec error, so failures surface git's message
// verbatim.
func diagnostic(out string, err error) string {
	if msg := strings.TrimSpace(out); msg != "" {
		return msg
	}

	return err.Error()
}
