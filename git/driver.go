package git

import "errors"

// ErrNotRepository reports that the directory is not
// inside a git working copy.
var ErrNotRepository = errors.New("not a git repository")

// Remote is one remote binding of a working copy, as
// reported by the version-control tool. FetchURL and
// PushURL usually coincide.
type Remote struct {
	Name     string
	FetchURL string
	PushURL  string
}

// PushOptions adjusts a single push invocation.
type PushOptions struct {
	// Force adds a force-push directive.
	Force bool

	// Tags also pushes tags.
	Tags bool
}

// Pattern: Strategy -- swap the shell-out git
// implementation for an in-memory fake in tests.

// Driver is the version-control boundary consumed by
// the core. One production implementation shells out
// to git; tests use Fake.
type Driver interface {
	// IsRepository reports whether dir is inside a
	// git working copy.
	IsRepository(dir string) bool

	// CurrentBranch returns the checked-out branch
	// name, falling back to "main" when HEAD is
	// detached or unknown.
	CurrentBranch(dir string) string

	// AuthorName returns the configured commit
	// author name, empty when unset.
	AuthorName(dir string) string

	// ListRemotes enumerates all remote bindings
	// with their fetch and push URLs.
	ListRemotes(dir string) ([]Remote, error)

	// RemoteExists reports whether a remote binding
	// with the given name exists.
	RemoteExists(dir string, name string) bool

	// AddRemote creates a new remote binding.
	AddRemote(dir string, name string, url string) error

	// SetRemoteURL repoints an existing remote
	// binding.
	SetRemoteURL(dir string, name string, url string) error

	// Push sends branch to the named remote,
	// blocking until the tool returns. On failure
	// the error carries the tool's diagnostic text.
	Push(dir string, remote string, branch string, opts PushOptions) error

	// IsClean reports whether the working tree has
	// no uncommitted changes.
	IsClean(dir string) bool

	// CommitAll stages every change and commits it
	// with the given message.
	CommitAll(dir string, message string) error
}
