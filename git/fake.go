package git

import (
	"errors"
	"fmt"
)

// Fake is an in-memory Driver for tests. Remotes are
// kept in insertion order; mutations are recorded in
// Log as "add name url", "set-url name url",
// "push remote branch" and "commit message" entries.
type Fake struct {
	// Repository mirrors IsRepository; defaults to
	// true via NewFake.
	Repository bool

	// Branch is the current branch name.
	Branch string

	// Author is the configured author name.
	Author string

	// Dirty marks the working tree as having
	// uncommitted changes.
	Dirty bool

	// FailList makes ListRemotes return an error.
	FailList bool

	// FailRemote maps a remote name to an error
	// message returned by AddRemote/SetRemoteURL.
	FailRemote map[string]string

	// FailPush maps a remote name to a diagnostic
	// message returned by Push.
	FailPush map[string]string

	// Log records every mutation in call order.
	Log []string

	remotes []Remote
}

var _ Driver = (*Fake)(nil)

// NewFake returns a Fake representing a valid working
// copy on branch "main".
func NewFake() *Fake {
	return &Fake{
		Repository: true,
		Branch:     "main",
		FailRemote: make(map[string]string),
		FailPush:   make(map[string]string),
	}
}

// SeedRemote installs a remote binding with identical
// fetch and push URLs, bypassing the mutation log.
func (f *Fake) SeedRemote(name string, url string) {
	f.remotes = append(f.remotes, Remote{
		Name:     name,
		FetchURL: url,
		PushURL:  url,
	})
}

// IsRepository reports the configured flag.
func (f *Fake) IsRepository(string) bool {
	return f.Repository
}

// CurrentBranch returns the configured branch,
// defaulting to "main".
func (f *Fake) CurrentBranch(string) string {
	if f.Branch == "" {
		return "main"
	}

	return f.Branch
}

// AuthorName returns the configured author.
func (f *Fake) AuthorName(string) string {
	return f.Author
}

// ListRemotes returns the seeded and added remotes in
// insertion order.
func (f *Fake) ListRemotes(string) ([]Remote, error) {
	if f.FailList {
		return nil, errors.New("fatal: not a git repository")
	}

	out := make([]Remote, len(f.remotes))
	copy(out, f.remotes)

	return out, nil
}

// RemoteExists reports whether a remote with the given
// name is present.
func (f *Fake) RemoteExists(_ string, name string) bool {
	_, ok := f.find(name)

	return ok
}

// RemoteURL returns the fetch URL of the named remote,
// empty when absent. Test helper, not part of Driver.
func (f *Fake) RemoteURL(name string) string {
	if i, ok := f.find(name); ok {
		return f.remotes[i].FetchURL
	}

	return ""
}

// AddRemote creates a new remote binding.
func (f *Fake) AddRemote(
	_ string,
	name string,
	url string,
) error {
	if msg, ok := f.FailRemote[name]; ok {
		return errors.New(msg)
	}

	if _, ok := f.find(name); ok {
		return fmt.Errorf(
			"error: remote %s already exists", name,
		)
	}

	f.remotes = append(f.remotes, Remote{
		Name:     name,
		FetchURL: url,
		PushURL:  url,
	})
	f.Log = append(f.Log, "add "+name+" "+url)

	return nil
}

// SetRemoteURL repoints an existing remote binding.
func (f *Fake) SetRemoteURL(
	_ string,
	name string,
	url string,
) error {
	if msg, ok := f.FailRemote[name]; ok {
		return errors.New(msg)
	}

	i, ok := f.find(name)
	if !ok {
		return fmt.Errorf(
			"error: no such remote %q", name,
		)
	}

	f.remotes[i].FetchURL = url
	f.remotes[i].PushURL = url
	f.Log = append(f.Log, "set-url "+name+" "+url)

	return nil
}

// Push records the attempt and returns the configured
// failure, if any.
func (f *Fake) Push(
	_ string,
	remote string,
	branch string,
	_ PushOptions,
) error {
	f.Log = append(f.Log, "push "+remote+" "+branch)

	if msg, ok := f.FailPush[remote]; ok {
		return errors.New(msg)
	}

	return nil
}

// IsClean reports the inverse of the Dirty flag.
func (f *Fake) IsClean(string) bool {
	return !f.Dirty
}

// CommitAll records the commit and marks the tree
// clean.
func (f *Fake) CommitAll(_ string, message string) error {
	f.Dirty = false
	f.Log = append(f.Log, "commit "+message)

	return nil
}

func (f *Fake) find(name string) (int, bool) {
	for i, rm := range f.remotes {
		if rm.Name == name {
			return i, true
		}
	}

	return 0, false
}
