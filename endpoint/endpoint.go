package endpoint

import (
	"fmt"
	"regexp"

	"github.com/valyala/fasttemplate"
)

// Endpoint describes one supported hosting platform.
type Endpoint struct {
	// Key is the unique platform identifier, also
	// used as the remote binding name (e.g.
	// "github").
	Key string

	// Name is the human-readable platform name.
	Name string

	// Pattern recognizes remote URLs belonging to
	// this platform and captures the account and
	// repository name, in that order.
	Pattern *regexp.Regexp

	// Template is the canonical SSH remote URL with
	// {account} and {repository} placeholders.
	Template string
}

// Registry is an ordered list of endpoints. Earlier
// entries take priority when matching. Registries are
// never mutated after construction; share them freely.
type Registry []Endpoint

// hostPattern builds the URL recognition pattern for a
// hosting platform. It accepts both SSH
// (git@host:acct/repo.git) and HTTP(S)
// (https://host/acct/repo.git) forms, with the .git
// suffix optional.
func hostPattern(host string) *regexp.Regexp {
	return regexp.MustCompile(
		`^(?:git@` + regexp.QuoteMeta(host) +
			`:|(?:https?://)(?:www\.)?` +
			regexp.QuoteMeta(host) +
			`/)([^/]+)/([^/]+?)(?:\.git)?/?$`,
	)
}

// Default returns the built-in registry. Order is the
// platform priority order and also drives push order.
func Default() Registry {
	return Registry{
		{
			Key:      "github",
			Name:     "GitHub",
			Pattern:  hostPattern("github.com"),
			Template: "git@github.com:{account}/{repository}.git",
		},
		{
			Key:      "gitee",
			Name:     "Gitee",
			Pattern:  hostPattern("gitee.com"),
			Template: "git@gitee.com:{account}/{repository}.git",
		},
		{
			Key:      "gitlab",
			Name:     "GitLab",
			Pattern:  hostPattern("gitlab.com"),
			Template: "git@gitlab.com:{account}/{repository}.git",
		},
		{
			Key:      "bitbucket",
			Name:     "Bitbucket",
			Pattern:  hostPattern("bitbucket.org"),
			Template: "git@bitbucket.org:{account}/{repository}.git",
		},
	}
}

// Match classifies url against every endpoint pattern
// in registry order and returns the first match. ok is
// false when no endpoint recognizes the URL; that is
// not an error, the URL simply belongs to no known
// platform.
func (r Registry) Match(url string) (
	key string,
	account string,
	repository string,
	ok bool,
) {
	for _, ep := range r {
		m := ep.Pattern.FindStringSubmatch(url)
		if m == nil {
			continue
		}

		return ep.Key, m[1], m[2], true
	}

	return "", "", "", false
}

// Lookup returns the endpoint with the given key.
func (r Registry) Lookup(key string) (Endpoint, bool) {
	for _, ep := range r {
		if ep.Key == key {
			return ep, true
		}
	}

	return Endpoint{}, false
}

// Keys returns all endpoint keys in registry order.
func (r Registry) Keys() []string {
	keys := make([]string, 0, len(r))
	for _, ep := range r {
		keys = append(keys, ep.Key)
	}

	return keys
}

// RenderURL expands the endpoint template with the
// given account and repository. An unknown key is a
// programming error, not a runtime condition.
func (r Registry) RenderURL(
	key string,
	account string,
	repository string,
) (string, error) {
	const errCtx = "rendering remote url"

	ep, ok := r.Lookup(key)
	if !ok {
		return "", fmt.Errorf(
			"%s: unknown endpoint %q", errCtx, key,
		)
	}

	return fasttemplate.ExecuteStringStd(
		ep.Template, "{", "}",
		map[string]interface{}{
			"account":    account,
			"repository": repository,
		},
	), nil
}
