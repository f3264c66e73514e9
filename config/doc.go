// Package config persists the per-working-copy record mapping each hosting
// platform to its enabled flag, account, and resolved remote URL. The record
// lives in a .multipush.yml file at the working-copy root, serialized with
// goccy/go-yaml.
//
// A missing or corrupt file is the same condition, ErrNoConfig: both trigger
// the guided init flow rather than an outright failure. Saves go through a
// temp-file rename so a record is never partially written.
//
// The resolved URL of a platform entry is always derivable from its account
// and the repository name via the endpoint registry. Every mutation path in
// this package (MergeForInit, SetAccount, SetRepository, SetEnabled)
// regenerates URLs so the two never diverge.
package config
