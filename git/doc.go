// Package git provides the narrow driver interface the core uses to talk to
// the version-control tool, plus a strategy pattern for swapping the
// production shell implementation with an in-memory fake in tests.
//
// The Driver interface covers exactly the operations the reconciler and push
// orchestrator need: repository queries, remote listing and mutation, and
// branch pushes. Shell is the production implementation; it invokes the git
// binary and returns its combined output verbatim in diagnostics. Fake is an
// in-memory implementation that records mutations for assertions.
//
// The core never constructs command lines itself; argument handling lives
// entirely in this package.
package git
