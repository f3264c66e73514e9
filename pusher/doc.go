// Package pusher is the reconciliation and multi-destination push core. It
// discovers existing remote bindings and classifies them by hosting
// platform, brings each configured platform's remote binding into agreement
// with the persisted record, and drives an ordered sequence of push
// attempts, aggregating per-destination outcomes into one report.
//
// The two halves deliberately fail differently. Reconcile is fail-fast: a
// remote that cannot be created or repointed aborts the run before any push
// is attempted, and already-reconciled remotes stay reconciled. PushAll is
// maximally resilient: every enabled platform gets a push attempt no matter
// how its siblings fared, and failures are deferred to the final Report.
//
// Everything here runs strictly sequentially against a git.Driver; there is
// no parallel dispatch and no retry.
package pusher
