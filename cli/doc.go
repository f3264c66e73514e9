// Package cli wires the push, init, status, and config commands around the
// reconciliation core. Interactive answer collection and pretty-printing
// live here, outside the core: prompts gather already-validated answers and
// hand them to the pure merge function, and the final report is rendered
// with fatih/color or as JSON.
package cli
