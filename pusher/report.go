package pusher

import (
	"fmt"
	"strings"
)

// Failure is one destination's failed push attempt
// with the tool's diagnostic text verbatim.
type Failure struct {
	EndpointKey string `json:"endpoint"`
	Message     string `json:"message"`
}

// Report aggregates per-destination push outcomes in
// attempt order. It is built fresh per PushAll run.
type Report struct {
	Successes []string  `json:"successes"`
	Failures  []Failure `json:"failures"`
}

// Ok reports whether every attempt succeeded.
func (r Report) Ok() bool {
	return len(r.Failures) == 0
}

// Summary renders the report as user-facing text. It
// is a pure function of the report: successes and
// failures are always listed distinctly, even when
// one of the lists is empty.
func (r Report) Summary() string {
	var sb strings.Builder

	fmt.Fprintf(
		&sb, "pushed: %s\n",
		listOrNone(r.Successes),
	)

	if len(r.Failures) == 0 {
		sb.WriteString("failed: (none)\n")

		return sb.String()
	}

	sb.WriteString("failed:\n")

	for _, f := range r.Failures {
		fmt.Fprintf(
			&sb, "  %s: %s\n",
			f.EndpointKey, f.Message,
		)
	}

	return sb.String()
}

// listOrNone joins keys with commas, with an explicit
// placeholder for the empty list.
func listOrNone(keys []string) string {
	if len(keys) == 0 {
		return "(none)"
	}

	return strings.Join(keys, ", ")
}
