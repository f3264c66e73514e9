package cli

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/byte4ever/multipush/endpoint"
)

// Prompter collects interactive answers from the
// operator. It validates for non-emptiness and applies
// defaults, so the core only ever sees usable values.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter returns a Prompter reading from in and
// writing questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Ask poses a question and returns the trimmed answer,
// or def when the operator just presses enter.
func (p *Prompter) Ask(question string, def string) string {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return def
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return def
	}

	return answer
}

// Confirm poses a yes/no question. Empty input yields
// def.
func (p *Prompter) Confirm(question string, def bool) bool {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	answer := strings.ToLower(
		p.Ask(question+" ("+hint+")", ""),
	)

	switch answer {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

// SelectPlatforms shows the numbered platform list and
// returns the chosen endpoint keys. The answer is a
// comma-separated mix of numbers and keys; empty input
// selects preselected (or every platform when
// preselected is empty).
func (p *Prompter) SelectPlatforms(
	reg endpoint.Registry,
	preselected []string,
) []string {
	fmt.Fprintln(p.out, "Platforms:")

	for i, ep := range reg {
		marker := " "
		if slices.Contains(preselected, ep.Key) {
			marker = "*"
		}

		fmt.Fprintf(
			p.out, "  %s %d) %s (%s)\n",
			marker, i+1, ep.Name, ep.Key,
		)
	}

	answer := p.Ask(
		"Select platforms (comma-separated, empty keeps *)",
		"",
	)

	return parseSelection(reg, answer, preselected)
}

// parseSelection resolves a comma-separated answer of
// indexes and keys against the registry. Unknown
// tokens are dropped; an empty answer falls back to
// preselected, then to every platform.
func parseSelection(
	reg endpoint.Registry,
	answer string,
	preselected []string,
) []string {
	if strings.TrimSpace(answer) == "" {
		if len(preselected) > 0 {
			return orderByRegistry(reg, preselected)
		}

		return reg.Keys()
	}

	var keys []string

	for _, token := range strings.Split(answer, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if idx, err := strconv.Atoi(token); err == nil {
			if idx >= 1 && idx <= len(reg) {
				keys = append(keys, reg[idx-1].Key)
			}

			continue
		}

		if _, ok := reg.Lookup(token); ok {
			keys = append(keys, token)
		}
	}

	return orderByRegistry(reg, keys)
}

// orderByRegistry dedupes keys and returns them in
// registry order, so downstream iteration order never
// depends on input order.
func orderByRegistry(
	reg endpoint.Registry,
	keys []string,
) []string {
	var out []string

	for _, key := range reg.Keys() {
		if slices.Contains(keys, key) {
			out = append(out, key)
		}
	}

	return out
}
