package voice

import (
	"regexp"
	"strconv"
	"strings"
)

// intentPattern pairs a compiled regex with a builder that turns its
// submatches into a Command. The builder returns false to reject the match
// and let extraction fall through to the next pattern.
type intentPattern struct {
	name  string
	regex *regexp.Regexp
	build func(matches []string) (Command, bool)
}

// intentPatterns are tried in order; the first structurally matching pattern
// whose builder accepts determines the action.
var intentPatterns = []intentPattern{
	{
		name:  "add",
		regex: regexp.MustCompile(`\badd\s+(\S+)\s+(\S+)`),
		build: func(m []string) (Command, bool) {
			return buildQuantified(ActionAdd, m[1], m[2])
		},
	},
	{
		name:  "remove",
		regex: regexp.MustCompile(`\bremove\s+(\S+)\s+(\S+)`),
		build: func(m []string) (Command, bool) {
			return buildQuantified(ActionRemove, m[1], m[2])
		},
	},
	{
		name:  "query",
		regex: regexp.MustCompile(`\bstock\s+of\s+(\S+)|\bhow\s+many\s+(\S+)`),
		build: func(m []string) (Command, bool) {
			item := m[1]
			if item == "" {
				item = m[2]
			}
			return Command{Action: ActionQuery, Item: item}, true
		},
	},
}

// Normalize lower-cases an utterance and collapses runs of whitespace into
// single spaces, preparing it for pattern matching.
func Normalize(utterance string) string {
	return strings.Join(strings.Fields(strings.ToLower(utterance)), " ")
}

// Parse extracts a single Command from an utterance. It never fails:
// unmatched or empty input yields {Action: ActionUnknown}.
//
// Patterns are tried in a fixed order (add, remove, query) and the first
// match wins. A matched add/remove whose numeral does not parse as an
// integer is rejected and extraction falls through to the next pattern.
// Item names are captured as single whitespace-delimited tokens; multi-word
// names are not supported on this path.
func Parse(utterance string) Command {
	normalized := Normalize(utterance)
	if normalized == "" {
		return Command{Action: ActionUnknown}
	}

	for _, p := range intentPatterns {
		matches := p.regex.FindStringSubmatch(normalized)
		if matches == nil {
			continue
		}
		if cmd, ok := p.build(matches); ok {
			return cmd
		}
	}
	return Command{Action: ActionUnknown}
}

// buildQuantified interprets the two captured tokens of an add/remove match.
// Either token may be the numeral ("add 2 milk" or "add milk 2"); if neither
// parses as an integer the match is rejected.
func buildQuantified(action Action, first, second string) (Command, bool) {
	if qty, err := strconv.Atoi(first); err == nil {
		return Command{Action: action, Item: second, Quantity: qty}, true
	}
	if qty, err := strconv.Atoi(second); err == nil {
		return Command{Action: action, Item: first, Quantity: qty}, true
	}
	return Command{}, false
}
