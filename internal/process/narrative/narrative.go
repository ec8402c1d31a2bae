// Package narrative enforces the structural shape of generated text for each audience.
//
// Shapers never fail: empty input produces the audience's placeholder text so the
// briefing always has a body.
package narrative

import (
	"strings"
)

// MaxLines caps the number of generated lines accepted from the generator.
const MaxLines = 200

// Placeholders used when the generator produced nothing.
const (
	ExecutivePlaceholder  = "(LLM disabled) No executive content generated."
	ConsultingPlaceholder = "(LLM disabled) No consulting content generated."
	SocialPlaceholder     = "(LLM disabled) No social draft generated."
)

// SplitLines splits generated text into trimmed, non-empty lines, capped at MaxLines.
func SplitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))

	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		out = append(out, line)
		if len(out) == MaxLines {
			break
		}
	}

	return out
}
