package narrative

import (
	"strings"
	"unicode"
)

// Block names a required section of the consulting briefing.
type Block string

// Required consulting blocks in output order.
const (
	BlockMarketRadar      Block = "Market Radar"
	BlockCompetitiveWatch Block = "Competitive Watch"
	BlockActionChecklist  Block = "Action Checklist"
)

const maxHeadingWords = 8

// ConsultingBlocks returns the required blocks in output order.
func ConsultingBlocks() []Block {
	return []Block{BlockMarketRadar, BlockCompetitiveWatch, BlockActionChecklist}
}

var blockStubs = map[Block]string{
	BlockMarketRadar:      "### Market Radar\n- (no updates parsed)",
	BlockCompetitiveWatch: "### Competitive Watch\n- (no updates parsed)",
	BlockActionChecklist: "### Client-Winning Use Cases + Checklist\n- (no updates parsed)\n\n" +
		"Action Checklist:\n- Add top queries to pilot\n- Track SearchCVR\n- Watch competitor moves",
}

// ParseBlocks returns the set of required blocks introduced by a heading line.
// Body text that merely mentions a block name does not count.
func ParseBlocks(lines []string) map[Block]bool {
	present := make(map[Block]bool, len(blockStubs))

	for _, line := range lines {
		if b, ok := inlineBlock(line); ok {
			present[b] = true

			continue
		}

		heading, marked, ok := headingText(line)
		if !ok {
			continue
		}

		folded := strings.ToLower(heading)
		for _, b := range ConsultingBlocks() {
			name := strings.ToLower(string(b))

			// Unmarked short lines only count when they open with the block name.
			if strings.HasPrefix(folded, name) || (marked && strings.Contains(folded, name)) {
				present[b] = true
			}
		}
	}

	return present
}

// ShapeConsulting keeps every generated line and appends a stub block for each
// required block that has no heading.
func ShapeConsulting(lines []string) []string {
	out := make([]string, 0, len(lines)+len(blockStubs))

	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}

	if len(out) == 0 {
		return []string{ConsultingPlaceholder}
	}

	present := ParseBlocks(out)
	for _, b := range ConsultingBlocks() {
		if !present[b] {
			out = append(out, blockStubs[b])
		}
	}

	return out
}

// headingText strips heading markup and reports whether the line looks like a heading.
// Markdown hashes, bold markers, list numbering and a trailing colon are removed and
// what remains must be a short phrase that is not a sentence. marked is true when the
// line carried any heading markup.
func headingText(line string) (text string, marked bool, ok bool) {
	s := strings.TrimSpace(line)
	marked = strings.HasPrefix(s, "#") || strings.HasPrefix(s, "**") ||
		strings.HasSuffix(s, ":") || strings.HasSuffix(s, ":**")

	s = strings.TrimLeft(s, "#")
	s = strings.TrimSpace(s)

	if unnumbered := strings.TrimLeftFunc(s, unicode.IsDigit); unnumbered != s {
		marked = true
		s = strings.TrimLeft(unnumbered, ".) ")
	}

	s = strings.Trim(s, "*_ ")
	s = strings.TrimSuffix(s, ":")
	s = strings.Trim(s, "*_ ")

	if s == "" {
		return "", false, false
	}

	if len(strings.Fields(s)) > maxHeadingWords {
		return "", false, false
	}

	if strings.Contains(s, ". ") || (strings.HasSuffix(s, ".") && !marked) {
		return "", false, false
	}

	return s, marked, true
}

// inlineBlock matches a line that opens with a block name followed by a
// separator, as in "Market Radar: retailers adopt hybrid search." The text
// after the separator is ignored.
func inlineBlock(line string) (Block, bool) {
	s := strings.TrimSpace(line)
	s = strings.TrimSpace(strings.TrimLeft(s, "#"))

	if unnumbered := strings.TrimLeftFunc(s, unicode.IsDigit); unnumbered != s {
		s = strings.TrimLeft(unnumbered, ".) ")
	}

	s = strings.TrimLeft(s, "*_ ")
	folded := strings.ToLower(s)

	for _, b := range ConsultingBlocks() {
		name := strings.ToLower(string(b))
		if !strings.HasPrefix(folded, name) {
			continue
		}

		rest := strings.TrimLeft(folded[len(name):], "*_ ")
		for _, sep := range []string{":", "—", "–", "-"} {
			if strings.HasPrefix(rest, sep) {
				return b, true
			}
		}
	}

	return "", false
}
