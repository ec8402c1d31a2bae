package narrative

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxExecutiveBullets is the number of content lines kept before the takeaway.
const MaxExecutiveBullets = 5

const (
	takeawayPrefix = "leadership takeaway:"
	takeawayLabel  = "Leadership takeaway:"
	takeawayFormat = "Leadership takeaway: %s — here's the strategic impact."
)

// ShapeExecutive keeps the first five content lines and ends with exactly one
// leadership takeaway. An existing takeaway line wins (the last one when several
// exist); otherwise one is synthesized from the first content line.
func ShapeExecutive(lines []string) []string {
	var (
		content  []string
		takeaway string
	)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isTakeaway(line) {
			takeaway = canonicalTakeaway(line)
			continue
		}

		content = append(content, line)
	}

	if len(content) == 0 && takeaway == "" {
		return []string{ExecutivePlaceholder}
	}

	if len(content) > MaxExecutiveBullets {
		content = content[:MaxExecutiveBullets]
	}

	if takeaway == "" {
		takeaway = synthesizeTakeaway(content[0])
	}

	out := make([]string, 0, len(content)+1)
	out = append(out, content...)

	return append(out, takeaway)
}

func isTakeaway(line string) bool {
	return strings.HasPrefix(strings.ToLower(stripBullet(line)), takeawayPrefix)
}

// canonicalTakeaway rewrites a decorated takeaway line so it opens with the marker.
func canonicalTakeaway(line string) string {
	body := stripBullet(line)[len(takeawayPrefix):]
	body = strings.TrimSpace(strings.TrimLeft(body, "*_ "))

	return strings.TrimSpace(takeawayLabel + " " + body)
}

func synthesizeTakeaway(first string) string {
	clause := first
	if i := strings.LastIndexAny(clause, "•–-"); i >= 0 {
		_, size := utf8.DecodeRuneInString(clause[i:])
		clause = clause[i+size:]
	}

	clause = strings.TrimSpace(clause)
	if i := strings.IndexByte(clause, '.'); i >= 0 {
		clause = strings.TrimSpace(clause[:i])
	}

	if clause == "" {
		clause = strings.TrimSuffix(stripBullet(first), ".")
	}

	return fmt.Sprintf(takeawayFormat, clause)
}

func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "•–-*· "))
}
