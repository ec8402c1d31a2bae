package briefing

import (
	"strings"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
)

// NormalizeParagraphs trims paragraphs and drops blank ones. A nil input yields an
// empty, non-nil slice.
func NormalizeParagraphs(in []string) []string {
	out := make([]string, 0, len(in))

	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

// NormalizeLinks trims links and drops those missing a title or a URL.
func NormalizeLinks(in []domain.SectionLink) []domain.SectionLink {
	out := make([]domain.SectionLink, 0, len(in))

	for _, l := range in {
		l.Title = strings.TrimSpace(l.Title)
		l.URL = strings.TrimSpace(l.URL)

		if l.Title == "" || l.URL == "" {
			continue
		}

		out = append(out, l)
	}

	return out
}
