package linkfilter

import (
	"strings"
	"time"

	"github.com/lueurxax/search-intel-brief/internal/core/dates"
	"github.com/lueurxax/search-intel-brief/internal/core/domain"
)

// Display caps per audience.
const (
	DefaultExecutiveCap  = 8
	DefaultConsultingCap = 10
	DefaultSocialCap     = 6
)

// PickTop returns the first n links. n <= 0 yields an empty slice.
func PickTop(in []domain.Link, n int) []domain.Link {
	if n <= 0 {
		return []domain.Link{}
	}

	if n > len(in) {
		n = len(in)
	}

	out := make([]domain.Link, n)
	copy(out, in[:n])

	return out
}

// WithDateSuffix converts links into display form. Dated links get " (DD Mon YYYY)"
// appended to the title, rendered in loc. Untitled links use their URL as title.
func WithDateSuffix(in []domain.Link, loc *time.Location) []domain.SectionLink {
	out := make([]domain.SectionLink, 0, len(in))

	for _, l := range in {
		title := strings.TrimSpace(l.Title)
		if title == "" {
			title = l.URL
		}

		if l.HasDate() {
			title += " (" + dates.FormatShort(l.Date, loc) + ")"
		}

		out = append(out, domain.SectionLink{Title: title, URL: l.URL})
	}

	return out
}
