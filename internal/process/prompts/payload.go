package prompts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
)

// Payload limits.
const (
	CompactSummaryRunes    = 400
	UltralightItems        = 12
	UltralightSummaryRunes = 200
	UltralightCitations    = 1
)

// CompactItem is the per-item prompt payload for the executive and consulting audiences.
type CompactItem struct {
	Title     string            `json:"title"`
	Summary   string            `json:"summary"`
	Date      string            `json:"date"`
	Source    string            `json:"source"`
	Citations []domain.Citation `json:"citations"`
}

// UltralightItem is the reduced payload for the social audience.
type UltralightItem struct {
	Title     string            `json:"title"`
	Summary   string            `json:"summary"`
	Citations []domain.Citation `json:"citations"`
}

// Compact converts every item to its compact payload.
func Compact(items []domain.Item) []CompactItem {
	out := make([]CompactItem, 0, len(items))

	for _, it := range items {
		out = append(out, CompactItem{
			Title:     it.Title,
			Summary:   truncateRunes(it.Summary, CompactSummaryRunes),
			Date:      it.Date,
			Source:    it.Source,
			Citations: nonNilCitations(it.Citations),
		})
	}

	return out
}

// Ultralight converts the first UltralightItems items to the ultralight payload.
func Ultralight(items []domain.Item) []UltralightItem {
	if len(items) > UltralightItems {
		items = items[:UltralightItems]
	}

	out := make([]UltralightItem, 0, len(items))

	for _, it := range items {
		cites := it.Citations
		if len(cites) > UltralightCitations {
			cites = cites[:UltralightCitations]
		}

		out = append(out, UltralightItem{
			Title:     it.Title,
			Summary:   truncateRunes(it.Summary, UltralightSummaryRunes),
			Citations: nonNilCitations(cites),
		})
	}

	return out
}

// ForAudience returns the payload JSON used by audience.
func ForAudience(a domain.Audience, items []domain.Item) (string, error) {
	if a == domain.AudienceSocial {
		return MarshalJSON(Ultralight(items))
	}

	return MarshalJSON(Compact(items))
}

// MarshalJSON encodes v without HTML escaping so non-ASCII and markup survive verbatim.
func MarshalJSON(v any) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode prompt payload: %w", err)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n])
}

func nonNilCitations(c []domain.Citation) []domain.Citation {
	if c == nil {
		return []domain.Citation{}
	}

	out := make([]domain.Citation, len(c))
	copy(out, c)

	return out
}
