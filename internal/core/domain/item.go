package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strings"
	"unicode/utf8"
)

// Scoring constants for the headline heuristic.
const (
	ScoreTitleCap  = 140
	ScoreBaseBoost = 0.2
	scorePrecision = 1000
)

// Citation is a secondary source backing an item.
type Citation struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
	Date  string `json:"date,omitempty" yaml:"date,omitempty"`
}

// Item is one curated content unit produced by a collector.
type Item struct {
	ID        string     `json:"id,omitempty"`
	Title     string     `json:"title"`
	Summary   string     `json:"summary,omitempty"`
	Content   string     `json:"content,omitempty"`
	URL       string     `json:"url,omitempty"`
	Source    string     `json:"source,omitempty"`
	Date      string     `json:"date,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
	Score     float64    `json:"score,omitempty"`
}

// NormalizeItem collapses whitespace in the text fields and trims the locator fields.
// Absent fields stay empty.
func NormalizeItem(it Item) Item {
	it.Title = CollapseSpace(it.Title)
	it.Summary = CollapseSpace(it.Summary)
	it.Content = CollapseSpace(it.Content)
	it.URL = strings.TrimSpace(it.URL)
	it.Source = strings.TrimSpace(it.Source)
	it.Date = strings.TrimSpace(it.Date)

	return it
}

// CollapseSpace replaces runs of whitespace with a single space and trims the result.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ComputeID returns the stable identity hash of (source, title, url).
func ComputeID(it Item) string {
	sum := sha256.Sum256([]byte(it.Source + "|" + it.Title + "|" + it.URL))

	return hex.EncodeToString(sum[:])
}

// ScoreItem rates how substantial the headline is. The value lies in [0.2, 1.2]
// and does not depend on recency.
func ScoreItem(it Item) float64 {
	n := utf8.RuneCountInString(it.Title)
	if n > ScoreTitleCap {
		n = ScoreTitleCap
	}

	score := float64(n)/ScoreTitleCap + ScoreBaseBoost

	return math.Round(score*scorePrecision) / scorePrecision
}

// RelevanceText is the lower-case-agnostic haystack used for keyword matching.
func (it Item) RelevanceText() string {
	return strings.Join([]string{it.Title, it.Summary, it.Content}, " ")
}
