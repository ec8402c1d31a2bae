package domain

import "time"

// Link is an extracted further-reading reference. A zero Date means the date is unknown.
type Link struct {
	Title  string
	URL    string
	Date   time.Time
	Source string
}

// HasDate reports whether the link carries a publication date.
func (l Link) HasDate() bool {
	return !l.Date.IsZero()
}

// SectionLink is a link as it appears in a finished section.
type SectionLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Section is the unit handed to the document renderer. It is not modified after assembly.
type Section struct {
	Title      string        `json:"title"`
	Paragraphs []string      `json:"paragraphs"`
	Links      []SectionLink `json:"links"`
}
