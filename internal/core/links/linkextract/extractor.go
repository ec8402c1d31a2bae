// Package linkextract finds http(s) URLs in free text.
package linkextract

import (
	"net/url"
	"regexp"
	"strings"
)

var urlRegex = regexp.MustCompile(`https?://[^\s<>"{}|\\^\x60\[\]]+`)

// FindURLs returns the distinct URLs in text in order of first appearance.
// Trailing punctuation is not part of the URL.
func FindURLs(text string) []string {
	matches := urlRegex.FindAllString(text, -1)

	var urls []string

	seen := make(map[string]bool)

	for _, m := range matches {
		raw := strings.TrimRight(m, ".,;:!?)'*")
		if !isWebURL(raw) || seen[raw] {
			continue
		}

		seen[raw] = true

		urls = append(urls, raw)
	}

	return urls
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
