package narrative

import (
	"strings"
)

// MaxSocialWords caps the social draft body.
const MaxSocialWords = 280

// DefaultBanner returns the attribution banner for author.
func DefaultBanner(author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		return "[Curated]"
	}

	return "[Curated] by " + author
}

// ShapeSocial joins the lines into one post body capped at MaxSocialWords and
// prefixes the attribution banner.
func ShapeSocial(lines []string, banner string) []string {
	body := EnforceLength(lines, MaxSocialWords)
	if body == "" {
		body = SocialPlaceholder
	}

	banner = strings.TrimSpace(banner)
	if banner == "" {
		return []string{body}
	}

	return []string{banner, body}
}

// EnforceLength joins lines with spaces and truncates to maxWords words, appending "..."
// when truncated.
func EnforceLength(lines []string, maxWords int) string {
	words := strings.Fields(strings.Join(lines, " "))
	if maxWords > 0 && len(words) > maxWords {
		return strings.Join(words[:maxWords], " ") + "..."
	}

	return strings.Join(words, " ")
}
