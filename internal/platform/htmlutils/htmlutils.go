// Package htmlutils converts HTML fragments from feeds and scraped pages into plain text.
package htmlutils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// skipTags hold content that is never visible text.
var skipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
}

// blockTags end a run of text; their boundaries become spaces.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "tr": true, "td": true, "th": true,
	"section": true, "article": true, "header": true, "footer": true,
}

// StripHTMLTags removes all markup from text, decodes entities and collapses whitespace.
// Text that contains no markup comes back trimmed and collapsed.
func StripHTMLTags(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return strings.Join(strings.Fields(text), " ")
	}

	var sb strings.Builder

	z := html.NewTokenizer(strings.NewReader(text))
	skipDepth := 0

	for {
		tt := z.Next()

		switch tt {
		case html.ErrorToken:
			// io.EOF or malformed input: return what was read so far.
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)

			if skipTags[tag] && tt == html.StartTagToken {
				skipDepth++
			}

			if blockTags[tag] {
				sb.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)

			if skipTags[tag] && skipDepth > 0 {
				skipDepth--
			}

			if blockTags[tag] {
				sb.WriteByte(' ')
			}
		case html.TextToken:
			if skipDepth == 0 {
				sb.Write(z.Text())
			}
		}
	}
}

// Truncate cuts s to at most maxRunes runes. maxRunes <= 0 returns s unchanged.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}

	return string([]rune(s)[:maxRunes])
}
