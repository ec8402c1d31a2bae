package links

import (
	"net/url"
	"strings"
)

const wwwPrefix = "www."

// Key returns the identity of a link URL: fragment stripped, lower-cased.
func Key(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if i := strings.IndexByte(rawURL, '#'); i >= 0 {
		rawURL = rawURL[:i]
	}

	return strings.ToLower(rawURL)
}

// Host returns the lower-cased host of rawURL without port and without a leading "www.".
// It returns "" when the URL cannot be parsed or carries no host.
func Host(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	return NormalizeDomain(parsed.Hostname())
}

// NormalizeDomain lower-cases a domain and strips a leading "www.".
func NormalizeDomain(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	host = strings.TrimSuffix(host, ".")
	host = strings.TrimPrefix(host, wwwPrefix)

	return host
}
