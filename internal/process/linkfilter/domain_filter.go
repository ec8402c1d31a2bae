// Package linkfilter decides which further-reading links each audience may cite
// and how many of them are shown.
package linkfilter

import (
	"sort"
	"strings"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
	"github.com/lueurxax/search-intel-brief/internal/core/links"
)

// DefaultDenylist lists competitor domains that are never cited.
var DefaultDenylist = []string{
	"algolia.com",
	"bloomreach.com",
	"constructor.io",
	"elastic.co",
	"lucidworks.com",
	"klevu.com",
	"searchspring.com",
	"attraqt.com",
	"reflektion.com",
	"factfinder.de",
}

// DefaultSocialHosts lists discussion and code-hosting sites that only the
// consulting audience may cite.
var DefaultSocialHosts = []string{
	"reddit.com",
	"old.reddit.com",
	"x.com",
	"twitter.com",
	"github.com",
	"gist.github.com",
}

// DomainPolicy holds the host rules applied to audience links.
type DomainPolicy struct {
	denylist    map[string]bool
	socialHosts map[string]bool
}

// NewDomainPolicy builds a policy. Entries are normalized; blank entries are ignored.
func NewDomainPolicy(denylist, socialHosts []string) *DomainPolicy {
	return &DomainPolicy{
		denylist:    parseDomainList(denylist),
		socialHosts: parseDomainList(socialHosts),
	}
}

// DefaultDomainPolicy returns the policy built from DefaultDenylist and DefaultSocialHosts.
func DefaultDomainPolicy() *DomainPolicy {
	return NewDomainPolicy(DefaultDenylist, DefaultSocialHosts)
}

// Allows reports whether audience may cite rawURL.
func (p *DomainPolicy) Allows(audience domain.Audience, rawURL string) bool {
	host := links.Host(rawURL)
	if host == "" {
		return false
	}

	if matchesList(host, p.denylist) {
		return false
	}

	if !audience.AllowsSocialHosts() && matchesList(host, p.socialHosts) {
		return false
	}

	return true
}

// Filter returns the links audience may cite, in input order.
func (p *DomainPolicy) Filter(audience domain.Audience, in []domain.Link) []domain.Link {
	out := make([]domain.Link, 0, len(in))

	for _, l := range in {
		if p.Allows(audience, l.URL) {
			out = append(out, l)
		}
	}

	return out
}

// Denylist returns the normalized denylist entries in sorted order.
func (p *DomainPolicy) Denylist() []string {
	out := make([]string, 0, len(p.denylist))
	for d := range p.denylist {
		out = append(out, d)
	}

	sort.Strings(out)

	return out
}

// matchesList checks if a domain matches any entry in the list.
// Supports exact match and suffix match (e.g., "example.com" matches "sub.example.com").
func matchesList(host string, list map[string]bool) bool {
	if list[host] {
		return true
	}

	for d := range list {
		if strings.HasSuffix(host, "."+d) {
			return true
		}
	}

	return false
}

func parseDomainList(entries []string) map[string]bool {
	result := make(map[string]bool, len(entries))

	for _, d := range entries {
		d = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(d), "https://"), "http://")
		d = links.NormalizeDomain(strings.TrimSuffix(d, "/"))

		if d != "" {
			result[d] = true
		}
	}

	return result
}
