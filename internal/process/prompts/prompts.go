// Package prompts loads the narrative prompt templates and fills their tokens.
package prompts

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
)

// Template file names inside the prompts directory.
const (
	FileSystem     = "system_master.txt"
	FileExecutive  = "user_executive.txt"
	FileConsulting = "user_consulting.txt"
	FileSocial     = "user_social.txt"
)

// Template tokens.
const (
	TokenToday        = "{{TODAY}}"
	TokenProductFocus = "{{PRODUCT_FOCUS}}"
	TokenTopics       = "{{TOPICS}}"
	TokenRecencyDays  = "{{RECENCY_DAYS}}"
	TokenDenylist     = "{{DENYLIST}}"
	TokenItemsJSON    = "{{ITEMS_JSON}}"
	TokenAuthorName   = "{{AUTHOR_NAME}}"
	TokenAuthorTitle  = "{{AUTHOR_TITLE}}"
)

const defaultSystemPrompt = `You are Search Intel Agent, generating Executive, Consulting and Social content. ` +
	`Be concise, recent-first, KPI-oriented. Avoid competitor links in public content.`

const defaultExecutivePrompt = `TASK=EXECUTIVE_INSIGHTS

Inputs:
- today: {{TODAY}}
- product_focus: {{PRODUCT_FOCUS}}
- topics: {{TOPICS}}
- recency_days: {{RECENCY_DAYS}}
- denylist_domains: {{DENYLIST}}

Data:
{{ITEMS_JSON}}

Instructions: Produce up to five short bullets with KPI, competitor signal, risk/opportunity, and end with one line starting 'Leadership takeaway: '.`

const defaultConsultingPrompt = `TASK=CONSULTING_NEWS

Inputs:
- today: {{TODAY}}
- product_focus: {{PRODUCT_FOCUS}}
- topics: {{TOPICS}}
- recency_days: {{RECENCY_DAYS}}
- denylist_domains: {{DENYLIST}}

Data:
{{ITEMS_JSON}}

Instructions: Produce 3 blocks, each introduced by a heading line: Market Radar, Competitive Watch, Client-Winning Use Cases + Action Checklist. KPIs where possible.`

const defaultSocialPrompt = `TASK=SOCIAL_DRAFT

Inputs:
- today: {{TODAY}}
- product_focus: {{PRODUCT_FOCUS}}
- topics: {{TOPICS}}
- recency_days: {{RECENCY_DAYS}}
- denylist_domains: {{DENYLIST}}

Data:
{{ITEMS_JSON}}

Instructions: Write a hook, 3-5 insights (no competitor mentions), one question, and a sign-off 'Curated by {{AUTHOR_NAME}}, {{AUTHOR_TITLE}}'.`

// Set holds the system prompt and one user prompt per audience.
type Set struct {
	System string
	user   map[domain.Audience]string
}

// Defaults returns the built-in templates.
func Defaults() *Set {
	return &Set{
		System: defaultSystemPrompt,
		user: map[domain.Audience]string{
			domain.AudienceExecutive:  defaultExecutivePrompt,
			domain.AudienceConsulting: defaultConsultingPrompt,
			domain.AudienceSocial:     defaultSocialPrompt,
		},
	}
}

// UserFile returns the template file name for audience.
func UserFile(a domain.Audience) string {
	switch a {
	case domain.AudienceExecutive:
		return FileExecutive
	case domain.AudienceConsulting:
		return FileConsulting
	case domain.AudienceSocial:
		return FileSocial
	default:
		return ""
	}
}

// Load reads templates from dir. A missing or unreadable file falls back to the
// built-in template; this is logged and never fatal. An empty dir yields Defaults.
func Load(dir string, logger *zerolog.Logger) *Set {
	set := Defaults()
	if strings.TrimSpace(dir) == "" {
		return set
	}

	set.System = loadFile(dir, FileSystem, set.System, logger)

	for _, a := range domain.Audiences() {
		set.user[a] = loadFile(dir, UserFile(a), set.user[a], logger)
	}

	return set
}

func loadFile(dir, name, fallback string, logger *zerolog.Logger) string {
	path := filepath.Join(dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug().Str("path", path).Msg("Prompt template not found, using default")
		} else {
			logger.Warn().Err(err).Str("path", path).Msg("Failed to read prompt template, using default")
		}

		return fallback
	}

	if strings.TrimSpace(string(data)) == "" {
		logger.Warn().Str("path", path).Msg("Prompt template is empty, using default")
		return fallback
	}

	return string(data)
}

// User returns the user template for audience, or "" for an unknown audience.
func (s *Set) User(a domain.Audience) string {
	return s.user[a]
}

// Vars are the values substituted into a user template.
type Vars struct {
	Today        string
	ProductFocus string
	Topics       []string
	RecencyDays  int
	Denylist     []string
	ItemsJSON    string
	AuthorName   string
	AuthorTitle  string
}

// Apply replaces every known token in tmpl. Unknown tokens are left untouched.
func Apply(tmpl string, v Vars) string {
	return strings.NewReplacer(
		TokenToday, v.Today,
		TokenProductFocus, v.ProductFocus,
		TokenTopics, strings.Join(v.Topics, ", "),
		TokenRecencyDays, strconv.Itoa(v.RecencyDays),
		TokenDenylist, strings.Join(v.Denylist, ","),
		TokenItemsJSON, v.ItemsJSON,
		TokenAuthorName, v.AuthorName,
		TokenAuthorTitle, v.AuthorTitle,
	).Replace(tmpl)
}
