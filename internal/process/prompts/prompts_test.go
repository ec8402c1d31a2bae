package prompts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
)

func TestLoad_FallsBackToDefaults(t *testing.T) {
	logger := zerolog.Nop()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileExecutive), []byte("EXEC {{TODAY}}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileSocial), []byte("  \n"), 0o600))

	set := Load(dir, &logger)

	assert.Equal(t, defaultSystemPrompt, set.System)
	assert.Equal(t, "EXEC {{TODAY}}", set.User(domain.AudienceExecutive))
	assert.Equal(t, defaultConsultingPrompt, set.User(domain.AudienceConsulting))
	assert.Equal(t, defaultSocialPrompt, set.User(domain.AudienceSocial), "blank file uses default")
}

func TestLoad_MissingDir(t *testing.T) {
	logger := zerolog.Nop()

	set := Load(filepath.Join(t.TempDir(), "absent"), &logger)

	assert.Equal(t, Defaults().User(domain.AudienceSocial), set.User(domain.AudienceSocial))
	assert.Equal(t, Defaults(), Load("", &logger))
}

func TestApply(t *testing.T) {
	got := Apply("{{TODAY}}|{{PRODUCT_FOCUS}}|{{TOPICS}}|{{RECENCY_DAYS}}|{{DENYLIST}}|{{ITEMS_JSON}}|{{AUTHOR_NAME}}|{{AUTHOR_TITLE}}|{{OTHER}}", Vars{
		Today:        "2025-08-25",
		ProductFocus: "site search",
		Topics:       []string{"a", "b"},
		RecencyDays:  21,
		Denylist:     []string{"x.com", "y.com"},
		ItemsJSON:    "[]",
		AuthorName:   "Jane",
		AuthorTitle:  "Architect",
	})

	assert.Equal(t, "2025-08-25|site search|a, b|21|x.com,y.com|[]|Jane|Architect|{{OTHER}}", got)
}

func TestDefaultsCarryAllTokens(t *testing.T) {
	set := Defaults()

	for _, a := range domain.Audiences() {
		tmpl := set.User(a)
		assert.Contains(t, tmpl, TokenItemsJSON, a.String())
		assert.Contains(t, tmpl, TokenRecencyDays, a.String())
	}

	assert.Contains(t, set.User(domain.AudienceSocial), TokenAuthorName)
	assert.Empty(t, set.User("unknown"))
}

func TestCompact(t *testing.T) {
	items := []domain.Item{{
		Title:     "T",
		Summary:   strings.Repeat("é", 500),
		Date:      "2025-08-01",
		Source:    "rss",
		Citations: []domain.Citation{{URL: "https://a"}, {URL: "https://b"}},
	}, {Title: "bare"}}

	got := Compact(items)

	require.Len(t, got, 2)
	assert.Equal(t, CompactSummaryRunes, len([]rune(got[0].Summary)))
	assert.Len(t, got[0].Citations, 2)
	assert.NotNil(t, got[1].Citations)
}

func TestUltralight(t *testing.T) {
	var items []domain.Item
	for i := 0; i < 20; i++ {
		items = append(items, domain.Item{
			Title:     fmt.Sprintf("item %d", i),
			Summary:   strings.Repeat("s", 300),
			Citations: []domain.Citation{{URL: "https://a"}, {URL: "https://b"}},
		})
	}

	got := Ultralight(items)

	require.Len(t, got, UltralightItems)
	assert.Len(t, got[0].Summary, UltralightSummaryRunes)
	assert.Len(t, got[0].Citations, UltralightCitations)
	assert.Len(t, items[0].Citations, 2, "input untouched")
}

func TestForAudience(t *testing.T) {
	items := []domain.Item{{Title: "<b>Search</b> & more", Source: "rss"}}

	execJSON, err := ForAudience(domain.AudienceExecutive, items)
	require.NoError(t, err)
	assert.Contains(t, execJSON, "<b>Search</b> & more")
	assert.Contains(t, execJSON, `"source":"rss"`)

	socialJSON, err := ForAudience(domain.AudienceSocial, items)
	require.NoError(t, err)
	assert.NotContains(t, socialJSON, `"source"`)

	var decoded []UltralightItem
	require.NoError(t, json.Unmarshal([]byte(socialJSON), &decoded))
	assert.Equal(t, "<b>Search</b> & more", decoded[0].Title)
}
