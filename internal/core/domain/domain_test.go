package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeItem(t *testing.T) {
	it := NormalizeItem(Item{
		Title:   "  Hybrid\tsearch \n  wins  ",
		Summary: "a   b",
		Content: "\n",
		URL:     " https://example.com/a ",
	})

	assert.Equal(t, "Hybrid search wins", it.Title)
	assert.Equal(t, "a b", it.Summary)
	assert.Empty(t, it.Content)
	assert.Equal(t, "https://example.com/a", it.URL)
}

func TestComputeID(t *testing.T) {
	a := Item{Source: "rss", Title: "t", URL: "u"}
	b := Item{Source: "rss", Title: "t", URL: "u", Summary: "different"}
	c := Item{Source: "reddit", Title: "t", URL: "u"}

	assert.Equal(t, ComputeID(a), ComputeID(b))
	assert.NotEqual(t, ComputeID(a), ComputeID(c))
	assert.Len(t, ComputeID(a), 64)
}

func TestScoreItem(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  float64
	}{
		{name: "empty", title: "", want: 0.2},
		{name: "seventy chars", title: strings.Repeat("a", 70), want: 0.7},
		{name: "capped", title: strings.Repeat("a", 500), want: 1.2},
		{name: "rounded", title: "abc", want: 0.221},
		{name: "runes not bytes", title: strings.Repeat("é", 140), want: 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ScoreItem(Item{Title: tt.title}), 1e-9)
		})
	}
}

func TestCountRun(t *testing.T) {
	raw := []Item{
		{Title: "a", Citations: []Citation{{URL: "x"}, {URL: "y"}}},
		{Title: "b"},
		{Title: "c", Citations: []Citation{{URL: "z"}}},
	}

	counts := CountRun(raw, raw[:1])

	assert.Equal(t, RunCounts{SourcesChecked: 3, ItemsKept: 1, Citations: 3}, counts)
}

func TestAudience(t *testing.T) {
	assert.Equal(t, []Audience{AudienceExecutive, AudienceConsulting, AudienceSocial}, Audiences())
	assert.True(t, AudienceConsulting.AllowsSocialHosts())
	assert.False(t, AudienceExecutive.AllowsSocialHosts())
	assert.False(t, AudienceSocial.AllowsSocialHosts())
	assert.False(t, Audience("linkedin").Valid())
}
