package llm

import (
	"context"
	"strings"
)

const (
	mockExecutiveResponse = `- Hybrid lexical and vector retrieval is now the default in new site-search RFPs.
- Zero-result rate remains the fastest KPI to move; synonym coverage drives most wins.
- Merchandising teams are asking for explainable ranking before adopting learning-to-rank.
Leadership takeaway: prioritise measurable relevance wins over platform migrations this quarter.`

	mockConsultingResponse = `### Market Radar
- Retail buyers now ask for semantic search demos in first calls.
### Competitive Watch
- Several vendors bundle recommendations with search at a discount.
### Client-Winning Use Cases + Checklist
Action Checklist:
- Audit top 100 zero-result queries
- Propose an A/B plan for reranking`

	mockSocialResponse = `Search teams are quietly shifting from keyword tuning to hybrid retrieval.
The biggest early win is still fixing zero-result queries.
What is the one search KPI your team reviews every week?`
)

// Mock returns canned narrative for simulated runs. The response is chosen from
// the task marker inside the user prompt.
type Mock struct{}

// NewMock creates a mock generator.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Generate(ctx context.Context, _, userPrompt, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch {
	case strings.Contains(userPrompt, "TASK=CONSULTING"):
		return mockConsultingResponse, nil
	case strings.Contains(userPrompt, "TASK=SOCIAL"):
		return mockSocialResponse, nil
	default:
		return mockExecutiveResponse, nil
	}
}
