package llm

import (
	"context"
	"fmt"

	apperrors "github.com/lueurxax/search-intel-brief/internal/core/errors"
)

// Router dispatches each request to the provider that serves the requested model.
type Router struct {
	providers map[ProviderName]Generator
}

// NewRouter creates a Router. A nil generator marks that provider as unavailable.
func NewRouter(openAI, perplexity Generator) *Router {
	r := &Router{providers: make(map[ProviderName]Generator, 2)}

	if openAI != nil {
		r.providers[ProviderOpenAI] = openAI
	}

	if perplexity != nil {
		r.providers[ProviderPerplexity] = perplexity
	}

	return r
}

// Available reports whether at least one provider is configured.
func (r *Router) Available() bool {
	return len(r.providers) > 0
}

// Has reports whether the provider is configured.
func (r *Router) Has(name ProviderName) bool {
	_, ok := r.providers[name]
	return ok
}

// Generate sends the prompts to the provider that serves model.
func (r *Router) Generate(ctx context.Context, systemPrompt, userPrompt, model string) (string, error) {
	name := ProviderForModel(model)

	g, ok := r.providers[name]
	if !ok {
		return "", fmt.Errorf("%s for model %q: %w", name, model, apperrors.ErrClientDisabled)
	}

	return g.Generate(ctx, systemPrompt, userPrompt, model)
}
