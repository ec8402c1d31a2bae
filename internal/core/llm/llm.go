// Package llm provides the narrative generators used to draft audience briefings.
package llm

import (
	"context"
	"strings"
	"time"
)

// Generator produces narrative text from a system and a user prompt.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt, model string) (string, error)
}

// ProviderName identifies an upstream chat provider.
type ProviderName string

// Provider names.
const (
	ProviderOpenAI     ProviderName = "openai"
	ProviderPerplexity ProviderName = "perplexity"
	ProviderMock       ProviderName = "mock"
)

// Defaults for chat clients.
const (
	DefaultTemperature      = 0.2
	DefaultTimeout          = 90 * time.Second
	DefaultRateLimitRPS     = 1.0
	rateLimiterBurst        = 2
	PerplexityBaseURL       = "https://api.perplexity.ai"
	openAIModelMarker       = "gpt"
	defaultCircuitThreshold = 5
	defaultCircuitTimeout   = time.Minute
)

const (
	errRateLimiter       = "rate limiter: %w"
	errChatCompletion    = "%s chat completion: %w"
	logMsgCircuitOpen    = "Skipping provider - circuit breaker open"
	logKeyProvider       = "provider"
	logKeyModel          = "model"
	logKeyResponseLength = "response_length"
)

// ProviderForModel routes model ids containing "gpt" to OpenAI and everything else to Perplexity.
func ProviderForModel(model string) ProviderName {
	if strings.Contains(strings.ToLower(model), openAIModelMarker) {
		return ProviderOpenAI
	}

	return ProviderPerplexity
}
