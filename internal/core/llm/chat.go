package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	apperrors "github.com/lueurxax/search-intel-brief/internal/core/errors"
	"github.com/lueurxax/search-intel-brief/internal/platform/observability"
)

// ClientConfig configures a chat client.
type ClientConfig struct {
	Name        ProviderName
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
	RateLimit   float64
	Circuit     CircuitBreakerConfig
}

type chatClient struct {
	name        ProviderName
	client      *openai.Client
	temperature float32
	timeout     time.Duration
	rateLimiter *rate.Limiter
	circuit     *CircuitBreaker
	logger      *zerolog.Logger
}

// NewChatClient creates a Generator for an OpenAI-compatible chat completions API.
// Perplexity is served through its OpenAI-compatible base URL.
func NewChatClient(cfg ClientConfig, logger *zerolog.Logger) (Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Name, apperrors.ErrClientDisabled)
	}

	ocfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		ocfg.BaseURL = cfg.BaseURL
	}

	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultTemperature
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimitRPS
	}

	return &chatClient{
		name:        cfg.Name,
		client:      openai.NewClientWithConfig(ocfg),
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), rateLimiterBurst),
		circuit:     NewCircuitBreaker(cfg.Name, cfg.Circuit, logger),
		logger:      logger,
	}, nil
}

func (c *chatClient) Generate(ctx context.Context, systemPrompt, userPrompt, model string) (string, error) {
	if err := c.circuit.CheckCircuit(); err != nil {
		c.logger.Warn().Str(logKeyProvider, string(c.name)).Msg(logMsgCircuitOpen)
		return "", err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf(errRateLimiter, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})

	observability.LLMRequestDuration.WithLabelValues(string(c.name), model).Observe(time.Since(start).Seconds())

	if err != nil {
		c.circuit.RecordFailure()
		observability.LLMRequests.WithLabelValues(string(c.name), observability.StatusError).Inc()

		return "", fmt.Errorf(errChatCompletion, c.name, err)
	}

	c.circuit.RecordSuccess()
	observability.LLMRequests.WithLabelValues(string(c.name), observability.StatusSuccess).Inc()

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", c.name, apperrors.ErrEmptyResponse)
	}

	content := resp.Choices[0].Message.Content

	c.logger.Debug().
		Str(logKeyProvider, string(c.name)).
		Str(logKeyModel, model).
		Int(logKeyResponseLength, len(content)).
		Msg("LLM response")

	return content, nil
}
