package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lueurxax/search-intel-brief/internal/core/errors"
)

type chatRequest struct {
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newChatServer(t *testing.T, status int, content string, captured *chatRequest, calls *int32) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)

		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if captured != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}

		w.Header().Set("Content-Type", "application/json")

		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))

			return
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"model":  "sonar",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
		})
	}))
}

func TestChatClient_Generate(t *testing.T) {
	logger := zerolog.Nop()

	var (
		req   chatRequest
		calls int32
	)

	srv := newChatServer(t, http.StatusOK, "- line one\n- line two", &req, &calls)
	defer srv.Close()

	g, err := NewChatClient(ClientConfig{Name: ProviderPerplexity, APIKey: "test-key", BaseURL: srv.URL, RateLimit: 100}, &logger)
	require.NoError(t, err)

	got, err := g.Generate(context.Background(), "system", "user", "sonar-pro")
	require.NoError(t, err)

	assert.Equal(t, "- line one\n- line two", got)
	assert.Equal(t, "sonar-pro", req.Model)
	assert.InDelta(t, DefaultTemperature, req.Temperature, 1e-6)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, "user", req.Messages[1].Content)
}

func TestChatClient_DisabledWithoutKey(t *testing.T) {
	logger := zerolog.Nop()

	_, err := NewChatClient(ClientConfig{Name: ProviderOpenAI}, &logger)

	assert.ErrorIs(t, err, apperrors.ErrClientDisabled)
}

func TestChatClient_CircuitOpensAfterFailures(t *testing.T) {
	logger := zerolog.Nop()

	var calls int32

	srv := newChatServer(t, http.StatusInternalServerError, "", nil, &calls)
	defer srv.Close()

	g, err := NewChatClient(ClientConfig{
		Name:      ProviderOpenAI,
		APIKey:    "test-key",
		BaseURL:   srv.URL,
		RateLimit: 100,
		Circuit:   CircuitBreakerConfig{Threshold: 2, ResetAfter: time.Hour},
	}, &logger)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = g.Generate(context.Background(), "s", "u", "gpt-4o-mini")
		require.Error(t, err)
	}

	_, err = g.Generate(context.Background(), "s", "u", "gpt-4o-mini")
	assert.ErrorIs(t, err, apperrors.ErrCircuitBreakerOpen)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCircuitBreaker(t *testing.T) {
	logger := zerolog.Nop()
	now := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)

	cb := NewCircuitBreaker(ProviderOpenAI, CircuitBreakerConfig{Threshold: 2, ResetAfter: time.Minute}, &logger)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	assert.False(t, cb.IsOpen())

	cb.RecordSuccess()
	cb.RecordFailure()
	assert.False(t, cb.IsOpen(), "success resets the count")

	cb.RecordFailure()
	assert.True(t, cb.IsOpen())
	assert.ErrorIs(t, cb.CheckCircuit(), apperrors.ErrCircuitBreakerOpen)

	now = now.Add(2 * time.Minute)
	assert.NoError(t, cb.CheckCircuit())
}

func TestProviderForModel(t *testing.T) {
	tests := []struct {
		model string
		want  ProviderName
	}{
		{model: "gpt-4o-mini", want: ProviderOpenAI},
		{model: "GPT-4.1", want: ProviderOpenAI},
		{model: "sonar-pro", want: ProviderPerplexity},
		{model: "", want: ProviderPerplexity},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, ProviderForModel(tt.model))
		})
	}
}

type stubGenerator struct {
	name string
}

func (s stubGenerator) Generate(_ context.Context, _, _, model string) (string, error) {
	return s.name + ":" + model, nil
}

func TestRouter(t *testing.T) {
	r := NewRouter(stubGenerator{name: "openai"}, nil)

	assert.True(t, r.Available())
	assert.True(t, r.Has(ProviderOpenAI))
	assert.False(t, r.Has(ProviderPerplexity))

	got, err := r.Generate(context.Background(), "", "", "gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, "openai:gpt-4o", got)

	_, err = r.Generate(context.Background(), "", "", "sonar")
	assert.ErrorIs(t, err, apperrors.ErrClientDisabled)

	assert.False(t, NewRouter(nil, nil).Available())
}

func TestMock(t *testing.T) {
	m := NewMock()

	exec, err := m.Generate(context.Background(), "", "TASK=EXECUTIVE_INSIGHTS", "")
	require.NoError(t, err)
	assert.Contains(t, exec, "Leadership takeaway:")

	cons, err := m.Generate(context.Background(), "", "TASK=CONSULTING_NEWS", "")
	require.NoError(t, err)
	assert.Contains(t, cons, "### Market Radar")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = m.Generate(ctx, "", "", "")
	assert.Error(t, err)
}
