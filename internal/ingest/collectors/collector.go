// Package collectors fetches raw items from the configured sources.
//
// Every collector is independent: RunAll isolates failures so one broken source
// contributes zero items and never aborts the run.
package collectors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
	apperrors "github.com/lueurxax/search-intel-brief/internal/core/errors"
	"github.com/lueurxax/search-intel-brief/internal/platform/observability"
)

const (
	defaultTimeout    = 30 * time.Second
	maxBodySize       = 10 * 1024 * 1024 // 10MB
	summaryMaxRunes   = 400
	headerUserAgent   = "User-Agent"
	headerAccept      = "Accept"
	headerAuth        = "Authorization"
	defaultUserAgent  = "Mozilla/5.0 (SearchIntel/1.0)"
	wrapCreateRequest = "create request: %w"
	wrapReadBody      = "read body: %w"
	wrapHTTPStatusFmt = "%w: %s returned %d"
	logKeyCollector   = "collector"
	logKeyURL         = "url"
	logKeyCount       = "count"
)

var errNoToken = errors.New("token not configured")

// Collector produces raw items from one source.
type Collector interface {
	Name() string
	Collect(ctx context.Context) ([]domain.Item, error)
}

// RunStats summarizes a RunAll pass.
type RunStats struct {
	Succeeded int
	Failed    int
}

// RunAll runs collectors in order, each bounded by timeout. An error or panic is
// logged and counted; that collector contributes no items. There are no retries.
func RunAll(ctx context.Context, collectors []Collector, timeout time.Duration, logger *zerolog.Logger) ([]domain.Item, RunStats) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var (
		items []domain.Item
		stats RunStats
	)

	for _, c := range collectors {
		if ctx.Err() != nil {
			logger.Warn().Err(ctx.Err()).Msg("Collection interrupted")
			break
		}

		start := time.Now()
		got, err := runOne(ctx, c, timeout)

		observability.CollectorDuration.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())

		if err != nil {
			stats.Failed++

			observability.CollectorFailures.WithLabelValues(c.Name()).Inc()
			logger.Warn().Err(err).Str(logKeyCollector, c.Name()).Msg("Collector failed")

			continue
		}

		stats.Succeeded++

		observability.CollectorItems.WithLabelValues(c.Name()).Add(float64(len(got)))
		logger.Info().Str(logKeyCollector, c.Name()).Int(logKeyCount, len(got)).Msg("Collector finished")

		items = append(items, got...)
	}

	return items, stats
}

func runOne(ctx context.Context, c Collector, timeout time.Duration) (items []domain.Item, err error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			items = nil
			err = fmt.Errorf("%w: %v", apperrors.ErrCollectorPanic, r)
		}
	}()

	return c.Collect(ctx)
}

// httpFetcher is the GET helper shared by the HTTP collectors.
type httpFetcher struct {
	client    *http.Client
	userAgent string
}

func newHTTPFetcher(client *http.Client, userAgent string) httpFetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return httpFetcher{client: client, userAgent: userAgent}
}

func (f httpFetcher) get(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf(wrapCreateRequest, err)
	}

	req.Header.Set(headerUserAgent, f.userAgent)

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return f.do(req)
}

func (f httpFetcher) do(req *http.Request) ([]byte, error) {
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req.URL.Redacted(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(wrapHTTPStatusFmt, apperrors.ErrHTTPStatus, req.URL.Redacted(), resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf(wrapReadBody, err)
	}

	return body, nil
}
