package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/guttosm/tour-package-service/internal/circuitbreaker"
	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/metrics"
)

// maxBodyBytes bounds the size of an upstream response body.
const maxBodyBytes = 10 << 20

// Fetcher supplies the upstream package list.
type Fetcher interface {
	FetchPackages(ctx context.Context) ([]model.TourPackage, error)
}

// HTTPError is a non-200 upstream response.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Client fetches the package list over HTTP with rate limiting, bounded
// retries and an optional circuit breaker.
type Client struct {
	url        string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	limiter    *rate.Limiter
	breaker    *circuitbreaker.CircuitBreaker
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetries sets the retry count and base delay. The delay doubles per attempt.
func WithRetries(maxRetries int, delay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = max(0, maxRetries)
		c.retryDelay = delay
	}
}

// WithRateLimit caps outbound requests per second. rps <= 0 disables the limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(1, burst))
	}
}

// WithCircuitBreaker guards every fetch with cb.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// NewClient creates a client for the package list at url.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		maxRetries: 2,
		retryDelay: 500 * time.Millisecond,
		limiter:    rate.NewLimiter(rate.Limit(2), 2),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPackages downloads and decodes the package list.
func (c *Client) FetchPackages(ctx context.Context) ([]model.TourPackage, error) {
	start := time.Now()

	var decoded Decoded
	fetch := func() error {
		var err error
		decoded, err = c.fetchWithRetry(ctx)
		return err
	}

	var err error
	if c.breaker != nil {
		err = c.breaker.Execute(ctx, fetch)
	} else {
		err = fetch()
	}

	metrics.RecordSourceFetch(fetchOutcome(err), time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("fetch packages from %s: %w", c.url, err)
	}

	log.Debug().
		Str("shape", decoded.Shape.String()).
		Str("path", decoded.Path).
		Int("packages", len(decoded.Packages)).
		Int("skipped", decoded.Skipped).
		Dur("duration", time.Since(start)).
		Msg("Fetched upstream package list")
	return decoded.Packages, nil
}

func (c *Client) fetchWithRetry(ctx context.Context) (Decoded, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.retryDelay * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return Decoded{}, ctx.Err()
			case <-time.After(backoff):
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return Decoded{}, err
			}
		}

		decoded, err := c.doRequest(ctx)
		if err == nil {
			return decoded, nil
		}
		lastErr = err

		if !isRetryable(ctx, err) {
			break
		}
		log.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Int("max_attempts", c.maxRetries+1).
			Msg("Upstream package fetch failed, retrying")
	}
	return Decoded{}, lastErr
}

func (c *Client) doRequest(ctx context.Context) (Decoded, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Decoded{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Decoded{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return Decoded{}, &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Decoded{}, fmt.Errorf("read body: %w", err)
	}
	return Decode(body)
}

func isRetryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, ErrUnrecognizedShape) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		s := httpErr.StatusCode
		return s >= 500 || s == http.StatusRequestTimeout || s == http.StatusTooManyRequests
	}
	// Transport errors.
	return true
}

func fetchOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, ErrUnrecognizedShape):
		return "unrecognized_shape"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}
