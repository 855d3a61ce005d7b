// Package fetch performs HTTP calls to render collaborators and maps their
// failures onto the domain error kinds.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/couchcryptid/weather-panel/internal/domain"
	"github.com/couchcryptid/weather-panel/internal/observability"
)

// maxBody caps a collaborator response. Screenshots of a full panel are a few
// megabytes at most.
const maxBody = 32 << 20

// Client is an HTTP client for one collaborator, guarded by a circuit breaker.
type Client struct {
	name       string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a client whose calls are bounded by timeout. After five
// consecutive failures the breaker opens for a minute and calls fail fast.
func New(name string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	c := &Client{
		name:       name,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    metrics,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    5 * time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "collaborator", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

// Name identifies the collaborator in errors and metrics.
func (c *Client) Name() string { return c.name }

// Do sends req and returns the response body. Non-2xx statuses are failures.
// Timeouts (client deadline, context deadline, 408, 504) wrap
// domain.ErrFetchTimeout; everything else wraps domain.ErrFetch.
func (c *Client) Do(req *http.Request) ([]byte, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, &statusError{code: resp.StatusCode, body: string(body)}
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxBody))
	})
	if err != nil {
		kind, sentinel := classify(err)
		c.metrics.FetchErrors.WithLabelValues(c.name, kind).Inc()
		c.logger.Debug("collaborator call failed", "collaborator", c.name, "url", req.URL.Redacted(), "kind", kind, "error", err)
		return nil, fmt.Errorf("%s: %w: %w", c.name, sentinel, err)
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("%s: %w: unexpected result type %T", c.name, domain.ErrFetch, result)
	}
	return body, nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.code, e.body)
}

// StatusCode reports the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.code
	}
	return 0
}

func classify(err error) (kind string, sentinel error) {
	if isTimeout(err) {
		return "timeout", domain.ErrFetchTimeout
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "circuit_open", domain.ErrFetch
	}
	return "error", domain.ErrFetch
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	switch StatusCode(err) {
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return true
	}
	return false
}
