package datasource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/yourusername/pickscore/internal/logger"
	"github.com/yourusername/pickscore/internal/metrics"
)

// HTTPClientConfig holds configuration for HTTP clients
type HTTPClientConfig struct {
	Timeout           time.Duration
	MaxRetries        int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
	RateLimit         float64 // requests per second
	CircuitBreakerMax int     // max consecutive failures before circuit break
	CircuitCooldown   time.Duration
}

// DefaultHTTPClientConfig returns recommended defaults. Retries are off: a failed
// upstream call is surfaced to the caller, who decides when to ask again.
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:           15 * time.Second,
		MaxRetries:        0,
		RetryWaitMin:      250 * time.Millisecond,
		RetryWaitMax:      2 * time.Second,
		RateLimit:         2.0,
		CircuitBreakerMax: 5,
		CircuitCooldown:   time.Minute,
	}
}

// RateLimitedHTTPClient wraps retryablehttp.Client with rate limiting and circuit breaker
type RateLimitedHTTPClient struct {
	client            *retryablehttp.Client
	limiter           *rate.Limiter
	circuitBreakerMax int
	cooldown          time.Duration
	now               func() time.Time
	logger            *logger.UpstreamLogger

	mu                sync.Mutex
	consecutiveErrors int
	isOpen            bool
	openedAt          time.Time
	lastError         error
}

// NewRateLimitedHTTPClient creates a new rate-limited HTTP client
func NewRateLimitedHTTPClient(cfg HTTPClientConfig, log *logger.UpstreamLogger) *RateLimitedHTTPClient {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = customRetryPolicy()
	// Hand the final response back instead of a "giving up" error
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	// Requests are logged by the provider
	retryClient.Logger = nil

	circuitMax := cfg.CircuitBreakerMax
	if circuitMax <= 0 {
		circuitMax = 1
	}

	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}

	return &RateLimitedHTTPClient{
		client:            retryClient,
		limiter:           rate.NewLimiter(limit, 1),
		circuitBreakerMax: circuitMax,
		cooldown:          cfg.CircuitCooldown,
		now:               time.Now,
		logger:            log,
	}
}

// Do executes an HTTP request with rate limiting and circuit breaker
func (c *RateLimitedHTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.allow(); err != nil {
		return nil, err
	}

	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	retryReq, err := retryablehttp.FromRequest(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to wrap request: %w", err)
	}

	resp, err := c.client.Do(retryReq)
	if err != nil {
		c.recordFailure(err)
		return nil, err
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		c.recordFailure(fmt.Errorf("upstream status %d", resp.StatusCode))
	} else {
		c.recordSuccess()
	}

	return resp, nil
}

// Get executes a GET request
func (c *RateLimitedHTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

// IsOpen reports whether the circuit breaker currently rejects requests
func (c *RateLimitedHTTPClient) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen && c.now().Sub(c.openedAt) < c.cooldown
}

// Close closes any resources held by the client
func (c *RateLimitedHTTPClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

// allow rejects the call while the breaker is open. Once the cool-down has passed a
// single trial request is let through; its outcome closes or re-opens the breaker.
func (c *RateLimitedHTTPClient) allow() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isOpen {
		return nil
	}
	if c.now().Sub(c.openedAt) < c.cooldown {
		return fmt.Errorf("%w: %v", ErrCircuitOpen, c.lastError)
	}
	// Half-open: push the window forward so concurrent callers keep failing fast
	c.openedAt = c.now()
	return nil
}

func (c *RateLimitedHTTPClient) recordFailure(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.consecutiveErrors++
	c.lastError = err
	if c.consecutiveErrors >= c.circuitBreakerMax {
		if !c.isOpen {
			metrics.RecordCircuitBreakerTrip()
			if c.logger != nil {
				c.logger.LogCircuitBreakerEvent("opened", c.consecutiveErrors, err)
			}
		}
		c.isOpen = true
		c.openedAt = c.now()
	}
}

func (c *RateLimitedHTTPClient) recordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isOpen && c.logger != nil {
		c.logger.LogCircuitBreakerEvent("closed", c.consecutiveErrors, nil)
	}
	c.consecutiveErrors = 0
	c.isOpen = false
	c.lastError = nil
}

// customRetryPolicy defines which HTTP responses should trigger a retry. Rate
// limiting (429) is never retried.
func customRetryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		if err != nil {
			// Retry on network errors
			return true, err
		}

		switch resp.StatusCode {
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true, nil
		default:
			return false, nil
		}
	}
}

// drainBody discards what is left of a response body so the connection can be reused
func drainBody(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
	_ = body.Close()
}

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}
