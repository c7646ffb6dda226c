package resiliency

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Client оборачивает http.Client ограниченными ретраями и circuit breaker'ом.
// Ретраится только то, что имеет смысл повторять: сетевые ошибки и 5xx.
type Client struct {
	http       *http.Client
	breaker    *CircuitBreaker
	retryCount int
	retryDelay time.Duration
	logger     zerolog.Logger
}

type ClientConfig struct {
	Timeout    time.Duration
	RetryCount int
	RetryDelay time.Duration
	Breaker    BreakerConfig
}

func NewClient(cfg ClientConfig, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryCount < 0 {
		cfg.RetryCount = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 100 * time.Millisecond
	}

	return &Client{
		http:       &http.Client{Timeout: cfg.Timeout},
		breaker:    NewCircuitBreaker(cfg.Breaker),
		retryCount: cfg.RetryCount,
		retryDelay: cfg.RetryDelay,
		logger:     logger,
	}
}

// Do выполняет запрос с повторами. Тело запроса восстанавливается через
// req.GetBody, поэтому запросы должны создаваться через http.NewRequest*
// с буферизованным телом.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	var lastErr error

	for i := 0; i <= c.retryCount; i++ {
		if i > 0 {
			c.logger.Warn().
				Int("attempt", i).
				Str("url", req.URL.String()).
				Msg("Retrying request")

			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(c.retryDelay * time.Duration(i)):
			}
		}

		if !c.breaker.Allow() {
			return nil, fmt.Errorf("%w: %s", ErrCircuitOpen, req.URL.Host)
		}

		attempt, err := c.cloneRequest(req)
		if err != nil {
			return nil, err
		}

		resp, err := c.http.Do(attempt)
		if err != nil {
			c.breaker.Failure()
			lastErr = err
			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			c.breaker.Failure()
			lastErr = fmt.Errorf("server returned status %d", resp.StatusCode)
			resp.Body.Close()
			continue
		}

		// 4xx не считается сбоем зависимости.
		c.breaker.Success()
		return resp, nil
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.retryCount+1, lastErr)
}

func (c *Client) BreakerState() BreakerState {
	return c.breaker.State()
}

func (c *Client) cloneRequest(req *http.Request) (*http.Request, error) {
	attempt := req.Clone(req.Context())
	if req.Body == nil || req.GetBody == nil {
		return attempt, nil
	}

	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("failed to rewind request body: %w", err)
	}
	attempt.Body = body
	return attempt, nil
}
