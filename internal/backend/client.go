// Package backend is the REST client for the trading backend. Every
// call except login/register carries the session's bearer token, and
// every response travels in the backend's {success, data, message}
// envelope.
package backend

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"resty.dev/v3"

	"github.com/ai-stock-trading/dashboard/internal/logger"
	"github.com/ai-stock-trading/dashboard/internal/model"
	"github.com/ai-stock-trading/dashboard/internal/session"
)

type Client struct {
	c       *resty.Client
	session *session.Store

	// The AI bridge runs the training jobs; status fan-outs go through
	// a leaky bucket so a long watch-list can't hammer it.
	aiLimiter ratelimit.Limiter

	logger logger.Logger

	mu               sync.Mutex
	onUnauthorized   func()
	unauthorizedOnce *sync.Once
}

func NewClient(baseURL string, store *session.Store, logger logger.Logger) *Client {
	client := resty.New().
		SetLogger(logger).
		SetBaseURL(baseURL)

	return &Client{
		c:                client,
		session:          store,
		aiLimiter:        ratelimit.New(120, ratelimit.Per(1*time.Minute)),
		logger:           logger,
		unauthorizedOnce: &sync.Once{},
	}
}

// OnUnauthorized registers the session-teardown hook. It fires at most
// once per session, no matter how many calls come back 401.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

func (c *Client) fireUnauthorized() {
	c.mu.Lock()
	once := c.unauthorizedOnce
	fn := c.onUnauthorized
	c.mu.Unlock()

	once.Do(func() {
		if fn != nil {
			fn()
		}
	})
}

// rearmUnauthorized resets the single-fire guard after a fresh login.
func (c *Client) rearmUnauthorized() {
	c.mu.Lock()
	c.unauthorizedOnce = &sync.Once{}
	c.mu.Unlock()
}

// r builds a request with the bearer token attached when one is held.
func (c *Client) r(ctx context.Context) *resty.Request {
	req := c.c.R().SetContext(ctx)
	if token := c.session.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// APIError carries a backend-reported failure message so callers can
// surface it verbatim.
type APIError struct {
	Message    string
	Code       int
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend request failed: status %d", e.StatusCode)
}

// decode folds the shared response handling: transport errors, the 401
// teardown path, envelope failures and the success payload.
func decode[T any](c *Client, resp *resty.Response, err error, op string) (T, error) {
	var zero T
	if err != nil {
		return zero, fmt.Errorf("%w: can't send %s request", err, op)
	}
	defer resp.Body.Close()

	c.logger.Debugf("got response %s status: %s, %s", resp.Request.URL, resp.Status(), resp.Duration())

	if resp.StatusCode() == http.StatusUnauthorized {
		c.fireUnauthorized()
		return zero, &APIError{Message: "unauthorized", StatusCode: resp.StatusCode()}
	}

	if resp.IsError() {
		if envelope, ok := resp.Error().(*model.Response[any]); ok && envelope.Message != "" {
			return zero, &APIError{Message: envelope.Message, Code: envelope.Code, StatusCode: resp.StatusCode()}
		}
		return zero, &APIError{StatusCode: resp.StatusCode()}
	}

	if resp.IsSuccess() {
		envelope := resp.Result().(*model.Response[T])
		if !envelope.Success {
			return zero, &APIError{Message: envelope.Message, Code: envelope.Code, StatusCode: resp.StatusCode()}
		}
		return envelope.Data, nil
	}

	return zero, fmt.Errorf("%s unexpected response: %s", op, resp.Status())
}
