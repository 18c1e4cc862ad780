package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/pkg/circuitbreaker"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

var (
	// ErrTransport covers dial failures, timeouts, non-success responses and
	// bodies that cannot be decoded.
	ErrTransport = errors.New("transport failure")
	ErrNotFound  = errors.New("resource not found")
)

const maxErrorBody = 1 << 10

// Breaker settings used by New unless WithCircuitBreaker overrides them.
const (
	DefaultMaxFailures  = 5
	DefaultResetTimeout = 30 * time.Second
)

// StatusError is returned for any non-2xx response. A 404 matches ErrNotFound,
// everything else matches ErrTransport.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool {
	if e.StatusCode == http.StatusNotFound {
		return target == ErrNotFound
	}
	return target == ErrTransport
}

// Client is a JSON-over-HTTP client for one remote service.
type Client struct {
	name    string
	baseURL string
	http    *http.Client
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client. Mostly useful in tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

func New(name, baseURL string, timeout time.Duration, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: circuitbreaker.NewCircuitBreaker(name, DefaultMaxFailures, DefaultResetTimeout),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string { return c.name }

// WithBreaker returns a copy of c that shares its transport and base URL but
// is guarded by cb instead of c's breaker.
func (c *Client) WithBreaker(cb *circuitbreaker.CircuitBreaker) *Client {
	clone := *c
	clone.breaker = cb
	return &clone
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, query, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, query url.Values) error {
	return c.Do(ctx, http.MethodDelete, path, query, nil, nil)
}

// Do sends body as JSON (when non-nil) and decodes a 2xx response into out
// (when non-nil). Only transport errors and 5xx responses trip the breaker.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request body: %w", c.name, err)
		}
	}

	var clientErr error
	err := c.breaker.Execute(ctx, func() error {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			statusErr := &StatusError{
				Method:     method,
				URL:        target,
				StatusCode: resp.StatusCode,
				Body:       strings.TrimSpace(string(snippet)),
			}
			if resp.StatusCode >= 500 {
				return statusErr
			}
			clientErr = statusErr
			return nil
		}

		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			clientErr = fmt.Errorf("%w: %s %s: decode response: %w", ErrTransport, method, target, err)
		}
		return nil
	})

	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return statusErr
		}
		c.logger.Debug("Outbound request failed",
			zap.String("client", c.name),
			zap.String("method", method),
			zap.String("url", target),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, target, err)
	}
	return clientErr
}
