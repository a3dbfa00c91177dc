// Package api is the HTTP transport for the oneoff REST backend.
package api

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

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/meysam81/oneoffctl/internal/config"
	"github.com/meysam81/oneoffctl/internal/logger"
	"github.com/meysam81/oneoffctl/internal/service"
	"github.com/meysam81/oneoffctl/internal/utils"
	"github.com/meysam81/oneoffctl/internal/versions"
)

const (
	HeaderRequestID = "X-Request-ID"

	defaultInitialBackoff = 300 * time.Millisecond
	maxErrorBody          = 64 << 10
)

var retryStatus = map[int]bool{
	http.StatusRequestTimeout:        true,
	http.StatusRequestEntityTooLarge: true,
	http.StatusTooManyRequests:       true,
	http.StatusInternalServerError:   true,
	http.StatusBadGateway:            true,
	http.StatusServiceUnavailable:    true,
	http.StatusGatewayTimeout:        true,
}

var retryMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

type Client struct {
	baseURL        string
	http           service.HTTPClient
	timeout        time.Duration
	retryLimit     int
	userAgent      string
	initialBackoff time.Duration
}

type Option func(*Client)

// WithInitialBackoff sets the first retry delay.
func WithInitialBackoff(d time.Duration) Option {
	return func(c *Client) { c.initialBackoff = d }
}

func New(cfg config.APIConfig, client service.HTTPClient, opts ...Option) *Client {
	if client == nil {
		client = service.NewHTTPClient(0)
	}
	c := &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		http:           client,
		timeout:        cfg.Timeout,
		retryLimit:     cfg.RetryLimit,
		userAgent:      utils.FirstNonEmpty(cfg.UserAgent, versions.UserAgent()),
		initialBackoff: defaultInitialBackoff,
	}
	if c.retryLimit < 0 {
		c.retryLimit = 0
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// Error is a non-2xx answer from the backend.
type Error struct {
	Status  int
	Message string
	Method  string
	Path    string
}

func (e *Error) Error() string { return e.Message }

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func IsNotFound(err error) bool { return StatusOf(err) == http.StatusNotFound }

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	requestID := uuid.NewString()

	attempt := 0
	op := func() error {
		attempt++
		data, err := c.roundTrip(ctx, method, target, requestID, payload)
		if err != nil {
			if ctx.Err() != nil || !retryMethods[method] || !retryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		if out == nil || len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode %s %s response: %w", method, path, err))
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialBackoff
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.retryLimit)), ctx)

	err := backoff.RetryNotify(op, policy, func(err error, wait time.Duration) {
		logger.Debug("%s %s attempt %d failed (%v), retrying in %s", method, path, attempt, err, wait)
	})
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			apiErr.Method, apiErr.Path = method, path
		}
		return err
	}
	return nil
}

// roundTrip performs one attempt and returns the body of a 2xx answer.
func (c *Client) roundTrip(ctx context.Context, method, target, requestID string, payload []byte) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader = http.NoBody
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(HeaderRequestID, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("%s %s", method, target)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer utils.Try(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, newError(resp.StatusCode, raw)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}

func newError(status int, raw []byte) *Error {
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
		return &Error{Status: status, Message: eb.Error}
	}
	return &Error{
		Status:  status,
		Message: fmt.Sprintf("Request failed with status code %d %s", status, http.StatusText(status)),
	}
}

// retryable reports whether a failed attempt may be repeated: transport
// failures and the transient statuses.
func retryable(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return retryStatus[apiErr.Status]
	}
	return true
}

func escape(id string) string { return url.PathEscape(id) }
