// internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 15 * time.Second

	maxErrorBody = 64 << 10
)

// Client talks to the marketplace REST API. Calls are never retried; a failed
// request is reported to the caller as-is.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
	logger     *logrus.Logger
	language   string
}

type Option func(*Client)

// WithHTTPClient replaces the default client. A nil hc is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the request timeout on a copy of the current client, so a
// client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithLanguage sets Accept-Language so server messages come back localized.
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

func New(baseURL string, session *Session, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if session == nil {
		session, _ = NewSession(nil)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		session: session,
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// errorBody accepts both the envelope used by the API server and bare
// {"message": "..."} / {"error": "..."} bodies.
type errorBody struct {
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		apiErr.Message = http.StatusText(status)
		return apiErr
	}

	apiErr.Message = eb.Message
	if len(eb.Error) > 0 {
		var detail errorDetail
		var text string
		switch {
		case json.Unmarshal(eb.Error, &detail) == nil:
			apiErr.Code = detail.Code
			if apiErr.Message == "" {
				apiErr.Message = detail.Message
			}
		case json.Unmarshal(eb.Error, &text) == nil:
			if apiErr.Message == "" {
				apiErr.Message = text
			}
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// do performs one API call. When auth is true the bearer token is required and
// attached; a missing token fails before any request is sent.
func (c *Client) do(ctx context.Context, method, path string, auth bool, in, out interface{}) error {
	var token string
	if auth {
		token = c.session.Token()
		if token == "" {
			return ErrAuthRequired
		}
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).WithError(err).Warn("API request failed")
		return fmt.Errorf("%w: %s %s: %v", ErrRequestFailed, method, path, err)
	}
	defer resp.Body.Close()

	fields := logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := decodeAPIError(resp.StatusCode, raw)
		c.logger.WithFields(fields).Warn(apiErr.Message)

		if resp.StatusCode == http.StatusUnauthorized && auth {
			if clearErr := c.session.Clear(); clearErr != nil {
				c.logger.WithError(clearErr).Warn("Failed to clear session")
			}
		}
		return apiErr
	}

	c.logger.WithFields(fields).Debug("API request completed")

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: failed to decode response: %v", ErrRequestFailed, err)
	}
	return nil
}
