// Package api implements the HTTP transport to the RentaRide backend. It
// attaches the bearer credential to every request, maps transport and
// status failures onto the domain error taxonomy, and performs the global
// 401 session teardown.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentaride/client-go/internal/core/domain"
	"github.com/rentaride/client-go/internal/core/ports"
	"github.com/rentaride/client-go/internal/metrics"
)

const defaultTimeout = 15 * time.Second

// Client is the backend transport. It implements the AuthAPI, VehicleAPI,
// BookingAPI, and UserAPI ports.
type Client struct {
	http           *http.Client
	baseURL        string
	store          ports.SessionStore
	onUnauthorized func()
	log            zerolog.Logger
}

var (
	_ ports.AuthAPI    = (*Client)(nil)
	_ ports.VehicleAPI = (*Client)(nil)
	_ ports.BookingAPI = (*Client)(nil)
	_ ports.UserAPI    = (*Client)(nil)
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout bounds every round-trip. Values <= 0 keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUnauthorizedHandler registers the redirect hook invoked after a 401
// tears the session down. The hook runs at most once per failed request
// and never for the login/register endpoints themselves.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New builds a Client. store may be nil for an unauthenticated client; it
// is otherwise both the bearer source and the target of the 401 teardown.
func New(baseURL string, store ports.SessionStore, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// authExempt paths never trigger the global teardown: a 401 on them is the
// expected "wrong credentials" answer, and the visitor is already on the
// login or registration view.
func authExempt(path string) bool {
	return path == "/auth/login" || path == "/auth/register"
}

// do performs one round-trip. body and out may be nil; query may be nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.attachBearer(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend unreachable")
		return &domain.APIError{Message: "cannot connect to server", Kind: domain.ErrNetwork}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.APIError{Message: "reading response failed", Kind: domain.ErrNetwork}
	}

	c.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("api request")

	if resp.StatusCode >= 400 {
		return c.failure(ctx, path, resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) attachBearer(ctx context.Context, req *http.Request) {
	if c.store == nil {
		return
	}
	cred, err := c.store.Credential(ctx)
	if err != nil || cred == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+string(cred))
}

// failure maps a non-2xx response onto the error taxonomy and, for a 401
// outside the auth views, silently tears the session down so the visitor
// lands on the login view instead of a raw error.
func (c *Client) failure(ctx context.Context, path string, status int, body []byte) error {
	msg := serverMessage(body)

	if status == http.StatusUnauthorized && !authExempt(path) {
		c.teardown(ctx)
	}

	return &domain.APIError{Status: status, Message: msg, Kind: kindForStatus(status)}
}

func (c *Client) teardown(ctx context.Context) {
	if c.store != nil {
		if err := c.store.Clear(ctx); err != nil {
			c.log.Error().Err(err).Msg("session teardown failed")
		}
	}
	metrics.SessionTeardownsTotal.WithLabelValues("unauthorized_response").Inc()
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return domain.ErrInvalidRequest
	case status == http.StatusUnauthorized:
		return domain.ErrAuthentication
	case status == http.StatusForbidden:
		return domain.ErrForbidden
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status == http.StatusConflict:
		return domain.ErrConflict
	case status >= 500:
		return domain.ErrServer
	default:
		return domain.ErrInvalidRequest
	}
}

// serverMessage extracts the backend's own error text so the UI can show
// it, trying the two envelope shapes the backend is known to use.
func serverMessage(body []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return ""
}
