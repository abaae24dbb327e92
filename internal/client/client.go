package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	stdpath "path"
	"sync"
	"time"

	"github.com/driveterm/drive/internal/log"
	"github.com/driveterm/drive/internal/version"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

const (
	// DefaultRetries is how many times an idempotent request is retried on
	// network failures and gateway errors.
	DefaultRetries = 3

	defaultTimeout = 60 * time.Second
)

// Client talks to the storage backend's REST API.
type Client struct {
	h       *http.Client
	base    *url.URL
	retries uint64
	backoff time.Duration
	timeout time.Duration

	mu    sync.RWMutex
	token string
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying [http.Client].
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.h = h }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithRetries sets how many times idempotent requests are retried and the
// initial backoff between attempts.
func WithRetries(n uint64, backoff time.Duration) Option {
	return func(c *Client) {
		c.retries = n
		c.backoff = backoff
	}
}

// WithTimeout bounds each JSON request, body included. Streaming transfers
// are not bounded by it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient creates a new [Client] for the API rooted at baseURL, e.g.
// "http://localhost:5000/api".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API URL %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		base:    u,
		retries: DefaultRetries,
		backoff: 200 * time.Millisecond,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.h == nil {
		c.h = log.NewHTTPClient(c.timeout)
	}
	return c, nil
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// SetToken sets the bearer token. An empty token clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	var rsp *http.Response
	backoff := retry.WithMaxRetries(c.retries, retry.NewExponential(c.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		r, err := c.sendReq(ctx, http.MethodGet, path, query, nil, nil)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			slog.Debug("Retrying request", "path", path, "error", err)
			return retry.RetryableError(err)
		}
		if isRetryableStatus(r.StatusCode) {
			r.Body.Close()
			slog.Debug("Retrying request", "path", path, "status", r.StatusCode)
			return retry.RetryableError(fmt.Errorf("server returned %s", r.Status))
		}
		rsp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rsp, nil
}

func (c *Client) post(ctx context.Context, path string, body io.Reader, headers http.Header) (*http.Response, error) {
	return c.sendReq(ctx, http.MethodPost, path, nil, body, headers)
}

func (c *Client) patch(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	return c.sendReq(ctx, http.MethodPatch, path, nil, body, nil)
}

func (c *Client) delete(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	return c.sendReq(ctx, http.MethodDelete, path, query, nil, nil)
}

// sendReq sends a request whose whole exchange, including reading the
// response body, must finish within the client timeout.
func (c *Client) sendReq(ctx context.Context, method, path string, query url.Values, body io.Reader, headers http.Header) (*http.Response, error) {
	if c.timeout <= 0 {
		return c.sendStream(ctx, method, path, query, body, headers)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	rsp, err := c.sendStream(ctx, method, path, query, body, headers)
	if err != nil {
		cancel()
		return nil, err
	}
	rsp.Body = &cancelBody{ReadCloser: rsp.Body, cancel: cancel}
	return rsp, nil
}

// sendStream sends a request without an overall deadline. Only the dial and
// response header timeouts of the transport apply.
func (c *Client) sendStream(ctx context.Context, method, path string, query url.Values, body io.Reader, headers http.Header) (*http.Response, error) {
	u := *c.base
	u.Path = stdpath.Join("/", c.base.Path, path)
	u.RawQuery = query.Encode()

	req, err := c.buildReq(ctx, method, u.String(), body, headers)
	if err != nil {
		return nil, err
	}
	c.applyAuth(req)

	return c.doReq(req)
}

// cancelBody releases the request context once the body is closed.
type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

func (c *Client) doReq(req *http.Request) (*http.Response, error) {
	return c.h.Do(req)
}

func (c *Client) buildReq(ctx context.Context, method, url string, body io.Reader, headers http.Header) (*http.Request, error) {
	r, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	for k, v := range headers {
		r.Header[http.CanonicalHeaderKey(k)] = v
	}

	r.Header.Set("User-Agent", "drive/"+version.Version)
	r.Header.Set("Accept", "application/json")
	r.Header.Set("X-Request-ID", uuid.NewString())

	if body != nil && r.Header.Get("Content-Type") == "" {
		r.Header.Set("Content-Type", "application/json")
	}

	return r, nil
}

func (c *Client) applyAuth(req *http.Request) {
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func jsonBody(v any) io.Reader {
	b := new(bytes.Buffer)
	m, _ := json.Marshal(v)
	b.Write(m)
	return b
}

// decodeResponse checks the status of rsp, closes its body and decodes the
// JSON payload into out when out is not nil.
func decodeResponse(rsp *http.Response, out any) error {
	defer rsp.Body.Close()
	if err := checkResponse(rsp); err != nil {
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, rsp.Body)
		return nil
	}
	if err := json.NewDecoder(rsp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
