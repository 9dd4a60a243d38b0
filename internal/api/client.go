// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

// package api is the typed client for the reservation backend's REST
// surface. A single Client instance carries an explicitly ordered
// request middleware pipeline (bearer token, request id) and a fixed
// response stage that unwraps payloads and classifies failures; the
// per-resource modules in this package are thin (verb, path, params)
// triples on top of it.
//
// The client holds no ambient globals: construct one and pass it down.
package api // import "github.com/resvlab/resv/internal/api"

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/resvlab/resv/internal/logging"
)

// Config describes where the backend lives.
type Config struct {
	// BaseURL overrides everything when set, e.g. "https://resv.example.org".
	BaseURL string
	// Host and Port form the base URL when BaseURL is empty. The
	// original deployment convention is same-origin with the backend on
	// an alternate port, so Host usually matches the frontend host.
	Host string
	Port int
	// Timeout bounds each request. Zero means 30s, the value the web
	// client settled on after the default 10s proved too tight for the
	// export endpoint.
	Timeout time.Duration
}

// resolveBaseURL applies the same-origin convention.
func (c Config) resolveBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	port := c.Port
	if port == 0 {
		port = 8000
	}
	return fmt.Sprintf("http://%s:%d", host, port)
}

// TokenSource supplies the current bearer token; an empty string means
// "not logged in" and the Authorization header is omitted. The session
// store implements this.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to TokenSource.
type TokenFunc func() string

// Token implements TokenSource.
func (f TokenFunc) Token() string { return f() }

// RequestMiddleware may inspect or mutate an outgoing request. The
// middlewares run in registration order before every dispatch; a
// non-nil error aborts the request.
type RequestMiddleware func(r *http.Request) error

// ResponseMiddleware observes every settled exchange, successful or
// not, in registration order after the built-in classification stage.
// It may replace the error (return a different one) but must not
// consume resp.Body.
type ResponseMiddleware func(resp *http.Response, err error) error

// Hooks are the boundary side effects the pipeline performs exactly
// once per classified failure. Both are optional.
type Hooks struct {
	// Notify surfaces a classified error to the user. Never called for
	// silenced errors.
	Notify func(e *Error)
	// AuthExpired is called on a non-silenced 401; the owner clears the
	// session and routes to the login view (skipping the redirect when
	// already there, to avoid loops).
	AuthExpired func()
}

// Client is the shared HTTP pipeline plus the resource modules.
type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
	hooks  Hooks

	reqMW  []RequestMiddleware
	respMW []ResponseMiddleware

	// silentPaths are URL substrings whose 401s are silenced: the
	// dashboard polls them while logged out and the noise is useless.
	silentPaths []string

	// lastBuster makes the cache-busting timestamp strictly monotonic
	// even when two reads land in the same millisecond.
	lastBuster atomic.Int64
}

// Option customizes a Client at construction.
type Option func(*Client)

// WithHTTPClient substitutes the underlying http.Client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenSource wires the bearer-token supplier.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithHooks wires the boundary side effects.
func WithHooks(h Hooks) Option {
	return func(c *Client) { c.hooks = h }
}

// WithRequestMiddleware appends custom request middleware after the
// built-in ones.
func WithRequestMiddleware(mw ...RequestMiddleware) Option {
	return func(c *Client) { c.reqMW = append(c.reqMW, mw...) }
}

// WithResponseMiddleware appends response middleware.
func WithResponseMiddleware(mw ...ResponseMiddleware) Option {
	return func(c *Client) { c.respMW = append(c.respMW, mw...) }
}

// WithSilentPaths replaces the default silenced-endpoint set.
func WithSilentPaths(paths ...string) Option {
	return func(c *Client) { c.silentPaths = paths }
}

// New builds a Client for the given backend.
func New(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		base:        cfg.resolveBaseURL(),
		http:        &http.Client{Timeout: timeout},
		silentPaths: []string{"/api/statistics", "/dashboard"},
	}
	for _, opt := range opts {
		opt(c)
	}
	// Built-in request middleware, in dispatch order.
	c.reqMW = append([]RequestMiddleware{c.attachRequestID, c.attachAuth}, c.reqMW...)
	return c
}

// BaseURL returns the resolved backend base URL.
func (c *Client) BaseURL() string { return c.base }

// SetHooks swaps the boundary side effects after construction. The UI
// owns the notification surface but only exists once the client is
// already wired, so it attaches its hooks here on startup.
func (c *Client) SetHooks(h Hooks) { c.hooks = h }

// attachAuth adds "Authorization: Bearer <token>" when a token is
// present, and forwards the request unchanged otherwise.
func (c *Client) attachAuth(r *http.Request) error {
	if c.tokens == nil {
		return nil
	}
	if tok := c.tokens.Token(); tok != "" {
		r.Header.Set("Authorization", "Bearer "+tok)
	}
	return nil
}

// attachRequestID tags each request for log correlation.
func (c *Client) attachRequestID(r *http.Request) error {
	r.Header.Set("X-Request-ID", uuid.NewString())
	return nil
}

// cacheBuster returns a strictly increasing timestamp for the `_t`
// query parameter. Reservation status must never be served stale by an
// intermediate cache, so every reservation read carries one.
func (c *Client) cacheBuster() string {
	now := time.Now().UnixMilli()
	for {
		last := c.lastBuster.Load()
		if now <= last {
			now = last + 1
		}
		if c.lastBuster.CompareAndSwap(last, now) {
			return strconv.FormatInt(now, 10)
		}
	}
}

// isSilent reports whether a path belongs to the silenced polling set.
func (c *Client) isSilent(path string) bool {
	for _, p := range c.silentPaths {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// do performs one exchange: build request, run the middleware pipeline,
// dispatch, unwrap or classify. body may be nil, url.Values (sent
// form-encoded, as the login endpoint requires), []byte (sent as-is) or
// any JSON-marshalable value. out may be nil, *[]byte (raw blob) or a
// pointer to decode JSON into.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var (
		reader      io.Reader
		contentType string
	)
	switch b := body.(type) {
	case nil:
	case url.Values:
		reader = strings.NewReader(b.Encode())
		contentType = "application/x-www-form-urlencoded"
	case []byte:
		reader = bytes.NewReader(b)
		contentType = "application/json"
	case io.Reader:
		reader = b
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	for _, mw := range c.reqMW {
		if err := mw(req); err != nil {
			return fmt.Errorf("request middleware: %w", err)
		}
	}

	resp, err := c.http.Do(req)
	err = c.settle(req, resp, err)
	for _, mw := range c.respMW {
		err = mw(resp, err)
	}
	if err != nil {
		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}
		return err
	}
	defer resp.Body.Close()

	switch dst := out.(type) {
	case nil:
		_, err = io.Copy(io.Discard, resp.Body)
		return err
	case *[]byte:
		// Binary response (export downloads).
		blob, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		*dst = blob
		return nil
	default:
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
}

// settle is the built-in response stage: on success it passes the
// response through for payload unwrapping; on failure it classifies
// the error, performs the boundary side effects exactly once, and
// returns the classified error so call sites can still react.
func (c *Client) settle(req *http.Request, resp *http.Response, err error) error {
	if err != nil {
		e := classify(0, "", err)
		logging.Debugf("api: %s %s: %v", req.Method, req.URL.Path, e)
		c.notify(e)
		return e
	}
	if resp.StatusCode < 400 {
		return nil
	}

	detail := readDetail(resp)
	e := classify(resp.StatusCode, detail, nil)
	e.URL = req.URL.String()

	if e.Kind == KindAuthExpired && c.isSilent(req.URL.Path) {
		// Polling endpoints 401 constantly while logged out; keep them
		// out of the user's face but still fail the call.
		e.Silenced = true
		logging.Debugf("api: silenced 401 on %s", req.URL.Path)
		return e
	}

	logging.Debugf("api: %s %s: %v", req.Method, req.URL.Path, e)
	c.notify(e)
	if e.Kind == KindAuthExpired && c.hooks.AuthExpired != nil {
		c.hooks.AuthExpired()
	}
	return e
}

func (c *Client) notify(e *Error) {
	if c.hooks.Notify != nil {
		c.hooks.Notify(e)
	}
}

// readDetail pulls the backend's {"detail": "..."} explanation out of
// an error response, tolerating other bodies.
func readDetail(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
	// Replace the consumed body so later middleware sees a valid reader.
	resp.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return ""
	}
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		return payload.Message
	}
	return ""
}

// get is shorthand for a JSON GET.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post is shorthand for a JSON POST.
func (c *Client) post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

// put is shorthand for a JSON PUT.
func (c *Client) put(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPut, path, query, body, out)
}

// del is shorthand for a DELETE.
func (c *Client) del(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}
