// Package api is the HTTP client for the trip planner backend. Account and
// trip mutations surface typed errors; the place search, weather,
// recommendation and route reads degrade to synthetic data instead of
// failing.
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
	"sync"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/time/rate"

	"github.com/oakwood-commons/roadtrip/pkg/fallback"
	"github.com/oakwood-commons/roadtrip/pkg/tokenstore"
)

// DefaultBaseURL is the backend's API root in local development.
const DefaultBaseURL = "http://localhost:8000/api"

const defaultTimeout = 15 * time.Second

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	store   tokenstore.Store
	http    *http.Client
	timeout time.Duration
	log     logr.Logger
	synth   *fallback.Synthesizer
	notify  Notifier
	limiter *rate.Limiter

	// refreshMu serialises token refreshes.
	refreshMu sync.Mutex
	now       func() time.Time
}

// New returns a client rooted at baseURL that reads credentials from store.
func New(baseURL string, store tokenstore.Store, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		timeout: defaultTimeout,
		log:     logr.Discard(),
		notify:  discardNotifier{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = tokenstore.NewMemoryStore()
	}
	if c.synth == nil {
		c.synth = fallback.New()
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// request describes one call to the backend.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	// public endpoints are called without credentials and never trigger a
	// token refresh.
	public bool
}

// do executes r and decodes a 2xx JSON body into out (nil to discard).
func (c *Client) do(ctx context.Context, r request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return newNetworkError(fmt.Errorf("rate limit wait: %w", err))
		}
	}
	if !r.public {
		c.refreshIfExpired(ctx)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		buf, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", r.method, r.path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return newNetworkError(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if !r.public {
		if token, _ := c.store.Get(tokenstore.AccessTokenKey); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.V(1).Info("request failed", "method", r.method, "path", r.path, "error", err.Error())
		return newNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	c.log.V(1).Info("request", "method", r.method, "path", r.path, "status", resp.StatusCode, "elapsed", c.now().Sub(start).String())
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp.StatusCode, raw)
	}
	if err != nil {
		return newNetworkError(fmt.Errorf("read response: %w", err))
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{
			Kind:    KindServer,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("malformed response from %s %s", r.method, r.path),
			Err:     err,
		}
	}
	return nil
}
