package api

import (
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/time/rate"

	"github.com/oakwood-commons/roadtrip/pkg/fallback"
)

// Notifier surfaces user-facing outcomes of account operations.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

type discardNotifier struct{}

func (discardNotifier) Success(string) {}
func (discardNotifier) Info(string)    {}
func (discardNotifier) Error(string)   {}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout on the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger used for request tracing and fallback notices.
func WithLogger(l logr.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithSynthesizer replaces the fallback data source.
func WithSynthesizer(s *fallback.Synthesizer) Option {
	return func(c *Client) { c.synth = s }
}

// WithNotifier routes login and logout notifications.
func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notify = n }
}

// WithRateLimit throttles outgoing requests. A non-positive limit disables
// throttling.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		if limit <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(limit, burst)
	}
}
