package gqlhttp

import (
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

type (
	ClientOption func(*Client)

	// Client bundles the engine that executes wire requests with the
	// bookkeeping for cancellation tags. It holds no per-request state.
	Client struct {
		engine   Engine
		logger   logrus.FieldLogger
		inflight *tracker
	}
)

// DefaultClient backs the package-level send functions.
var DefaultClient = NewClient()

// NewClient makes a new Client capable of dispatching GraphQL exchanges.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{inflight: newTracker()}
	for _, optionFunc := range opts {
		optionFunc(c)
	}
	if c.engine == nil {
		c.engine = newHTTPEngine(nil)
	}
	if c.logger == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		c.logger = quiet
	}
	return c
}

// WithHTTPClient specifies the underlying http.Client the default engine
// executes with.
//
//	NewClient(WithHTTPClient(specificHTTPClient))
func WithHTTPClient(httpclient *http.Client) ClientOption {
	return func(client *Client) {
		client.engine = newHTTPEngine(httpclient)
	}
}

// WithEngine replaces the HTTP engine entirely.
func WithEngine(engine Engine) ClientOption {
	return func(client *Client) {
		client.engine = engine
	}
}

// WithLogger attaches a logger; each exchange is logged at debug level.
func WithLogger(logger logrus.FieldLogger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// Cancel cancels every in-flight exchange dispatched with the given tag.
// Their handlers are never invoked. Cancelling an unknown tag is a no-op.
// The underlying network calls are aborted on a best-effort basis.
func (c *Client) Cancel(tag CancelTag) {
	c.inflight.cancel(tag)
}

// Cancel cancels tagged exchanges dispatched through the package-level
// send functions.
func Cancel(tag CancelTag) {
	DefaultClient.Cancel(tag)
}
