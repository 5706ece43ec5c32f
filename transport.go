package gqlhttp

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"
)

type (
	// HeaderField is one request header pair. Headers are sent in the
	// order given; duplicate names are allowed and sent as-is.
	HeaderField struct {
		Name  string
		Value string
	}

	// CancelTag correlates a dispatched exchange with a later Cancel call.
	CancelTag string

	// Config describes one endpoint exchange. The zero Method means POST;
	// only the literal string "GET" selects the query-string transport,
	// any other value takes the POST path.
	Config struct {
		Method          string
		Headers         []HeaderField
		URL             string
		Timeout         time.Duration
		CancelTag       CancelTag
		WithCredentials bool
	}

	// WireRequest is the descriptor the engine executes. It is computed
	// without performing any I/O. ContentType is set only when the body
	// shape implies one; no other headers are ever injected.
	WireRequest struct {
		Method          string
		URL             string
		Header          []HeaderField
		Body            []byte
		ContentType     string
		Timeout         time.Duration
		CancelTag       CancelTag
		WithCredentials bool
	}

	// WireResponse is the terminal HTTP outcome an engine reports when
	// the exchange reached the server.
	WireResponse struct {
		Status int
		Body   []byte
	}

	// Engine performs one HTTP exchange for a wire descriptor. A non-nil
	// error means the request never reached the server (malformed URL,
	// timeout, connectivity loss); server responses of any status are
	// returned as a WireResponse. The one exception is BodyReadError,
	// which engines report when the status line arrived but the body
	// could not be read in full.
	Engine interface {
		Execute(ctx context.Context, wire *WireRequest) (*WireResponse, error)
	}

	// BodyReadError reports a response whose status line arrived but whose
	// body was lost mid-read. The server was reached, so the exchange is
	// resolved by status: non-2xx as an http failure, 2xx as a decode
	// failure, never as a network failure.
	BodyReadError struct {
		Status int
		Err    error
	}
)

func (e *BodyReadError) Error() string {
	return NewError(e.Err, ErrReadBody).Error()
}

func (e *BodyReadError) Unwrap() error { return e.Err }

// DefaultConfig is the configuration the plain Send entry points use:
// POST, no headers, no timeout, no cancellation tag, no credentials.
func DefaultConfig(url string) Config {
	return Config{Method: http.MethodPost, URL: url}
}

// buildWire computes the wire descriptor for one exchange. For GET the
// body stays empty and the whole request is folded into the URL; for POST
// the URL is passed through unchanged and the body is either the JSON
// envelope or a multipart form when parts are given.
func buildWire(cfg Config, document string, vars, extra map[string]any, partName string, parts []Part) (*WireRequest, error) {
	wire := &WireRequest{
		Method:          http.MethodPost,
		URL:             cfg.URL,
		Header:          cfg.Headers,
		Timeout:         cfg.Timeout,
		CancelTag:       cfg.CancelTag,
		WithCredentials: cfg.WithCredentials,
	}
	multipart := partName != "" || len(parts) > 0
	switch {
	case cfg.Method == http.MethodGet:
		if multipart {
			return nil, ErrPartsWithGet
		}
		// Extra envelope fields have no query-string form.
		encoded, err := encodeURL(cfg.URL, document, vars)
		if err != nil {
			return nil, err
		}
		wire.Method = http.MethodGet
		wire.URL = encoded
	case multipart:
		envelope, err := encodeBody(document, vars, extra)
		if err != nil {
			return nil, err
		}
		var body bytes.Buffer
		contentType, err := encodeMultipart(&body, partName, envelope, parts)
		if err != nil {
			return nil, err
		}
		wire.Body = body.Bytes()
		wire.ContentType = contentType
	default:
		envelope, err := encodeBody(document, vars, extra)
		if err != nil {
			return nil, err
		}
		wire.Body = envelope
		wire.ContentType = "application/json; charset=utf-8"
	}
	return wire, nil
}

// httpEngine is the default Engine over net/http. Credentialed exchanges
// run on a cookie-jar-backed copy of the base client so cookies set by the
// server are carried across calls.
type httpEngine struct {
	client       *http.Client
	credentialed *http.Client
}

func newHTTPEngine(base *http.Client) *httpEngine {
	if base == nil {
		base = http.DefaultClient
	}
	credentialed := *base
	if jar, err := cookiejar.New(nil); err == nil {
		credentialed.Jar = jar
	}
	return &httpEngine{client: base, credentialed: &credentialed}
}

func (e *httpEngine) Execute(ctx context.Context, wire *WireRequest) (*WireResponse, error) {
	if wire.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wire.Timeout)
		defer cancel()
	}
	var body io.Reader
	if len(wire.Body) > 0 {
		body = bytes.NewReader(wire.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, wire.Method, wire.URL, body)
	if err != nil {
		return nil, err
	}
	if wire.ContentType != "" {
		httpReq.Header.Set("Content-Type", wire.ContentType)
	}
	for _, h := range wire.Header {
		httpReq.Header.Add(h.Name, h.Value)
	}
	client := e.client
	if wire.WithCredentials {
		client = e.credentialed
	}
	httpRes, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpRes.Body.Close()

	raw, err := io.ReadAll(httpRes.Body)
	if err != nil {
		return nil, &BodyReadError{Status: httpRes.StatusCode, Err: err}
	}
	return &WireResponse{Status: httpRes.StatusCode, Body: raw}, nil
}
