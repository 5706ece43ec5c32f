package gqlhttp

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Status discriminates the five terminal states of an exchange.
type Status int

const (
	// StatusSuccess: the envelope decoded and the server reported no errors.
	StatusSuccess Status = iota
	// StatusPartial: the data field decoded but the server also reported
	// errors. The data is usable; callers choose whether to warn.
	StatusPartial
	// StatusDecodeFailure: the response was not a usable GraphQL envelope,
	// or the data field failed to decode against the declared type. Any
	// server errors that could still be extracted are carried along.
	StatusDecodeFailure
	// StatusHTTPFailure: the server answered outside the 2xx range. The
	// body is never decoded in this state.
	StatusHTTPFailure
	// StatusNetworkFailure: the request never reached the server.
	StatusNetworkFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusPartial:
		return "partial"
	case StatusDecodeFailure:
		return "decode failure"
	case StatusHTTPFailure:
		return "http failure"
	case StatusNetworkFailure:
		return "network failure"
	}
	return "unknown"
}

// Outcome is the resolved result of exactly one exchange. It is
// constructed once by the resolver and never mutated; every accessor is
// safe on every status.
type Outcome[T any] struct {
	status     Status
	data       T
	errors     gqlerror.List
	httpStatus int
	err        error
}

func successOutcome[T any](data T) Outcome[T] {
	return Outcome[T]{status: StatusSuccess, data: data}
}

func partialOutcome[T any](errs gqlerror.List, data T) Outcome[T] {
	return Outcome[T]{status: StatusPartial, data: data, errors: errs}
}

func decodeFailure[T any](errs gqlerror.List, err error) Outcome[T] {
	return Outcome[T]{status: StatusDecodeFailure, errors: errs, err: err}
}

func httpFailure[T any](httpStatus int) Outcome[T] {
	return Outcome[T]{
		status:     StatusHTTPFailure,
		httpStatus: httpStatus,
		err:        fmt.Errorf("%v: %v", ErrRequest, httpStatus),
	}
}

func networkFailure[T any](err error) Outcome[T] {
	return Outcome[T]{status: StatusNetworkFailure, err: NewError(err, ErrNetwork)}
}

func (o Outcome[T]) Status() Status { return o.status }

// Succeeded reports whether the outcome carries usable data, which is the
// case for both success and partial success.
func (o Outcome[T]) Succeeded() bool {
	return o.status == StatusSuccess || o.status == StatusPartial
}

// Data returns the decoded result and whether it is usable.
func (o Outcome[T]) Data() (T, bool) {
	return o.data, o.Succeeded()
}

// ServerErrors returns the errors the server reported in the envelope.
// Non-empty for partial outcomes, possibly non-empty for decode failures,
// always empty otherwise.
func (o Outcome[T]) ServerErrors() gqlerror.List { return o.errors }

// HTTPStatus returns the response status code for http failures, zero for
// every other status.
func (o Outcome[T]) HTTPStatus() int { return o.httpStatus }

// Err summarises failure outcomes as a single error value. It is nil for
// success and partial success; partial server errors are reachable through
// ServerErrors.
func (o Outcome[T]) Err() error { return o.err }

// mapOutcome applies f to the data of success and partial outcomes and
// carries every other outcome through unchanged.
func mapOutcome[T, U any](o Outcome[T], f func(T) U) Outcome[U] {
	out := Outcome[U]{
		status:     o.status,
		errors:     o.errors,
		httpStatus: o.httpStatus,
		err:        o.err,
	}
	if o.Succeeded() {
		out.data = f(o.data)
	}
	return out
}

// withServerErrors prepends earlier server errors to an outcome, upgrading
// a plain success to a partial one so the errors stay visible.
func withServerErrors[T any](o Outcome[T], errs gqlerror.List) Outcome[T] {
	if len(errs) == 0 {
		return o
	}
	o.errors = append(append(gqlerror.List{}, errs...), o.errors...)
	if o.status == StatusSuccess {
		o.status = StatusPartial
	}
	return o
}
