package gqlhttp

import (
	"context"

	"github.com/go-kit/kit/endpoint"
)

// Task is a deferred exchange: a composable unit of work that performs no
// network activity until Run. Tasks computing the same exchange as the
// Send entry points resolve to the same Outcome; only the notification
// shape differs.
type Task[T any] struct {
	run func(context.Context) Outcome[T]
}

// TaskOf returns a task that resolves to a fixed outcome without any I/O.
func TaskOf[T any](out Outcome[T]) Task[T] {
	return Task[T]{run: func(context.Context) Outcome[T] { return out }}
}

// Run performs the exchange and returns its outcome.
func (t Task[T]) Run(ctx context.Context) Outcome[T] {
	return t.run(ctx)
}

// Endpoint adapts the task to a go-kit endpoint so it can be wrapped with
// endpoint middleware. The request argument is ignored; failure outcomes
// surface as the endpoint error, success and partial outcomes as the
// response value.
func (t Task[T]) Endpoint() endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		out := t.Run(ctx)
		if !out.Succeeded() {
			return nil, out.Err()
		}
		return out, nil
	}
}

// MapTask transforms the data of a successful or partial outcome; failure
// outcomes pass through untouched.
func MapTask[T, U any](t Task[T], f func(T) U) Task[U] {
	return Task[U]{run: func(ctx context.Context) Outcome[U] {
		return mapOutcome(t.run(ctx), f)
	}}
}

// AndThenTask chains a second exchange on the data of the first. Failures
// short-circuit. Server errors from a partial first outcome are carried
// into the second outcome so no diagnostics are lost.
func AndThenTask[T, U any](t Task[T], f func(T) Task[U]) Task[U] {
	return Task[U]{run: func(ctx context.Context) Outcome[U] {
		first := t.run(ctx)
		data, ok := first.Data()
		if !ok {
			return mapOutcome(first, func(T) U {
				var zero U
				return zero
			})
		}
		second := f(data).Run(ctx)
		return withServerErrors(second, first.ServerErrors())
	}}
}
