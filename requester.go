package gqlhttp

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Handler receives the resolved outcome of one dispatched exchange.
type Handler[T any] func(Outcome[T])

// Requester binds a result type to a client. All send and task entry
// points run the same encode/select/execute/resolve pipeline; they differ
// only in when it fires and how the caller is notified.
type Requester[T any] struct {
	client *Client
}

func NewRequester[T any](client *Client) *Requester[T] {
	if client == nil {
		client = DefaultClient
	}
	return &Requester[T]{client: client}
}

// SendQuery dispatches a query with the default configuration and delivers
// the outcome to handler from a separate goroutine.
func (r *Requester[T]) SendQuery(url string, handler Handler[T], op Operation[T]) {
	r.CustomSendQuery(DefaultConfig(url), handler, op)
}

// SendMutation dispatches a mutation with the default configuration.
func (r *Requester[T]) SendMutation(url string, handler Handler[T], op Operation[T]) {
	r.CustomSendMutation(DefaultConfig(url), handler, op)
}

// CustomSendQuery dispatches a query with full control over the endpoint
// configuration.
func (r *Requester[T]) CustomSendQuery(cfg Config, handler Handler[T], op Operation[T]) {
	r.dispatch(cfg, handler, r.pipeline(cfg, op, "", nil))
}

// CustomSendMutation dispatches a mutation with full control over the
// endpoint configuration.
func (r *Requester[T]) CustomSendMutation(cfg Config, handler Handler[T], op Operation[T]) {
	r.dispatch(cfg, handler, r.pipeline(cfg, op, "", nil))
}

// CustomSendMutationWithBodyParts dispatches a mutation as a multipart
// form: partName names the form field holding the JSON envelope, parts
// follow in the order given. Part readers are consumed by the dispatch.
func (r *Requester[T]) CustomSendMutationWithBodyParts(partName string, parts []Part, cfg Config, handler Handler[T], op Operation[T]) {
	r.dispatch(cfg, handler, r.pipeline(cfg, op, partName, parts))
}

// QueryTask returns the same exchange as SendQuery as a deferred Task.
func (r *Requester[T]) QueryTask(url string, op Operation[T]) Task[T] {
	return r.CustomQueryTask(DefaultConfig(url), op)
}

// MutationTask returns the same exchange as SendMutation as a deferred
// Task.
func (r *Requester[T]) MutationTask(url string, op Operation[T]) Task[T] {
	return r.CustomMutationTask(DefaultConfig(url), op)
}

func (r *Requester[T]) CustomQueryTask(cfg Config, op Operation[T]) Task[T] {
	return Task[T]{run: r.pipeline(cfg, op, "", nil)}
}

func (r *Requester[T]) CustomMutationTask(cfg Config, op Operation[T]) Task[T] {
	return Task[T]{run: r.pipeline(cfg, op, "", nil)}
}

// CustomMutationTaskWithBodyParts returns the multipart exchange as a
// deferred Task. Part readers are consumed on the first run.
func (r *Requester[T]) CustomMutationTaskWithBodyParts(partName string, parts []Part, cfg Config, op Operation[T]) Task[T] {
	return Task[T]{run: r.pipeline(cfg, op, partName, parts)}
}

// pipeline builds the one pure computation both dispatch shapes share:
// encode the payload, select the transport, execute through the engine,
// resolve the raw response.
func (r *Requester[T]) pipeline(cfg Config, op Operation[T], partName string, parts []Part) func(context.Context) Outcome[T] {
	client := r.client
	return func(ctx context.Context) Outcome[T] {
		var extra map[string]any
		if extender, ok := op.(envelopeExtender); ok {
			extra = extender.EnvelopeFields()
		}
		wire, err := buildWire(cfg, op.Document(), op.Variables(), extra, partName, parts)
		if err != nil {
			return networkFailure[T](err)
		}
		res, err := client.engine.Execute(ctx, wire)
		if err != nil {
			client.logger.WithError(err).WithFields(logrus.Fields{
				"kind": op.Kind().String(),
				"url":  cfg.URL,
			}).Debug("graphql exchange failed")
			var readErr *BodyReadError
			if errors.As(err, &readErr) {
				if readErr.Status < 200 || readErr.Status > 299 {
					return httpFailure[T](readErr.Status)
				}
				return decodeFailure[T](nil, NewError(readErr.Err, ErrReadBody))
			}
			return networkFailure[T](err)
		}
		out := resolve(res.Status, res.Body, op.DecodeData)
		client.logger.WithFields(logrus.Fields{
			"kind":    op.Kind().String(),
			"method":  wire.Method,
			"url":     cfg.URL,
			"status":  res.Status,
			"outcome": out.Status().String(),
		}).Debug("graphql exchange resolved")
		return out
	}
}

// dispatch fires the pipeline on its own goroutine and delivers exactly
// one outcome, unless the exchange's tag is cancelled first.
func (r *Requester[T]) dispatch(cfg Config, handler Handler[T], run func(context.Context) Outcome[T]) {
	client := r.client
	ctx, cancel := context.WithCancel(context.Background())
	var call *inflightCall
	if cfg.CancelTag != "" {
		call = client.inflight.register(cfg.CancelTag, cancel)
	}
	go func() {
		defer cancel()
		out := run(ctx)
		if call != nil {
			if !call.finish() {
				return
			}
			client.inflight.remove(call)
		}
		handler(out)
	}()
}

// SendQuery dispatches a query against DefaultClient with the default
// configuration. The handler runs on a separate goroutine.
func SendQuery[T any](url string, handler Handler[T], op Operation[T]) {
	NewRequester[T](DefaultClient).SendQuery(url, handler, op)
}

// SendMutation dispatches a mutation against DefaultClient with the
// default configuration.
func SendMutation[T any](url string, handler Handler[T], op Operation[T]) {
	NewRequester[T](DefaultClient).SendMutation(url, handler, op)
}

// CustomSendQuery dispatches a query against DefaultClient with full
// control over the endpoint configuration.
func CustomSendQuery[T any](cfg Config, handler Handler[T], op Operation[T]) {
	NewRequester[T](DefaultClient).CustomSendQuery(cfg, handler, op)
}

// CustomSendMutation dispatches a mutation against DefaultClient with full
// control over the endpoint configuration.
func CustomSendMutation[T any](cfg Config, handler Handler[T], op Operation[T]) {
	NewRequester[T](DefaultClient).CustomSendMutation(cfg, handler, op)
}

// CustomSendMutationWithBodyParts dispatches a multipart mutation against
// DefaultClient.
func CustomSendMutationWithBodyParts[T any](partName string, parts []Part, cfg Config, handler Handler[T], op Operation[T]) {
	NewRequester[T](DefaultClient).CustomSendMutationWithBodyParts(partName, parts, cfg, handler, op)
}

// QueryTask returns a deferred query exchange against DefaultClient.
func QueryTask[T any](url string, op Operation[T]) Task[T] {
	return NewRequester[T](DefaultClient).QueryTask(url, op)
}

// MutationTask returns a deferred mutation exchange against DefaultClient.
func MutationTask[T any](url string, op Operation[T]) Task[T] {
	return NewRequester[T](DefaultClient).MutationTask(url, op)
}

// CustomQueryTask returns a deferred query exchange with full control over
// the endpoint configuration.
func CustomQueryTask[T any](cfg Config, op Operation[T]) Task[T] {
	return NewRequester[T](DefaultClient).CustomQueryTask(cfg, op)
}

// CustomMutationTask returns a deferred mutation exchange with full
// control over the endpoint configuration.
func CustomMutationTask[T any](cfg Config, op Operation[T]) Task[T] {
	return NewRequester[T](DefaultClient).CustomMutationTask(cfg, op)
}

// CustomMutationTaskWithBodyParts returns a deferred multipart mutation
// exchange.
func CustomMutationTaskWithBodyParts[T any](partName string, parts []Part, cfg Config, op Operation[T]) Task[T] {
	return NewRequester[T](DefaultClient).CustomMutationTaskWithBodyParts(partName, parts, cfg, op)
}
