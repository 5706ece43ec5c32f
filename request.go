package gqlhttp

import (
	"encoding/json"
	"io"
)

type (
	// OperationKind tags an operation as a query or a mutation. The tag is
	// carried for callers; the send pipeline is identical for both kinds.
	OperationKind int

	// Operation is the contract a built request must satisfy: it renders
	// itself to a document string and a variables object, and it decodes
	// the envelope's data field into its declared result type. Query
	// builders supply implementations of this interface; Request is the
	// in-package one.
	Operation[T any] interface {
		Kind() OperationKind
		Document() string
		Variables() map[string]any
		DecodeData(data json.RawMessage) (T, error)
	}

	// Part is an additional multipart body part, typically a file upload.
	Part struct {
		Field string
		Name  string
		R     io.Reader
	}

	// Request is a ready-to-send operation with a JSON decoder for its
	// result type.
	Request[T any] struct {
		kind     OperationKind
		document string
		vars     map[string]any
		extra    map[string]any
		decode   func(json.RawMessage) (T, error)
	}
)

const (
	KindQuery OperationKind = iota
	KindMutation
)

func (k OperationKind) String() string {
	if k == KindMutation {
		return "mutation"
	}
	return "query"
}

// envelopeExtender is implemented by operations that splice extra fields
// into the request envelope, next to query and variables.
type envelopeExtender interface {
	EnvelopeFields() map[string]any
}

// NewQuery makes a new query Request with the specified document.
func NewQuery[T any](document string) *Request[T] {
	return &Request[T]{kind: KindQuery, document: document}
}

// NewMutation makes a new mutation Request with the specified document.
func NewMutation[T any](document string) *Request[T] {
	return &Request[T]{kind: KindMutation, document: document}
}

// Var sets a variable.
func (r *Request[T]) Var(key string, value any) *Request[T] {
	if r.vars == nil {
		r.vars = make(map[string]any)
	}
	r.vars[key] = value
	return r
}

// OperationName sets the operationName envelope field.
func (r *Request[T]) OperationName(name string) *Request[T] {
	return r.EnvelopeField("operationName", name)
}

// EnvelopeField splices an extra field into the request envelope. Using
// "query" or "variables" as the name is a programming error and panics
// when the request is encoded.
func (r *Request[T]) EnvelopeField(name string, value any) *Request[T] {
	if r.extra == nil {
		r.extra = make(map[string]any)
	}
	r.extra[name] = value
	return r
}

// WithDecoder replaces the default encoding/json decoder for the data
// field.
func (r *Request[T]) WithDecoder(decode func(json.RawMessage) (T, error)) *Request[T] {
	r.decode = decode
	return r
}

func (r *Request[T]) Kind() OperationKind { return r.kind }

func (r *Request[T]) Document() string { return r.document }

func (r *Request[T]) Variables() map[string]any { return r.vars }

func (r *Request[T]) EnvelopeFields() map[string]any { return r.extra }

func (r *Request[T]) DecodeData(data json.RawMessage) (T, error) {
	if r.decode != nil {
		return r.decode(data)
	}
	var out T
	err := json.Unmarshal(data, &out)
	return out, err
}
