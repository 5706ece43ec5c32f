package gqlhttp

import (
	"bytes"
	"encoding/json"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// envelope is the top-level GraphQL response object. Both fields are kept
// raw so their parses stay independent.
type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

var jsonNull = []byte("null")

func absent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, jsonNull)
}

// resolve maps one terminal HTTP response to an Outcome. It is a pure
// function; network-level failures never get here because the engine
// reports them as errors before a status exists.
//
// Precedence, which must not be reordered: a non-2xx status wins over
// everything and the body is not parsed; then the envelope must parse as
// JSON; then the errors field, when present, must parse in full (one
// malformed entry fails the whole envelope); finally the data field is
// decoded against the declared type, with non-empty server errors turning
// a decoded result into a partial success rather than a failure.
func resolve[T any](status int, body []byte, decode func(json.RawMessage) (T, error)) Outcome[T] {
	if status < 200 || status > 299 {
		return httpFailure[T](status)
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return decodeFailure[T](nil, NewError(err, ErrDecodeEnvelope))
	}
	var serverErrs gqlerror.List
	if !absent(env.Errors) {
		if err := json.Unmarshal(env.Errors, &serverErrs); err != nil {
			return decodeFailure[T](nil, NewError(err, ErrDecodeErrors))
		}
	}
	if absent(env.Data) {
		if len(serverErrs) > 0 {
			return decodeFailure[T](serverErrs, ErrMissingData)
		}
		return decodeFailure[T](nil, ErrEmptyEnvelope)
	}
	data, err := decode(env.Data)
	if err != nil {
		return decodeFailure[T](serverErrs, NewError(err, ErrDecodeData))
	}
	if len(serverErrs) > 0 {
		return partialOutcome(serverErrs, data)
	}
	return successOutcome(data)
}
