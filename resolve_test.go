package gqlhttp

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/matryer/is"
	"github.com/pkg/errors"
)

type resolveData struct {
	X int `json:"x"`
}

func decodeResolveData(raw json.RawMessage) (resolveData, error) {
	var out resolveData
	err := json.Unmarshal(raw, &out)
	return out, err
}

func TestResolve(t *testing.T) {
	t.Run("data without errors is a success", func(t *testing.T) {
		is := is.New(t)
		out := resolve(http.StatusOK, []byte(`{"data":{"x":1}}`), decodeResolveData)
		is.Equal(out.Status(), StatusSuccess)
		data, ok := out.Data()
		is.True(ok)
		is.Equal(data.X, 1)
		is.Equal(len(out.ServerErrors()), 0)
		is.NoErr(out.Err())
	})

	t.Run("an empty errors array still counts as a success", func(t *testing.T) {
		is := is.New(t)
		out := resolve(http.StatusOK, []byte(`{"data":{"x":1},"errors":[]}`), decodeResolveData)
		is.Equal(out.Status(), StatusSuccess)
	})

	t.Run("data with errors is a partial success", func(t *testing.T) {
		is := is.New(t)
		out := resolve(http.StatusOK, []byte(`{"data":{"x":1},"errors":[{"message":"warn"}]}`), decodeResolveData)
		is.Equal(out.Status(), StatusPartial)
		data, ok := out.Data()
		is.True(ok)
		is.Equal(data.X, 1)
		is.Equal(len(out.ServerErrors()), 1)
		is.Equal(out.ServerErrors()[0].Message, "warn")
		is.NoErr(out.Err())
	})

	t.Run("errors without data is a decode failure carrying the errors", func(t *testing.T) {
		is := is.New(t)
		out := resolve(http.StatusOK, []byte(`{"errors":[{"message":"boom","locations":[]}]}`), decodeResolveData)
		is.Equal(out.Status(), StatusDecodeFailure)
		is.Equal(len(out.ServerErrors()), 1)
		is.Equal(out.ServerErrors()[0].Message, "boom")
		is.True(errors.Is(out.Err(), ErrMissingData))
	})

	t.Run("null data is treated like absent data", func(t *testing.T) {
		is := is.New(t)
		out := resolve(http.StatusOK, []byte(`{"data":null,"errors":[{"message":"boom"}]}`), decodeResolveData)
		is.Equal(out.Status(), StatusDecodeFailure)
		is.Equal(len(out.ServerErrors()), 1)
	})

	t.Run("error locations are parsed", func(t *testing.T) {
		is := is.New(t)
		out := resolve(http.StatusOK, []byte(`{"errors":[{"message":"boom","locations":[{"line":3,"column":7}]}]}`), decodeResolveData)
		is.Equal(out.Status(), StatusDecodeFailure)
		is.Equal(out.ServerErrors()[0].Locations[0].Line, 3)
		is.Equal(out.ServerErrors()[0].Locations[0].Column, 7)
	})

	t.Run("an envelope with neither data nor errors is a decode failure", func(t *testing.T) {
		is := is.New(t)
		out := resolve(http.StatusOK, []byte(`{}`), decodeResolveData)
		is.Equal(out.Status(), StatusDecodeFailure)
		is.Equal(len(out.ServerErrors()), 0)
		is.True(errors.Is(out.Err(), ErrEmptyEnvelope))
	})

	t.Run("a non-JSON body is a decode failure", func(t *testing.T) {
		is := is.New(t)
		out := resolve(http.StatusOK, []byte(`<html>down for maintenance</html>`), decodeResolveData)
		is.Equal(out.Status(), StatusDecodeFailure)
		is.Equal(len(out.ServerErrors()), 0)
	})

	t.Run("one malformed error entry fails the whole envelope", func(t *testing.T) {
		is := is.New(t)
		out := resolve(http.StatusOK, []byte(`{"data":{"x":1},"errors":[{"message":"ok"},{"message":5}]}`), decodeResolveData)
		is.Equal(out.Status(), StatusDecodeFailure)
		is.Equal(len(out.ServerErrors()), 0)
	})

	t.Run("undecodable data keeps the server errors", func(t *testing.T) {
		is := is.New(t)
		out := resolve(http.StatusOK, []byte(`{"data":{"x":"not a number"},"errors":[{"message":"warn"}]}`), decodeResolveData)
		is.Equal(out.Status(), StatusDecodeFailure)
		is.Equal(len(out.ServerErrors()), 1)
		is.Equal(out.ServerErrors()[0].Message, "warn")
	})

	t.Run("a non-2xx status wins and the body is never parsed", func(t *testing.T) {
		is := is.New(t)
		decoderCalled := false
		decode := func(raw json.RawMessage) (resolveData, error) {
			decoderCalled = true
			return decodeResolveData(raw)
		}
		out := resolve(http.StatusInternalServerError, []byte(`{"data":{"x":1}}`), decode)
		is.Equal(out.Status(), StatusHTTPFailure)
		is.Equal(out.HTTPStatus(), http.StatusInternalServerError)
		is.True(!decoderCalled)
		is.True(out.Err() != nil)
	})

	t.Run("every 2xx status reaches the envelope", func(t *testing.T) {
		is := is.New(t)
		for _, status := range []int{200, 201, 204, 299} {
			out := resolve(status, []byte(`{"data":{"x":1}}`), decodeResolveData)
			is.Equal(out.Status(), StatusSuccess)
		}
	})
}
