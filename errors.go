package gqlhttp

import "github.com/pkg/errors"

var (
	ErrEncodeEnvelope  = errors.New("encode request envelope")
	ErrEncodeVariables = errors.New("encode variables")
	ErrPartsWithGet    = errors.New("cannot send body parts over GET transport")
	ErrCreateJSONPart  = errors.New("create operations form field")
	ErrCreateFilePart  = errors.New("create form file")
	ErrCopyPart        = errors.New("copy part")
	ErrReadBody        = errors.New("read body")
	ErrDecodeEnvelope  = errors.New("decode response envelope")
	ErrDecodeErrors    = errors.New("decode errors field")
	ErrDecodeData      = errors.New("decode data field")
	ErrEmptyEnvelope   = errors.New("response envelope carried neither data nor errors")
	ErrMissingData     = errors.New("response envelope carried no usable data")
	ErrRequest         = errors.New("graphql: server returned a non-success status code")
	ErrNetwork         = errors.New("graphql: request never reached the server")
)

func NewError(err error, wrappedErr error) error {
	return errors.Wrap(err, wrappedErr.Error())
}
