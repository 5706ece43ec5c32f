package gqlhttp

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// encodeBody builds the request envelope: {query, variables?, ...extra}.
// Variables are omitted when empty. Output is deterministic for identical
// inputs (encoding/json sorts map keys).
func encodeBody(document string, vars map[string]any, extra map[string]any) ([]byte, error) {
	envelope := make(map[string]any, len(extra)+2)
	for name, value := range extra {
		if name == "query" || name == "variables" {
			panic(fmt.Sprintf("gqlhttp: envelope field %q collides with a reserved field", name))
		}
		envelope[name] = value
	}
	envelope["query"] = document
	if len(vars) > 0 {
		envelope["variables"] = vars
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, NewError(err, ErrEncodeEnvelope)
	}
	return body, nil
}

// escapeComponent percent-encodes s as a URL query component. Spaces
// become %20, not the form-encoding '+', so any strict percent-decoder
// recovers s exactly.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// encodeURL folds the document and variables into baseURL's query string
// for GET transport. The document is percent-encoded; variables, when
// present, are appended as minified JSON.
func encodeURL(baseURL, document string, vars map[string]any) (string, error) {
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	encoded := baseURL + sep + "query=" + escapeComponent(document)
	if len(vars) > 0 {
		minified, err := json.Marshal(vars)
		if err != nil {
			return "", NewError(err, ErrEncodeVariables)
		}
		encoded += "&variables=" + escapeComponent(string(minified))
	}
	return encoded, nil
}

// encodeMultipart writes a multipart body: one form field named partName
// holding the JSON envelope, followed by the caller's parts in order.
// Returns the body's content type, boundary included.
func encodeMultipart(w io.Writer, partName string, envelope []byte, parts []Part) (string, error) {
	writer := multipart.NewWriter(w)
	field, err := writer.CreateFormField(partName)
	if err != nil {
		return "", NewError(err, ErrCreateJSONPart)
	}
	if _, err = field.Write(envelope); err != nil {
		return "", NewError(err, ErrCreateJSONPart)
	}
	for i := range parts {
		part, err := writer.CreateFormFile(parts[i].Field, parts[i].Name)
		if err != nil {
			return "", NewError(err, ErrCreateFilePart)
		}
		if _, err = io.Copy(part, parts[i].R); err != nil {
			return "", NewError(err, ErrCopyPart)
		}
	}
	if err = writer.Close(); err != nil {
		return "", errors.Wrap(err, "close writer")
	}
	return writer.FormDataContentType(), nil
}
