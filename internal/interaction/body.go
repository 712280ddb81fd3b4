package interaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// ErrMalformedBody is wrapped by DecodeBody when a payload declares a JSON
// content type but does not parse as JSON.
var ErrMalformedBody = errors.New("body declared JSON but failed to parse")

// ErrUnsupportedEncoding is wrapped by DecodeBody for non-UTF8 payloads.
var ErrUnsupportedEncoding = errors.New("body is not valid UTF-8")

// OpaqueBody stands in for payloads that cannot be decoded as text at all.
const OpaqueBody = "<binary>"

// DecodeBody turns raw payload bytes into the value the engine analyzes.
// It never fails outright: a body that cannot be decoded degrades to a
// scalar (raw string or OpaqueBody) plus a note, and the returned error only
// reports what was lost.
func DecodeBody(raw []byte, contentType string) (body any, note BodyNote, err error) {
	if len(raw) == 0 {
		return nil, "", nil
	}

	if !utf8.Valid(raw) {
		return OpaqueBody, BodyNoteBinary, fmt.Errorf("interaction: %w", ErrUnsupportedEncoding)
	}

	var v any
	if jsonErr := json.Unmarshal(raw, &v); jsonErr == nil {
		return v, "", nil
	}

	if isJSONContentType(contentType) {
		return string(raw), BodyNoteMalformed, fmt.Errorf("interaction: %w: %s", ErrMalformedBody, contentType)
	}
	return string(raw), "", nil
}

func isJSONContentType(contentType string) bool {
	mt := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// HeadersFromHTTP normalizes an http.Header into the Interaction header shape.
func HeadersFromHTTP(h http.Header) map[string][]string {
	if len(h) == 0 {
		return nil
	}
	ret := make(map[string][]string, len(h))
	for k, vs := range h {
		ret[k] = append([]string(nil), vs...)
	}
	return ret
}

// ContentType returns the first Content-Type header value, matched case
// insensitively.
func ContentType(headers map[string][]string) string {
	for k, vs := range headers {
		if strings.EqualFold(k, "Content-Type") && len(vs) > 0 {
			return vs[0]
		}
	}
	return ""
}
