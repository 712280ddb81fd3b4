package interaction

// Interaction is one captured request/response exchange, as produced by an
// external HAR parser. The engine treats it as immutable input.
type Interaction struct {
	ID       string    `json:"id,omitempty"`
	Request  *Request  `json:"request"`
	Response *Response `json:"response"`
}

// Request mirrors the request half of a HAR entry. Headers keep the
// name -> list-of-values shape so repeated headers survive parsing.
type Request struct {
	Method      string              `json:"method"`
	URL         string              `json:"url"`
	Headers     map[string][]string `json:"headers,omitempty"`
	QueryParams map[string]string   `json:"query_params,omitempty"`
	Body        any                 `json:"body,omitempty"`
	BodyNote    BodyNote            `json:"body_note,omitempty"`
}

type Response struct {
	Status   int                 `json:"status"`
	Headers  map[string][]string `json:"headers,omitempty"`
	Body     any                 `json:"body,omitempty"`
	BodyNote BodyNote            `json:"body_note,omitempty"`
}

// BodyNote records how a body survived decoding. Empty means the body was
// either absent, or parsed cleanly.
type BodyNote string

const (
	// BodyNoteMalformed marks a body whose content type claimed JSON but
	// which failed to parse; the body is carried as its raw string.
	BodyNoteMalformed BodyNote = "malformed_json"
	// BodyNoteBinary marks a non-UTF8 payload; structural analysis is
	// skipped and the body is carried as an opaque marker.
	BodyNoteBinary BodyNote = "binary"
)
