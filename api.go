package harsight

import (
	"net/http"

	"github.com/harsight/harsight-go/internal/analyze"
	"github.com/harsight/harsight-go/internal/generalize"
	"github.com/harsight/harsight-go/internal/infer"
	"github.com/harsight/harsight-go/internal/interaction"
	"github.com/harsight/harsight-go/internal/pattern"
)

// The analysis machinery lives under internal/; everything a consumer
// constructs or reads is re-exported here, so external HAR parsers build
// inputs and external generators read reports through this package alone.

// Input contract.
type (
	// Interaction is one captured request/response exchange. See Analyze.
	Interaction = interaction.Interaction
	Request     = interaction.Request
	Response    = interaction.Response
	BodyNote    = interaction.BodyNote
)

const (
	BodyNoteMalformed = interaction.BodyNoteMalformed
	BodyNoteBinary    = interaction.BodyNoteBinary

	// OpaqueBody stands in for payloads that could not be decoded as text.
	OpaqueBody = interaction.OpaqueBody
)

// Body decoding errors, matchable with errors.Is on DecodeBody's return.
var (
	ErrMalformedBody       = interaction.ErrMalformedBody
	ErrUnsupportedEncoding = interaction.ErrUnsupportedEncoding
)

// DecodeBody turns raw payload bytes into the value Analyze inspects,
// degrading undecodable bodies to a scalar plus a note instead of failing.
func DecodeBody(raw []byte, contentType string) (any, BodyNote, error) {
	return interaction.DecodeBody(raw, contentType)
}

// HeadersFromHTTP normalizes an http.Header into the Interaction header shape.
func HeadersFromHTTP(h http.Header) map[string][]string {
	return interaction.HeadersFromHTTP(h)
}

// ContentType returns the first Content-Type value in a header set.
func ContentType(headers map[string][]string) string {
	return interaction.ContentType(headers)
}

// Output contract.
type (
	Report               = analyze.Report
	SideAnalysis         = analyze.SideAnalysis
	Suggestion           = analyze.Suggestion
	Concern              = analyze.Concern
	GeneralizationResult = generalize.Result

	Schema = infer.Schema
	Kind   = infer.Kind

	DataPattern        = pattern.DataPattern
	SensitiveDataMatch = pattern.SensitiveDataMatch
	PatternType        = pattern.Type
	SensitiveType      = pattern.SensitiveType
	Severity           = pattern.Severity
	Location           = pattern.Location
)

const (
	SuggestionURLParameterization = analyze.SuggestionURLParameterization
	SuggestionBodyGeneralization  = analyze.SuggestionBodyGeneralization
)

const (
	TypeUUID       = pattern.TypeUUID
	TypeJWT        = pattern.TypeJWT
	TypeCreditCard = pattern.TypeCreditCard
	TypeEmail      = pattern.TypeEmail
	TypeDate       = pattern.TypeDate
	TypeIPv4       = pattern.TypeIPv4
	TypePhone      = pattern.TypePhone
	TypeURL        = pattern.TypeURL
	TypeNumericID  = pattern.TypeNumericID
	TypeOpaque     = pattern.TypeOpaque
)

const (
	SensitivePassword    = pattern.SensitivePassword
	SensitiveCreditCard  = pattern.SensitiveCreditCard
	SensitiveSSN         = pattern.SensitiveSSN
	SensitiveAPIKey      = pattern.SensitiveAPIKey
	SensitiveBearerToken = pattern.SensitiveBearerToken
	SensitiveJWTToken    = pattern.SensitiveJWTToken
	SensitiveAuthHeader  = pattern.SensitiveAuthHeader
	SensitiveSessionID   = pattern.SensitiveSessionID
)

const (
	LocationHeader = pattern.LocationHeader
	LocationBody   = pattern.LocationBody
	LocationURL    = pattern.LocationURL
)

const (
	SeverityLow    = pattern.SeverityLow
	SeverityMedium = pattern.SeverityMedium
	SeverityHigh   = pattern.SeverityHigh
)

const (
	KindString  = infer.KindString
	KindInteger = infer.KindInteger
	KindNumber  = infer.KindNumber
	KindBoolean = infer.KindBoolean
	KindObject  = infer.KindObject
	KindArray   = infer.KindArray
	KindNull    = infer.KindNull
)

// NoteMixedTypes flags a schema that widened over conflicting sample types.
const NoteMixedTypes = infer.NoteMixedTypes
