package pattern

// Type identifies a syntactic data shape detected inside a string.
type Type string

const (
	TypeUUID       Type = "uuid"
	TypeJWT        Type = "jwt"
	TypeCreditCard Type = "credit_card"
	TypeEmail      Type = "email"
	TypeDate       Type = "date"
	TypeIPv4       Type = "ipv4"
	TypePhone      Type = "phone"
	TypeURL        Type = "url"
	TypeNumericID  Type = "numeric_id"
	// TypeOpaque marks a payload that could not be inspected at all
	// (non-UTF8 bodies). It is never produced by regex scanning.
	TypeOpaque Type = "opaque"
)

// DataPattern is one recognized span. Confidence is the fixed weight assigned
// to the pattern type, not a per-match computation.
type DataPattern struct {
	Type             Type    `json:"pattern_type"`
	Confidence       float64 `json:"confidence"`
	OriginalValue    string  `json:"original_value"`
	GeneralizedValue string  `json:"generalized_value"`
	Description      string  `json:"description"`
}

// SensitiveType identifies a sensitive-data category.
type SensitiveType string

const (
	SensitivePassword    SensitiveType = "password"
	SensitiveCreditCard  SensitiveType = "credit_card"
	SensitiveSSN         SensitiveType = "ssn"
	SensitiveAPIKey      SensitiveType = "api_key"
	SensitiveBearerToken SensitiveType = "bearer_token"
	SensitiveJWTToken    SensitiveType = "jwt_token"
	SensitiveAuthHeader  SensitiveType = "authorization_header"
	SensitiveSessionID   SensitiveType = "session_id"
)

// Location says where in an interaction a value was found.
type Location string

const (
	LocationHeader Location = "header"
	LocationBody   Location = "body"
	LocationURL    Location = "url"
)

// Severity is the coarse risk tier of a sensitive category, independent of
// detection confidence.
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	case SeverityLow:
		return "low"
	}
	return "unknown"
}

// SensitiveDataMatch is one sensitive-value detection. Value is excluded from
// JSON serialization so matches can be logged or shipped without leaking the
// payload; callers that print matches are responsible for the same care.
type SensitiveDataMatch struct {
	Type                 SensitiveType `json:"data_type"`
	Location             Location      `json:"location"`
	FieldName            string        `json:"field_name"`
	Value                string        `json:"-"`
	Confidence           float64       `json:"confidence"`
	SuggestedReplacement string        `json:"suggested_replacement"`
}

// Severity returns the fixed tier for the match's category.
func (m SensitiveDataMatch) Severity() Severity {
	return severityOf(m.Type)
}
