// Package pattern classifies strings against a fixed catalogue of syntactic
// shapes (uuid, email, dates, ...) and sensitive-data categories. The
// catalogue is compiled once and is read-only afterwards, so a single
// instance is safe to share across concurrent analyses.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// definition is one compiled pattern with its fixed confidence weight.
type definition struct {
	ptype       Type
	confidence  float64
	re          *regexp.Regexp
	generalized string
	description string
	// verify rejects regex candidates that fail a stricter structural
	// check (e.g. uuid spans that do not parse).
	verify func(string) bool
}

// sensitiveRule is one category in the sensitive-data catalogue. Rules are
// evaluated in slice order and the first hit wins, so more specific
// categories (bearer tokens) must come before broader ones (api keys).
type sensitiveRule struct {
	stype       SensitiveType
	confidence  float64
	replacement string
	nameRe      *regexp.Regexp
	valueRe     *regexp.Regexp
	match       func(name, value string, loc Location) bool
}

// Catalogue holds every compiled pattern definition plus the fixed
// confidence and severity tables. Build it with NewCatalogue or share the
// process-wide instance from Default.
type Catalogue struct {
	defs      []definition
	sensitive []sensitiveRule
}

var severityTable = map[SensitiveType]Severity{
	SensitivePassword:    SeverityHigh,
	SensitiveCreditCard:  SeverityHigh,
	SensitiveSSN:         SeverityHigh,
	SensitiveAPIKey:      SeverityHigh,
	SensitiveBearerToken: SeverityMedium,
	SensitiveJWTToken:    SeverityMedium,
	SensitiveAuthHeader:  SeverityMedium,
	SensitiveSessionID:   SeverityLow,
}

func severityOf(t SensitiveType) Severity {
	return severityTable[t]
}

// Recommendation returns the fixed remediation text for a category.
func Recommendation(t SensitiveType) string {
	switch t {
	case SensitivePassword:
		return "Never capture passwords in recordings; strip the field before storing interactions."
	case SensitiveCreditCard:
		return "Replace card numbers with test values; storing real PANs has compliance impact."
	case SensitiveSSN:
		return "Remove national identifiers from captures; use synthetic values in contracts."
	case SensitiveAPIKey:
		return "Rotate the exposed key and replace it with a placeholder in generated artifacts."
	case SensitiveBearerToken:
		return "Replace bearer tokens with a placeholder; tokens in specs go stale and leak scope."
	case SensitiveJWTToken:
		return "Replace JWTs with a placeholder; their claims may embed user identifiers."
	case SensitiveAuthHeader:
		return "Parameterize the Authorization header rather than embedding captured credentials."
	case SensitiveSessionID:
		return "Generalize session identifiers so generated mocks do not pin a recorded session."
	}
	return "Review this value before publishing generated artifacts."
}

var (
	buildOnce  sync.Once
	defaultCat *Catalogue
	defaultErr error
)

// Default returns the shared process-wide catalogue, compiling it on first
// use. A compile failure is returned on every call: the catalogue is assumed
// valid for the process lifetime, so callers should treat an error here as
// fatal at startup.
func Default() (*Catalogue, error) {
	buildOnce.Do(func() {
		defaultCat, defaultErr = NewCatalogue()
	})
	return defaultCat, defaultErr
}

// NewCatalogue compiles the full pattern and sensitive-data catalogue.
func NewCatalogue() (*Catalogue, error) {
	specs := []struct {
		ptype       Type
		confidence  float64
		expr        string
		generalized string
		description string
		verify      func(string) bool
	}{
		{
			ptype: TypeUUID, confidence: 0.95,
			expr:        `\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`,
			generalized: "<uuid>",
			description: "UUID v4 identifier",
			verify: func(s string) bool {
				_, err := uuid.Parse(s)
				return err == nil
			},
		},
		{
			ptype: TypeJWT, confidence: 0.9,
			expr:        `\beyJ[A-Za-z0-9_-]{4,}\.[A-Za-z0-9_-]{4,}\.[A-Za-z0-9_-]*`,
			generalized: "<jwt>",
			description: "JSON Web Token",
		},
		{
			ptype: TypeCreditCard, confidence: 0.85,
			expr:        `\b(?:\d[ -]?){12,15}\d\b`,
			generalized: "<credit-card>",
			description: "payment card number",
			verify: func(s string) bool {
				n := 0
				for _, r := range s {
					if r >= '0' && r <= '9' {
						n++
					}
				}
				return n >= 13 && n <= 16
			},
		},
		{
			ptype: TypeEmail, confidence: 0.8,
			expr:        `[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`,
			generalized: "<email>",
			description: "email address",
		},
		{
			ptype: TypeDate, confidence: 0.75,
			expr:        `\b\d{4}-\d{2}-\d{2}(?:[T ]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:?\d{2})?)?\b`,
			generalized: "<date-time>",
			description: "ISO-8601 date or timestamp",
		},
		{
			ptype: TypeIPv4, confidence: 0.75,
			expr:        `\b(?:\d{1,3}\.){3}\d{1,3}\b`,
			generalized: "<ipv4>",
			description: "IPv4 address",
			verify: func(s string) bool {
				for _, part := range strings.Split(s, ".") {
					if len(part) == 3 && part > "255" {
						return false
					}
				}
				return true
			},
		},
		{
			ptype: TypePhone, confidence: 0.7,
			expr:        `\+\d[\d ().-]{6,}\d\b`,
			generalized: "<phone>",
			description: "phone number",
		},
		{
			ptype: TypeURL, confidence: 0.7,
			expr:        `https?://[^\s"'<>]+`,
			generalized: "<url>",
			description: "absolute URL",
		},
		{
			ptype: TypeNumericID, confidence: 0.6,
			expr:        `\b\d{5,}\b`,
			generalized: "<numeric-id>",
			description: "large numeric identifier",
		},
	}

	cat := &Catalogue{}
	for _, s := range specs {
		re, err := regexp.Compile(s.expr)
		if err != nil {
			return nil, fmt.Errorf("pattern: compiling %s definition: %w", s.ptype, err)
		}
		cat.defs = append(cat.defs, definition{
			ptype:       s.ptype,
			confidence:  s.confidence,
			re:          re,
			generalized: s.generalized,
			description: s.description,
			verify:      s.verify,
		})
	}

	sensitive, err := compileSensitiveRules()
	if err != nil {
		return nil, err
	}
	cat.sensitive = sensitive
	return cat, nil
}

// Confidence returns the fixed weight for a pattern type, or 0 if the type
// is not in the catalogue.
func (c *Catalogue) Confidence(t Type) float64 {
	for _, d := range c.defs {
		if d.ptype == t {
			return d.confidence
		}
	}
	return 0
}
