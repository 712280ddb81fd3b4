package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	redactedPlaceholder = "<REDACTED>"
	bearerPlaceholder   = "Bearer <TOKEN>"
	jwtPlaceholder      = "<JWT>"
	sessionPlaceholder  = "<SESSION_ID>"
)

var jwtShapeRe = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]{4,}\.[A-Za-z0-9_-]{4,}\.[A-Za-z0-9_-]*$`)

func compileSensitiveRules() ([]sensitiveRule, error) {
	type spec struct {
		stype       SensitiveType
		confidence  float64
		replacement string
		nameExpr    string
		valueExpr   string
	}
	specs := []spec{
		// Name-based categories fire regardless of value shape.
		{stype: SensitivePassword, confidence: 0.9, replacement: redactedPlaceholder,
			nameExpr: `(?i)^(pass(word|wd|phrase)?|pwd|secret)$`},
		{stype: SensitiveSSN, confidence: 0.9, replacement: redactedPlaceholder,
			valueExpr: `^\d{3}-\d{2}-\d{4}$`},
		{stype: SensitiveCreditCard, confidence: 0.85, replacement: redactedPlaceholder,
			valueExpr: `^(?:\d[ -]?){12,15}\d$`},
		// JWT before bearer/api key: a JWT carried in an Authorization
		// header still classifies by its own shape.
		{stype: SensitiveJWTToken, confidence: 0.9, replacement: jwtPlaceholder},
		{stype: SensitiveBearerToken, confidence: 0.9, replacement: bearerPlaceholder},
		{stype: SensitiveAPIKey, confidence: 0.85, replacement: redactedPlaceholder,
			nameExpr:  `(?i)^(x-)?api[_-]?key$`,
			valueExpr: `^(sk|pk|rk|key)[-_][A-Za-z0-9][A-Za-z0-9_-]{7,}$`},
		{stype: SensitiveAuthHeader, confidence: 0.95, replacement: redactedPlaceholder},
		{stype: SensitiveSessionID, confidence: 0.7, replacement: sessionPlaceholder,
			nameExpr: `(?i)^(x-)?(session[_-]?id|sessionid|sid|jsessionid|phpsessid)$`},
	}

	rules := make([]sensitiveRule, 0, len(specs))
	for _, s := range specs {
		rule := sensitiveRule{stype: s.stype, confidence: s.confidence, replacement: s.replacement}
		if s.nameExpr != "" {
			re, err := regexp.Compile(s.nameExpr)
			if err != nil {
				return nil, fmt.Errorf("pattern: compiling %s name rule: %w", s.stype, err)
			}
			rule.nameRe = re
		}
		if s.valueExpr != "" {
			re, err := regexp.Compile(s.valueExpr)
			if err != nil {
				return nil, fmt.Errorf("pattern: compiling %s value rule: %w", s.stype, err)
			}
			rule.valueRe = re
		}
		switch s.stype {
		case SensitiveJWTToken:
			rule.match = matchJWT
		case SensitiveBearerToken:
			rule.match = matchBearer
		case SensitiveAuthHeader:
			rule.match = matchAuthHeader
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// DetectSensitiveData classifies a (field-name, value) pair against the
// sensitive catalogue. Rules are tried most-specific first and the first hit
// wins, so a value at most yields one match. Placeholders produced by a
// previous generalization pass deliberately fail every shape rule, which
// keeps repeated generalization idempotent.
func (c *Catalogue) DetectSensitiveData(name, value string, loc Location) []SensitiveDataMatch {
	if value == "" && name == "" {
		return nil
	}
	if isPlaceholder(value) {
		return nil
	}
	for _, rule := range c.sensitive {
		if !rule.matches(name, value, loc) {
			continue
		}
		return []SensitiveDataMatch{{
			Type:                 rule.stype,
			Location:             loc,
			FieldName:            name,
			Value:                value,
			Confidence:           rule.confidence,
			SuggestedReplacement: rule.replacement,
		}}
	}
	return nil
}

func (r sensitiveRule) matches(name, value string, loc Location) bool {
	if r.match != nil {
		return r.match(name, value, loc)
	}
	if r.nameRe != nil && r.nameRe.MatchString(name) {
		return true
	}
	return r.valueRe != nil && value != "" && r.valueRe.MatchString(value)
}

// isPlaceholder reports whether a value is the output of a previous
// generalization pass. Placeholders must never re-trigger detection.
func isPlaceholder(v string) bool {
	if v == bearerPlaceholder {
		return true
	}
	return strings.HasPrefix(v, "<") && strings.HasSuffix(v, ">")
}

func matchJWT(name, value string, _ Location) bool {
	return jwtShapeRe.MatchString(strings.TrimPrefix(value, "Bearer "))
}

// matchBearer claims any "Bearer <credential>" value, including api-key
// style tokens behind the Bearer prefix. The placeholder replacement keeps
// the prefix so downstream consumers still see the auth scheme.
func matchBearer(name, value string, _ Location) bool {
	rest, ok := strings.CutPrefix(value, "Bearer ")
	if !ok {
		return false
	}
	rest = strings.TrimSpace(rest)
	if rest == "" || strings.ContainsAny(rest, "<>{}") {
		return false
	}
	return true
}

func matchAuthHeader(name, value string, loc Location) bool {
	if loc != LocationHeader {
		return false
	}
	lower := strings.ToLower(name)
	if lower != "authorization" && lower != "proxy-authorization" {
		return false
	}
	return value != "" && !strings.ContainsAny(value, "<>")
}
