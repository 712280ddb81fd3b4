package generalize

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/harsight/harsight-go/internal/pattern"
)

// URL rewrites identifier-bearing path segments and query values into named
// placeholders: /users/123456 becomes /users/{userId}. Unparseable URLs pass
// through untouched.
func URL(cat *pattern.Catalogue, rawURL string) *Result {
	res := &Result{Original: rawURL, Generalized: rawURL}
	if rawURL == "" {
		return res
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return res
	}

	names := nameSet{}
	segments := strings.Split(u.Path, "/")
	lastLiteral := ""
	for i, seg := range segments {
		if seg == "" || isPlaceholderSegment(seg) {
			continue
		}
		ptype, conf, ok := identifierSegment(cat, seg)
		if !ok {
			lastLiteral = seg
			continue
		}
		placeholder := "{" + names.claim(paramName(lastLiteral)) + "}"
		res.Patterns = append(res.Patterns, pattern.DataPattern{
			Type:             ptype,
			Confidence:       conf,
			OriginalValue:    seg,
			GeneralizedValue: placeholder,
			Description:      "path parameter",
		})
		segments[i] = placeholder
	}
	query := u.RawQuery
	if query != "" {
		query = generalizeQuery(cat, query, res, names)
	}

	// Rebuilt by hand: url.URL.String would percent-encode the braces in
	// placeholder segments.
	var b strings.Builder
	if u.Scheme != "" {
		b.WriteString(u.Scheme)
		b.WriteString("://")
	}
	if u.User != nil {
		b.WriteString(u.User.String())
		b.WriteString("@")
	}
	b.WriteString(u.Host)
	b.WriteString(strings.Join(segments, "/"))
	if query != "" {
		b.WriteString("?")
		b.WriteString(query)
	}
	if u.Fragment != "" {
		b.WriteString("#")
		b.WriteString(u.Fragment)
	}
	res.Generalized = b.String()
	return res
}

// nameSet keeps placeholder names unique within one template; a second
// claim of "userId" yields "userId2".
type nameSet map[string]int

func (n nameSet) claim(name string) string {
	n[name]++
	if c := n[name]; c > 1 {
		return name + strconv.Itoa(c)
	}
	return name
}

// identifierSegment decides whether a path segment is an instance
// identifier. Purely numeric segments count regardless of length: inside a
// path even short numbers are ids, unlike in free text where the numeric-id
// pattern wants five digits or more.
func identifierSegment(cat *pattern.Catalogue, seg string) (pattern.Type, float64, bool) {
	if isAllDigits(seg) {
		return pattern.TypeNumericID, cat.Confidence(pattern.TypeNumericID), true
	}
	for _, p := range cat.DetectPatterns(seg) {
		if p.OriginalValue != seg {
			continue
		}
		if (p.Type == pattern.TypeUUID || p.Type == pattern.TypeNumericID) && p.Confidence >= 0.6 {
			return p.Type, p.Confidence, true
		}
	}
	return "", 0, false
}

// generalizeQuery rewrites identifier-shaped query values, preserving the
// original parameter order.
func generalizeQuery(cat *pattern.Catalogue, rawQuery string, res *Result, names nameSet) string {
	pairs := strings.Split(rawQuery, "&")
	for i, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || value == "" || isPlaceholderSegment(value) {
			continue
		}
		decoded, err := url.QueryUnescape(value)
		if err != nil {
			decoded = value
		}
		ptype, conf, ok := identifierSegment(cat, decoded)
		if !ok {
			continue
		}
		placeholder := "{" + names.claim(queryName(key)) + "}"
		res.Patterns = append(res.Patterns, pattern.DataPattern{
			Type:             ptype,
			Confidence:       conf,
			OriginalValue:    decoded,
			GeneralizedValue: placeholder,
			Description:      "query parameter",
		})
		pairs[i] = key + "=" + placeholder
	}
	return strings.Join(pairs, "&")
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isPlaceholderSegment(s string) bool {
	return strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
}
