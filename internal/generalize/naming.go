package generalize

import (
	"strings"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// paramName derives a placeholder name from the path segment preceding an
// identifier: "users" -> "userId", "order-items" -> "orderItemId". An empty
// or unusable hint falls back to "id".
func paramName(hint string) string {
	base := camelize(inflection.Singular(strings.ToLower(hint)))
	if base == "" {
		return "id"
	}
	return base + "Id"
}

// queryName derives a placeholder name from a query key: "user_id" stays
// "userId", "ids" becomes "id".
func queryName(key string) string {
	name := camelize(inflection.Singular(strings.ToLower(key)))
	if name == "" {
		return "value"
	}
	return name
}

func camelize(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})
	if len(parts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(parts[0]))
	for _, p := range parts[1:] {
		b.WriteString(titleCaser.String(strings.ToLower(p)))
	}
	out := b.String()
	if !isIdentifier(out) {
		return ""
	}
	return out
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return s != ""
}
