package generalize

import (
	"github.com/harsight/harsight-go/internal/pattern"
)

// Headers scans every header value for sensitive data. Values whose match
// reaches medium severity are replaced by the category's suggested
// replacement; everything else passes through unchanged but is still scanned
// for benign patterns, so e.g. a UUID-bearing header is flagged without
// being rewritten.
func Headers(cat *pattern.Catalogue, headers map[string][]string) *Result {
	res := &Result{Original: headers, Generalized: headers}
	if len(headers) == 0 {
		return res
	}

	generalized := make(map[string][]string, len(headers))
	for name, values := range headers {
		out := make([]string, len(values))
		for i, value := range values {
			out[i] = value

			matches := cat.DetectSensitiveData(name, value, pattern.LocationHeader)
			if len(matches) > 0 {
				res.SensitiveMatches = append(res.SensitiveMatches, matches...)
				if matches[0].Severity() >= pattern.SeverityMedium {
					out[i] = matches[0].SuggestedReplacement
				}
				continue
			}

			res.Patterns = append(res.Patterns, cat.DetectPatterns(value)...)
		}
		generalized[name] = out
	}
	res.Generalized = generalized
	return res
}
