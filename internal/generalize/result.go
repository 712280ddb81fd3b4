// Package generalize rewrites URLs, header sets and JSON bodies into
// templated forms: instance-specific values become reusable placeholders
// while the document's structural shape is preserved.
package generalize

import "github.com/harsight/harsight-go/internal/pattern"

// Result pairs an original value with its generalized form plus everything
// recognized along the way. Generalized always has the same container shape
// as Original: objects keep their key sets, arrays keep length and order.
type Result struct {
	Original         any                          `json:"original"`
	Generalized      any                          `json:"generalized"`
	Patterns         []pattern.DataPattern        `json:"patterns"`
	SensitiveMatches []pattern.SensitiveDataMatch `json:"sensitive_matches"`
}

// Changed reports whether generalization rewrote anything.
func (r *Result) Changed() bool {
	return len(r.SensitiveMatches) > 0 || len(r.Patterns) > 0
}
