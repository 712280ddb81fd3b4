package generalize

import (
	"sort"

	"github.com/spf13/cast"

	"github.com/harsight/harsight-go/internal/pattern"
)

// DefaultMaxDepth bounds the recursive walks. Values nested deeper than this
// are carried through untouched.
const DefaultMaxDepth = 64

// Body recursively generalizes a decoded JSON value. Sensitive scalars are
// replaced by their suggested replacement; scalars matching only benign
// patterns (emails, dates, ...) stay literal but are recorded, since the
// concrete value still informs type inference downstream. Objects keep every
// key and arrays keep length and order. Non-JSON bodies arrive here as a
// single string and are scanned as one opaque scalar.
func Body(cat *pattern.Catalogue, value any, maxDepth int) *Result {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	w := &bodyWalker{cat: cat, res: &Result{Original: value}, maxDepth: maxDepth}
	w.res.Generalized = w.walk(value, "", 0)
	return w.res
}

type bodyWalker struct {
	cat      *pattern.Catalogue
	res      *Result
	maxDepth int
}

func (w *bodyWalker) walk(v any, field string, depth int) any {
	if depth >= w.maxDepth {
		return v
	}

	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		// Sorted so the recorded patterns come out in a stable order.
		sort.Strings(keys)
		for _, k := range keys {
			out[k] = w.walk(t[k], k, depth+1)
		}
		return out

	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = w.walk(el, field, depth+1)
		}
		return out

	case nil:
		return nil

	case string:
		return w.scalar(t, field, t)

	default:
		return w.scalar(cast.ToString(t), field, t)
	}
}

// scalar scans one leaf value. It returns the replacement string for
// sensitive values and the untouched original otherwise.
func (w *bodyWalker) scalar(text, field string, original any) any {
	if text == "" {
		return original
	}

	matches := w.cat.DetectSensitiveData(field, text, pattern.LocationBody)
	if len(matches) > 0 {
		w.res.SensitiveMatches = append(w.res.SensitiveMatches, matches...)
		return matches[0].SuggestedReplacement
	}

	w.res.Patterns = append(w.res.Patterns, w.cat.DetectPatterns(text)...)
	return original
}
