package infer

import (
	"math"
	"sort"

	"github.com/spf13/cast"

	"github.com/harsight/harsight-go/internal/pattern"
)

// formatConfidence is the floor a pattern match must reach before it is
// trusted as a string format hint.
const formatConfidence = 0.7

// defaultMaxDepth matches the generalizer's walk bound so both passes over
// a body see the same structure by default.
const defaultMaxDepth = 64

var formatByPattern = map[pattern.Type]string{
	pattern.TypeUUID:  "uuid",
	pattern.TypeEmail: "email",
	pattern.TypeDate:  "date-time",
	pattern.TypeURL:   "uri",
	pattern.TypeIPv4:  "ipv4",
	pattern.TypeJWT:   "jwt",
}

// Infer builds a schema from a single sample value. Values nested deeper
// than maxDepth collapse to unconstrained strings; zero or negative means
// the default bound.
func Infer(cat *pattern.Catalogue, sample any, maxDepth int) *Schema {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	return inferDepth(cat, sample, 0, maxDepth)
}

// Samples builds a schema across several samples of the same logical field,
// merging them in order. Nil is returned only for an empty sample set.
func Samples(cat *pattern.Catalogue, samples []any, maxDepth int) *Schema {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	var schema *Schema
	for _, sample := range samples {
		next := inferDepth(cat, sample, 0, maxDepth)
		if schema == nil {
			schema = next
			continue
		}
		schema = Merge(schema, next)
	}
	return schema
}

func inferDepth(cat *pattern.Catalogue, sample any, depth, maxDepth int) *Schema {
	if depth >= maxDepth {
		return &Schema{Kind: KindString}
	}

	switch v := sample.(type) {
	case nil:
		return &Schema{Kind: KindNull}

	case bool:
		return &Schema{Kind: KindBoolean}

	case string:
		return inferString(cat, v)

	case map[string]any:
		s := &Schema{Kind: KindObject, Properties: make(map[string]*Schema, len(v))}
		for key, val := range v {
			s.Properties[key] = inferDepth(cat, val, depth+1, maxDepth)
		}
		// Every key present in a single sample is provisionally
		// required; merging with more samples only shrinks this.
		s.Required = sortedKeys(s.Properties)
		return s

	case []any:
		s := &Schema{Kind: KindArray}
		for _, el := range v {
			item := inferDepth(cat, el, depth+1, maxDepth)
			if s.Items == nil {
				s.Items = item
				continue
			}
			s.Items = Merge(s.Items, item)
		}
		return s

	default:
		return inferNumber(v)
	}
}

func inferString(cat *pattern.Catalogue, v string) *Schema {
	s := &Schema{Kind: KindString}
	best := 0.0
	for _, p := range cat.DetectPatterns(v) {
		if p.Confidence < formatConfidence || p.Confidence <= best {
			continue
		}
		if format, ok := formatByPattern[p.Type]; ok {
			s.Format = format
			best = p.Confidence
		}
	}
	return s
}

// inferNumber decides integer vs number for any numeric Go kind. Decoded
// JSON numbers arrive as float64, so integers are recognized by having no
// fractional part.
func inferNumber(v any) *Schema {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		// Not a number at all; the loosest scalar wins.
		return &Schema{Kind: KindString}
	}
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return &Schema{Kind: KindInteger}
	}
	return &Schema{Kind: KindNumber}
}

// requiredIntersection returns the keys required by both schemas, sorted.
func requiredIntersection(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, k := range b {
		inB[k] = struct{}{}
	}
	var out []string
	for _, k := range a {
		if _, ok := inB[k]; ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
