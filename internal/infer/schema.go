// Package infer synthesizes a schema (types, formats, required fields) from
// one or more observed sample values. Inconsistent samples never fail: the
// schema degrades toward a safe superset, preferring a contract that is too
// loose over one that rejects real traffic.
package infer

import "sort"

// Kind is the closed set of schema types.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindNull    Kind = "null"
)

// NoteMixedTypes flags a schema that widened over conflicting sample types,
// so the shape information lost in the widening is visible downstream.
const NoteMixedTypes = "mixed_types"

// Schema is a recursive inferred type description.
//
// Invariants: for KindObject, Required is a subset of Properties' keys; for
// KindArray, Items is nil only when every observed sample array was empty.
type Schema struct {
	Kind       Kind               `json:"type"`
	Format     string             `json:"format,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Note       string             `json:"note,omitempty"`
}

// IsRequired reports whether key is in the schema's required set.
func (s *Schema) IsRequired(key string) bool {
	for _, k := range s.Required {
		if k == key {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]*Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
