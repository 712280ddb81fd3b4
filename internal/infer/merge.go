package infer

// Merge folds schema b (from a newer sample) into a. The result is never
// stricter than either input: conflicting scalar kinds widen, object
// property sets union while required sets intersect, and array item schemas
// merge element-wise. Merge never fails; unreconcilable shapes fall back to
// an unconstrained string with a mixed-types note.
func Merge(a, b *Schema) *Schema {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	if a.Kind != b.Kind {
		return widen(a, b)
	}

	switch a.Kind {
	case KindObject:
		return mergeObjects(a, b)
	case KindArray:
		return mergeArrays(a, b)
	default:
		out := &Schema{Kind: a.Kind, Note: mergeNotes(a, b)}
		if a.Format == b.Format {
			out.Format = a.Format
		}
		return out
	}
}

// widen resolves a kind conflict. Null widens to the other side's kind
// (presence of a null sample is captured by the required-set intersection,
// not by the type). Integer and number widen to number. Everything else
// collapses to the least-restrictive common denominator, a plain string,
// with the conflict flagged rather than silently dropping a branch.
func widen(a, b *Schema) *Schema {
	if a.Kind == KindNull {
		return withNote(b, mergeNotes(a, b))
	}
	if b.Kind == KindNull {
		return withNote(a, mergeNotes(a, b))
	}
	if isNumeric(a.Kind) && isNumeric(b.Kind) {
		return &Schema{Kind: KindNumber, Note: mergeNotes(a, b)}
	}
	return &Schema{Kind: KindString, Note: NoteMixedTypes}
}

func mergeObjects(a, b *Schema) *Schema {
	out := &Schema{
		Kind:       KindObject,
		Properties: make(map[string]*Schema, len(a.Properties)),
		Note:       mergeNotes(a, b),
	}
	for key, sub := range a.Properties {
		out.Properties[key] = sub
	}
	for key, sub := range b.Properties {
		if existing, ok := out.Properties[key]; ok {
			out.Properties[key] = Merge(existing, sub)
			continue
		}
		// A key first seen in a later sample is known, not required.
		out.Properties[key] = sub
	}
	out.Required = requiredIntersection(a.Required, b.Required)
	return out
}

func mergeArrays(a, b *Schema) *Schema {
	return &Schema{
		Kind:  KindArray,
		Items: Merge(a.Items, b.Items),
		Note:  mergeNotes(a, b),
	}
}

func isNumeric(k Kind) bool {
	return k == KindInteger || k == KindNumber
}

func withNote(s *Schema, note string) *Schema {
	if note == "" || s.Note == note {
		return s
	}
	out := *s
	out.Note = note
	return &out
}

func mergeNotes(a, b *Schema) string {
	if a.Note != "" {
		return a.Note
	}
	return b.Note
}
