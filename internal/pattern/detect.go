package pattern

import "sort"

type candidate struct {
	start, end int
	def        *definition
}

// DetectPatterns scans text against every definition in the catalogue and
// returns one DataPattern per accepted span. When two definitions match
// overlapping spans, the one with the higher fixed confidence wins and the
// other is discarded for that span; ties go to the earlier, longer match.
// Malformed input never fails, it just matches nothing.
func (c *Catalogue) DetectPatterns(text string) []DataPattern {
	if text == "" {
		return nil
	}

	var cands []candidate
	for i := range c.defs {
		def := &c.defs[i]
		for _, loc := range def.re.FindAllStringIndex(text, -1) {
			if def.verify != nil && !def.verify(text[loc[0]:loc[1]]) {
				continue
			}
			cands = append(cands, candidate{start: loc[0], end: loc[1], def: def})
		}
	}
	if len(cands) == 0 {
		return nil
	}

	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.def.confidence != b.def.confidence {
			return a.def.confidence > b.def.confidence
		}
		if a.start != b.start {
			return a.start < b.start
		}
		return a.end > b.end
	})

	var accepted []candidate
	for _, cand := range cands {
		if overlapsAny(cand, accepted) {
			continue
		}
		accepted = append(accepted, cand)
	}

	// Report matches in input order regardless of precedence order.
	sort.Slice(accepted, func(i, j int) bool { return accepted[i].start < accepted[j].start })

	patterns := make([]DataPattern, 0, len(accepted))
	for _, cand := range accepted {
		patterns = append(patterns, DataPattern{
			Type:             cand.def.ptype,
			Confidence:       cand.def.confidence,
			OriginalValue:    text[cand.start:cand.end],
			GeneralizedValue: cand.def.generalized,
			Description:      cand.def.description,
		})
	}
	return patterns
}

func overlapsAny(c candidate, accepted []candidate) bool {
	for _, a := range accepted {
		if c.start < a.end && a.start < c.end {
			return true
		}
	}
	return false
}
