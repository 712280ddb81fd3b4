// Package analyze orchestrates pattern recognition, generalization and type
// inference over one interaction and assembles the resulting report. It is a
// pure transform: no state survives a call, and a failed stage degrades that
// stage only.
package analyze

import (
	"sort"

	"github.com/harsight/harsight-go/internal/generalize"
	"github.com/harsight/harsight-go/internal/infer"
	"github.com/harsight/harsight-go/internal/pattern"
)

// Suggestion types in Report.GeneralizationSuggestions.
const (
	SuggestionURLParameterization = "url_parameterization"
	SuggestionBodyGeneralization  = "body_generalization"
)

// Report is the full analysis of one interaction. It is fully populated
// before Process returns and immutable afterwards.
type Report struct {
	RequestAnalysis           *SideAnalysis `json:"request_analysis"`
	ResponseAnalysis          *SideAnalysis `json:"response_analysis"`
	GeneralizationSuggestions []Suggestion  `json:"generalization_suggestions"`
	SecurityConcerns          []Concern     `json:"security_concerns"`
}

// SideAnalysis covers one side (request or response) of an interaction.
type SideAnalysis struct {
	URLAnalysis     *generalize.Result `json:"url_analysis,omitempty"`
	HeadersAnalysis *generalize.Result `json:"headers_analysis,omitempty"`
	BodyAnalysis    *generalize.Result `json:"body_analysis,omitempty"`
	InferredTypes   *infer.Schema      `json:"inferred_types,omitempty"`
	Status          int                `json:"status,omitempty"`
}

// Suggestion is one generalization a downstream generator may apply or
// reject. URL suggestions carry the original/suggested URL pair; body
// suggestions carry the value pair plus the patterns that motivated them.
type Suggestion struct {
	Type             string                `json:"type"`
	Description      string                `json:"description"`
	OriginalURL      string                `json:"original_url,omitempty"`
	SuggestedURL     string                `json:"suggested_url,omitempty"`
	OriginalValue    any                   `json:"original_value,omitempty"`
	GeneralizedValue any                   `json:"generalized_value,omitempty"`
	PatternsFound    []pattern.DataPattern `json:"patterns_found,omitempty"`
}

// Concern aggregates every sensitive-data match of one category across the
// whole interaction. Examples hold field names, never captured values.
type Concern struct {
	Type           pattern.SensitiveType `json:"type"`
	Severity       string                `json:"severity"`
	Count          int                   `json:"count"`
	Locations      []string              `json:"locations"`
	Examples       []string              `json:"examples"`
	Recommendation string                `json:"recommendation"`
}

// maxConcernExamples caps how many field names one concern lists.
const maxConcernExamples = 5

func buildConcerns(matches []pattern.SensitiveDataMatch) []Concern {
	if len(matches) == 0 {
		return nil
	}

	byType := make(map[pattern.SensitiveType][]pattern.SensitiveDataMatch)
	for _, m := range matches {
		byType[m.Type] = append(byType[m.Type], m)
	}

	concerns := make([]Concern, 0, len(byType))
	for stype, group := range byType {
		locations := map[string]struct{}{}
		examples := map[string]struct{}{}
		for _, m := range group {
			locations[string(m.Location)] = struct{}{}
			if m.FieldName != "" {
				examples[m.FieldName] = struct{}{}
			}
		}
		concerns = append(concerns, Concern{
			Type:           stype,
			Severity:       group[0].Severity().String(),
			Count:          len(group),
			Locations:      sortedSet(locations),
			Examples:       capped(sortedSet(examples), maxConcernExamples),
			Recommendation: pattern.Recommendation(stype),
		})
	}

	// Highest severity first, then by count, so the report leads with
	// what matters.
	sort.Slice(concerns, func(i, j int) bool {
		si, sj := severityRank(concerns[i].Severity), severityRank(concerns[j].Severity)
		if si != sj {
			return si > sj
		}
		if concerns[i].Count != concerns[j].Count {
			return concerns[i].Count > concerns[j].Count
		}
		return concerns[i].Type < concerns[j].Type
	})
	return concerns
}

func severityRank(s string) int {
	switch s {
	case "high":
		return 3
	case "medium":
		return 2
	case "low":
		return 1
	}
	return 0
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func capped(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
