package harsight

import "github.com/harsight/harsight-go/internal/analyze"

// Result is the outcome of analyzing one interaction. Errors never replace
// the report: a failed stage leaves its entry here while the remaining
// stages still populate Report.
type Result struct {
	InteractionID string          `json:"interaction_id"`
	Report        *analyze.Report `json:"report"`
	Errors        []AnalysisError `json:"errors,omitempty"`
}

// AnalysisError is the structured form of a per-interaction failure.
type AnalysisError struct {
	InteractionID string `json:"interaction_id"`
	Stage         string `json:"stage"`
	Message       string `json:"message"`
}

func (e AnalysisError) Error() string {
	return "harsight: " + e.InteractionID + " " + e.Stage + ": " + e.Message
}
