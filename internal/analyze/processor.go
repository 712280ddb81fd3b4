package analyze

import (
	"fmt"

	"github.com/harsight/harsight-go/internal/generalize"
	"github.com/harsight/harsight-go/internal/infer"
	"github.com/harsight/harsight-go/internal/interaction"
	"github.com/harsight/harsight-go/internal/pattern"
)

// opaqueConfidence is the weight given to the marker pattern recorded for
// bodies that could not be inspected at all.
const opaqueConfidence = 0.3

// StageError reports a failure in one analysis stage. Stages fail
// independently: an error here always accompanies whatever partial report
// the remaining stages produced.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }

func (e *StageError) Unwrap() error { return e.Err }

// Process analyzes one interaction: URL, header and body generalization per
// side, plus body type inference, aggregated into a Report. It never fails
// outright; per-stage errors are returned beside the (always non-nil)
// report.
func Process(cat *pattern.Catalogue, inter *interaction.Interaction, maxDepth int) (*Report, []*StageError) {
	p := &processor{cat: cat, maxDepth: maxDepth}
	report := &Report{}

	if inter != nil && inter.Request != nil {
		report.RequestAnalysis = p.requestSide(inter.Request, report)
	}
	if inter != nil && inter.Response != nil {
		report.ResponseAnalysis = p.responseSide(inter.Response, report)
	}

	report.SecurityConcerns = buildConcerns(p.matches)
	return report, p.errs
}

type processor struct {
	cat      *pattern.Catalogue
	maxDepth int
	current  string
	matches  []pattern.SensitiveDataMatch
	errs     []*StageError
}

func (p *processor) requestSide(req *interaction.Request, report *Report) *SideAnalysis {
	side := &SideAnalysis{}

	p.stage("request.url", func() {
		side.URLAnalysis = generalize.URL(p.cat, req.URL)
		p.collect(side.URLAnalysis)
		if orig, gen := req.URL, side.URLAnalysis.Generalized; gen != orig {
			report.GeneralizationSuggestions = append(report.GeneralizationSuggestions, Suggestion{
				Type:          SuggestionURLParameterization,
				Description:   fmt.Sprintf("parameterize %d path or query value(s)", len(side.URLAnalysis.Patterns)),
				OriginalURL:   orig,
				SuggestedURL:  fmt.Sprint(gen),
				PatternsFound: side.URLAnalysis.Patterns,
			})
		}
		for key, value := range req.QueryParams {
			found := p.cat.DetectSensitiveData(key, value, pattern.LocationURL)
			p.matches = append(p.matches, found...)
			if side.URLAnalysis != nil {
				side.URLAnalysis.SensitiveMatches = append(side.URLAnalysis.SensitiveMatches, found...)
			}
		}
	})

	p.stage("request.headers", func() {
		side.HeadersAnalysis = generalize.Headers(p.cat, req.Headers)
		p.collect(side.HeadersAnalysis)
	})

	p.stage("request.body", func() {
		p.bodySide(side, req.Body, req.BodyNote, report)
	})

	return side
}

func (p *processor) responseSide(resp *interaction.Response, report *Report) *SideAnalysis {
	side := &SideAnalysis{Status: resp.Status}

	p.stage("response.headers", func() {
		side.HeadersAnalysis = generalize.Headers(p.cat, resp.Headers)
		p.collect(side.HeadersAnalysis)
	})

	p.stage("response.body", func() {
		p.bodySide(side, resp.Body, resp.BodyNote, report)
	})

	return side
}

// bodySide handles the shared body pipeline. Decoding already happened
// upstream; the note tells us how much structure survived.
func (p *processor) bodySide(side *SideAnalysis, body any, note interaction.BodyNote, report *Report) {
	if body == nil {
		return
	}

	if note == interaction.BodyNoteBinary {
		side.BodyAnalysis = &generalize.Result{
			Original:    body,
			Generalized: body,
			Patterns: []pattern.DataPattern{{
				Type:             pattern.TypeOpaque,
				Confidence:       opaqueConfidence,
				OriginalValue:    interaction.OpaqueBody,
				GeneralizedValue: interaction.OpaqueBody,
				Description:      "undecodable payload",
			}},
		}
		p.fail(fmt.Errorf("analyze: %w", interaction.ErrUnsupportedEncoding))
		return
	}

	side.BodyAnalysis = generalize.Body(p.cat, body, p.maxDepth)
	p.collect(side.BodyAnalysis)
	side.InferredTypes = infer.Infer(p.cat, body, p.maxDepth)

	if note == interaction.BodyNoteMalformed {
		// The body claimed JSON but parsed as a raw string; keep the
		// scalar analysis but mark the format untrustworthy.
		side.InferredTypes.Format = "unknown"
		p.fail(fmt.Errorf("analyze: %w", interaction.ErrMalformedBody))
	}

	if side.BodyAnalysis.Changed() {
		report.GeneralizationSuggestions = append(report.GeneralizationSuggestions, Suggestion{
			Type:             SuggestionBodyGeneralization,
			Description:      fmt.Sprintf("generalize %d recognized value(s)", len(side.BodyAnalysis.Patterns)+len(side.BodyAnalysis.SensitiveMatches)),
			OriginalValue:    side.BodyAnalysis.Original,
			GeneralizedValue: side.BodyAnalysis.Generalized,
			PatternsFound:    side.BodyAnalysis.Patterns,
		})
	}
}

func (p *processor) collect(res *generalize.Result) {
	if res == nil {
		return
	}
	p.matches = append(p.matches, res.SensitiveMatches...)
}

// stage runs one analysis step, converting a panic into a stage error so a
// pathological input degrades that stage instead of the whole interaction.
func (p *processor) stage(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.errs = append(p.errs, &StageError{Stage: name, Err: fmt.Errorf("panic: %v", r)})
		}
	}()
	p.current = name
	fn()
}

func (p *processor) fail(err error) {
	p.errs = append(p.errs, &StageError{Stage: p.current, Err: err})
}
