// Package harsight turns captured HTTP interactions into structured,
// reusable contract artifacts: it recognizes semantic data shapes in
// strings, classifies sensitive values, generalizes URLs, headers and bodies
// into parameterized templates, and infers schemas from observed samples.
//
// The engine performs no I/O and keeps no state between batches; it only
// suggests generalizations and flags concerns for a human or downstream
// generator to accept.
package harsight

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/harsight/harsight-go/internal/analyze"
	"github.com/harsight/harsight-go/internal/interaction"
	"github.com/harsight/harsight-go/internal/pattern"
)

// Service analyzes interactions against the shared pattern catalogue. It is
// safe for concurrent use: the catalogue is compiled once and read-only
// afterwards.
type Service struct {
	options   *Options
	catalogue *pattern.Catalogue
}

// New creates a new analysis service. An error is returned only if the
// configuration is invalid or the pattern catalogue fails to compile; the
// latter is fatal, since the catalogue is assumed valid for the process
// lifetime.
func New(o *Options) (*Service, error) {
	o, err := o.parse()
	if err != nil {
		return nil, err
	}

	cat, err := pattern.Default()
	if err != nil {
		return nil, fmt.Errorf("harsight: %w", err)
	}

	return &Service{options: o, catalogue: cat}, nil
}

// Analyze runs the full analysis for one interaction. The returned result
// always carries a report; failures inside a stage are reported as entries
// in Result.Errors beside whatever partial analysis could still be produced.
func (s *Service) Analyze(inter *interaction.Interaction) *Result {
	res := &Result{InteractionID: interactionID(inter)}

	defer func() {
		if r := recover(); r != nil {
			res.record(AnalysisError{
				InteractionID: res.InteractionID,
				Stage:         "process",
				Message:       fmt.Sprintf("panic: %v", r),
			}, s.options.OnError)
			if res.Report == nil {
				res.Report = &analyze.Report{}
			}
		}
	}()

	report, stageErrs := analyze.Process(s.catalogue, inter, s.options.MaxDepth)
	res.Report = report
	for _, se := range stageErrs {
		res.record(AnalysisError{
			InteractionID: res.InteractionID,
			Stage:         se.Stage,
			Message:       se.Err.Error(),
		}, s.options.OnError)
	}
	return res
}

// AnalyzeBatch fans a batch out across the configured number of workers.
// Results arrive in input order, but no processing order is guaranteed
// between interactions; none of them depends on another's analysis. A
// cancelled context stops work on interactions not yet started and marks
// them with a cancellation error entry.
func (s *Service) AnalyzeBatch(ctx context.Context, inters []*interaction.Interaction) []*Result {
	if len(inters) == 0 {
		return nil
	}

	results := make([]*Result, len(inters))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < s.options.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				if err := ctx.Err(); err != nil {
					results[i] = s.cancelled(inters[i], err)
					continue
				}
				results[i] = s.Analyze(inters[i])
			}
		}()
	}

	for i := range inters {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results
}

func (s *Service) cancelled(inter *interaction.Interaction, err error) *Result {
	res := &Result{InteractionID: interactionID(inter)}
	res.record(AnalysisError{
		InteractionID: res.InteractionID,
		Stage:         "batch",
		Message:       err.Error(),
	}, s.options.OnError)
	res.Report = &analyze.Report{}
	return res
}

func (res *Result) record(e AnalysisError, onError func(error)) {
	res.Errors = append(res.Errors, e)
	if onError != nil {
		onError(e)
	}
}

// interactionID returns the caller-supplied id, or mints one so every batch
// entry is addressable in error reports.
func interactionID(inter *interaction.Interaction) string {
	if inter != nil && inter.ID != "" {
		return inter.ID
	}
	return uuid.NewString()
}
