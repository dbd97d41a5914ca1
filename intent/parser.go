package intent

import (
	"context"
	"time"

	"github.com/tripwise-project/tripwise-agent/logger"
	"github.com/tripwise-project/tripwise-agent/types"
)

// Pipeline runs the deterministic rules first and consults the LLM
// fallback only when tracked fields are still missing afterwards.
// Fallback results never override rule results.
type Pipeline struct {
	// Fallback may be nil, which disables the LLM path entirely.
	Fallback *FallbackExtractor

	// Now is injectable for date logic in tests. Defaults to time.Now.
	Now func() time.Time

	log *logger.Logger
}

// NewPipeline builds a parser. fallback may be nil.
func NewPipeline(fallback *FallbackExtractor) *Pipeline {
	return &Pipeline{
		Fallback: fallback,
		Now:      time.Now,
		log:      logger.GetLogger().WithField("component", "intent"),
	}
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Parse extracts new fields from one utterance against the current
// state. The result is already merge-filtered: every field in it is one
// the state does not hold yet. A fallback failure degrades to the rule
// result alone and never surfaces an error to the dialogue.
func (p *Pipeline) Parse(ctx context.Context, utterance string, state *types.TripState) types.Extraction {
	fields := Merge(Extract(utterance, p.now()), state)

	if p.Fallback == nil || !needsFallback(state, fields) {
		return fields
	}

	llmEx, err := p.Fallback.Extract(ctx, utterance, state)
	if err != nil {
		p.log.Warnf("fallback extraction failed: %v", err)
		return fields
	}

	llmFields := Merge(llmEx, state)
	fillGaps(&fields, llmFields)
	return fields
}

// needsFallback reports whether any core slot is still unresolved after
// the rule pass. Trip type and preferences alone never justify a model
// call; they have dedicated questions.
func needsFallback(state *types.TripState, fields types.Extraction) bool {
	if state.Source == nil && fields.Source == nil {
		return true
	}
	if state.Destination == nil && fields.Destination == nil {
		return true
	}
	if state.TravelDate == nil && fields.TravelDate == nil {
		return true
	}
	if state.Days == nil && fields.Days == nil {
		return true
	}
	if state.Travelers == nil && fields.Travelers == nil {
		return true
	}
	return false
}

// fillGaps copies fields from extra into base where base has none.
func fillGaps(base *types.Extraction, extra types.Extraction) {
	if base.Source == nil {
		base.Source = extra.Source
	}
	if base.Destination == nil {
		base.Destination = extra.Destination
	}
	if base.TripType == nil {
		base.TripType = extra.TripType
	}
	if base.TravelDate == nil {
		base.TravelDate = extra.TravelDate
	}
	if base.Days == nil {
		base.Days = extra.Days
	}
	if base.Travelers == nil {
		base.Travelers = extra.Travelers
	}
	if base.Budget == nil {
		base.Budget = extra.Budget
	}
	if len(base.Interests) == 0 {
		base.Interests = extra.Interests
	}
}
