package intent

import (
	"github.com/tripwise-project/tripwise-agent/types"
)

// Merge filters an extraction against the current state under the
// null-only policy: a field survives only when the state has no value
// for it yet. Preferences sub-fields are treated individually. The
// destination-correction exception is the dialogue layer's business,
// not the merge engine's.
func Merge(ex types.Extraction, state *types.TripState) types.Extraction {
	var out types.Extraction

	if ex.Source != nil && state.Source == nil {
		out.Source = ex.Source
	}
	if ex.Destination != nil && state.Destination == nil {
		out.Destination = ex.Destination
	}
	if ex.TripType != nil && state.TripType == nil {
		out.TripType = ex.TripType
	}
	if ex.TravelDate != nil && state.TravelDate == nil {
		out.TravelDate = ex.TravelDate
	}
	if ex.Days != nil && state.Days == nil {
		out.Days = ex.Days
	}
	if ex.Travelers != nil && state.Travelers == nil {
		out.Travelers = ex.Travelers
	}
	if ex.Budget != nil && state.Preferences.Budget == nil {
		out.Budget = ex.Budget
	}
	if len(ex.Interests) > 0 && len(state.Preferences.Interests) == 0 {
		out.Interests = ex.Interests
	}
	return out
}

// Apply commits a merged extraction to the state. Callers are expected
// to pass the output of Merge, so Apply writes unconditionally.
func Apply(state *types.TripState, fields types.Extraction) {
	if fields.Source != nil {
		state.Source = fields.Source
	}
	if fields.Destination != nil {
		state.Destination = fields.Destination
	}
	if fields.TripType != nil {
		state.TripType = fields.TripType
	}
	if fields.TravelDate != nil {
		state.TravelDate = fields.TravelDate
	}
	if fields.Days != nil {
		state.Days = fields.Days
	}
	if fields.Travelers != nil {
		state.Travelers = fields.Travelers
	}
	if fields.Budget != nil {
		state.Preferences.Budget = fields.Budget
	}
	if len(fields.Interests) > 0 {
		state.Preferences.Interests = fields.Interests
	}
}
