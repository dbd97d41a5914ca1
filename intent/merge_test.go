package intent

import (
	"testing"

	"github.com/tripwise-project/tripwise-agent/types"
)

func TestMerge_FillsOnlyNulls(t *testing.T) {
	state := types.NewTripState()
	state.Source = types.StrPtr("Delhi")

	ex := types.Extraction{
		Source:      types.StrPtr("Mumbai"),
		Destination: types.StrPtr("Goa"),
		Days:        types.IntPtr(3),
	}

	out := Merge(ex, state)
	if out.Source != nil {
		t.Errorf("Filled source must not be overwritten, got %q", *out.Source)
	}
	if out.Destination == nil || *out.Destination != "Goa" {
		t.Errorf("Expected destination Goa, got %v", out.Destination)
	}
	if out.Days == nil || *out.Days != 3 {
		t.Errorf("Expected days 3, got %v", out.Days)
	}
}

func TestMerge_PreferencesSubfieldsIndependent(t *testing.T) {
	state := types.NewTripState()
	state.Preferences.Budget = types.StrPtr(types.BudgetTierLuxury)

	ex := types.Extraction{
		Budget:    types.StrPtr(types.BudgetTierBudget),
		Interests: []string{"beaches"},
	}

	out := Merge(ex, state)
	if out.Budget != nil {
		t.Errorf("Filled budget must not be overwritten, got %q", *out.Budget)
	}
	if len(out.Interests) != 1 || out.Interests[0] != "beaches" {
		t.Errorf("Expected interests to pass through, got %v", out.Interests)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	state := types.NewTripState()
	ex := types.Extraction{
		Source:      types.StrPtr("Delhi"),
		Destination: types.StrPtr("Goa"),
		Travelers:   types.IntPtr(2),
	}

	Apply(state, Merge(ex, state))
	before := state.Clone()

	// A second pass with the same extraction must be a no-op.
	Apply(state, Merge(ex, state))
	if !state.Equal(before) {
		t.Errorf("Second merge changed state: %+v vs %+v", state, before)
	}
}

func TestApply_CommitsAllFields(t *testing.T) {
	state := types.NewTripState()
	Apply(state, types.Extraction{
		Source:      types.StrPtr("Delhi"),
		Destination: types.StrPtr("Goa"),
		TripType:    types.StrPtr(types.TripRoundTrip),
		TravelDate:  types.StrPtr("2026-09-10"),
		Days:        types.IntPtr(3),
		Travelers:   types.IntPtr(2),
		Budget:      types.StrPtr(types.BudgetTierMidRange),
		Interests:   []string{"food", "beaches"},
	})

	if state.Source == nil || *state.Source != "Delhi" {
		t.Error("Source not applied")
	}
	if state.Destination == nil || *state.Destination != "Goa" {
		t.Error("Destination not applied")
	}
	if state.TripType == nil || *state.TripType != types.TripRoundTrip {
		t.Error("Trip type not applied")
	}
	if state.TravelDate == nil || *state.TravelDate != "2026-09-10" {
		t.Error("Travel date not applied")
	}
	if state.Days == nil || *state.Days != 3 {
		t.Error("Days not applied")
	}
	if state.Travelers == nil || *state.Travelers != 2 {
		t.Error("Travelers not applied")
	}
	if state.Preferences.Budget == nil || *state.Preferences.Budget != types.BudgetTierMidRange {
		t.Error("Budget not applied")
	}
	if len(state.Preferences.Interests) != 2 {
		t.Error("Interests not applied")
	}
}
