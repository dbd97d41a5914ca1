// Package types defines the shared data structures exchanged between the
// dialogue agent, the extraction pipeline, and the planning services.
package types

import "time"

// TripType values accepted in session state.
const (
	TripOneWay    = "one_way"
	TripRoundTrip = "round_trip"
)

// Budget tier values accepted in preferences.
const (
	BudgetTierBudget   = "budget"
	BudgetTierMidRange = "mid-range"
	BudgetTierLuxury   = "luxury"
)

// Preferences holds the soft trip preferences collected alongside the
// required slots.
type Preferences struct {
	Budget    *string  `json:"budget"`
	Interests []string `json:"interests,omitempty"`
}

// TripState is the single mutable record for one planning conversation.
// Optional scalars are pointers so "not yet collected" is distinguishable
// from a zero value. Dates are ISO YYYY-MM-DD strings validated on entry.
type TripState struct {
	Started        bool        `json:"started"`
	Source         *string     `json:"source"`
	Destination    *string     `json:"destination"`
	TripType       *string     `json:"trip_type"`
	TravelDate     *string     `json:"travel_date"`
	ReturnDate     *string     `json:"return_date"`
	Days           *int        `json:"days"`
	Travelers      *int        `json:"travelers"`
	Preferences    Preferences `json:"preferences"`
	ReturnResolved bool        `json:"return_resolved"`
}

// NewTripState returns an empty state ready for a fresh conversation.
func NewTripState() *TripState {
	return &TripState{Preferences: Preferences{Interests: []string{}}}
}

// Reset clears every field back to its initial value.
func (s *TripState) Reset() {
	*s = *NewTripState()
}

// Clone returns a deep copy of the state.
func (s *TripState) Clone() *TripState {
	c := *s
	c.Source = clonePtr(s.Source)
	c.Destination = clonePtr(s.Destination)
	c.TripType = clonePtr(s.TripType)
	c.TravelDate = clonePtr(s.TravelDate)
	c.ReturnDate = clonePtr(s.ReturnDate)
	c.Days = clonePtr(s.Days)
	c.Travelers = clonePtr(s.Travelers)
	c.Preferences.Budget = clonePtr(s.Preferences.Budget)
	c.Preferences.Interests = append([]string(nil), s.Preferences.Interests...)
	return &c
}

// Equal reports whether two states carry the same values.
func (s *TripState) Equal(o *TripState) bool {
	if s.Started != o.Started || s.ReturnResolved != o.ReturnResolved {
		return false
	}
	if !ptrEq(s.Source, o.Source) || !ptrEq(s.Destination, o.Destination) ||
		!ptrEq(s.TripType, o.TripType) || !ptrEq(s.TravelDate, o.TravelDate) ||
		!ptrEq(s.ReturnDate, o.ReturnDate) {
		return false
	}
	if !ptrEq(s.Days, o.Days) || !ptrEq(s.Travelers, o.Travelers) {
		return false
	}
	if !ptrEq(s.Preferences.Budget, o.Preferences.Budget) {
		return false
	}
	if len(s.Preferences.Interests) != len(o.Preferences.Interests) {
		return false
	}
	for i := range s.Preferences.Interests {
		if s.Preferences.Interests[i] != o.Preferences.Interests[i] {
			return false
		}
	}
	return true
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptrEq[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Extraction is a sparse partial mapping from slot to value, produced by
// either extractor. Nil fields mean "nothing extracted for this slot".
type Extraction struct {
	Source      *string  `json:"source,omitempty"`
	Destination *string  `json:"destination,omitempty"`
	TripType    *string  `json:"trip_type,omitempty"`
	TravelDate  *string  `json:"travel_date,omitempty"`
	Days        *int     `json:"days,omitempty"`
	Travelers   *int     `json:"travelers,omitempty"`
	Budget      *string  `json:"budget,omitempty"`
	Interests   []string `json:"interests,omitempty"`
}

// Empty reports whether the extraction carries no values at all.
func (e Extraction) Empty() bool {
	return e.Source == nil && e.Destination == nil && e.TripType == nil &&
		e.TravelDate == nil && e.Days == nil && e.Travelers == nil &&
		e.Budget == nil && len(e.Interests) == 0
}

// StrPtr is a convenience constructor for optional strings.
func StrPtr(s string) *string { return &s }

// IntPtr is a convenience constructor for optional ints.
func IntPtr(n int) *int { return &n }

// ParseISODate parses a YYYY-MM-DD string.
func ParseISODate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
