// Package agent runs the slot-filling dialogue: parsing turns, asking
// for missing fields, validating against the route network, and handing
// a complete state to the plan assembler.
package agent

import (
	"github.com/tripwise-project/tripwise-agent/types"
)

// Pending marks what kind of answer the next utterance must be. It is a
// sealed set: exactly one of the variants below is active per session.
type Pending interface {
	pending()
}

// PendingNone means the next utterance is free-form.
type PendingNone struct{}

// PendingSlot means the next utterance answers a direct slot question.
type PendingSlot struct {
	Slot string
}

// PendingOutboundChoice means the user must pick an alternative outbound
// date by number, or cancel.
type PendingOutboundChoice struct {
	Dates []string
}

// ReturnOption is one candidate trip-length adjustment.
type ReturnOption struct {
	Days       int
	ReturnDate string
}

// PendingReturnChoice means the user must pick an adjusted return by
// number, switch to one-way, or cancel.
type PendingReturnChoice struct {
	Options []ReturnOption
}

func (PendingNone) pending()           {}
func (PendingSlot) pending()           {}
func (PendingOutboundChoice) pending() {}
func (PendingReturnChoice) pending()   {}

// Session is one conversation: its trip state plus dialogue bookkeeping.
type Session struct {
	ID              string
	State           *types.TripState
	Pending         Pending
	ReflectionCount int
}

// ResetDialogue clears the trip and all dialogue bookkeeping.
func (s *Session) ResetDialogue() {
	s.State.Reset()
	s.Pending = PendingNone{}
	s.ReflectionCount = 0
}
