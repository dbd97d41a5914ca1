package agent

import (
	"fmt"
	"strings"

	"github.com/tripwise-project/tripwise-agent/types"
)

// validateState checks the filled location slots against the route
// network. An invalid value is cleared and a corrective question is
// returned; nil means the state passed.
//
// Destination problems are not raised while the destination question is
// itself pending, the slot handler gives its own feedback there.
func (a *Agent) validateState(session *Session) *types.TurnResult {
	s := session.State

	// Free-text locations arrive noisy, clean before judging.
	if s.Source != nil && !a.Catalog.IsValidSource(*s.Source) {
		if cleaned := extractCity(*s.Source, a.Catalog.IsValidCity); cleaned != "" && a.Catalog.IsValidSource(cleaned) {
			s.Source = types.StrPtr(cleaned)
		}
	}

	if s.Source != nil && !a.Catalog.IsValidSource(*s.Source) {
		bad := *s.Source
		s.Source = nil
		session.Pending = PendingSlot{Slot: slotSource}
		return &types.TurnResult{
			Status: types.StatusNeedInput,
			Question: fmt.Sprintf("I don't have flights departing from %s. I can plan trips starting from: %s. Where will you travel from?",
				bad, strings.Join(a.Catalog.AllSources(), ", ")),
			State: s,
		}
	}

	pendingDestination := false
	if p, ok := session.Pending.(PendingSlot); ok && p.Slot == slotDestination {
		pendingDestination = true
	}

	if s.Source != nil && s.Destination != nil && !pendingDestination {
		if !a.Catalog.IsValidDestination(*s.Destination) {
			if cleaned := extractCity(*s.Destination, a.Catalog.IsValidCity); cleaned != "" && a.Catalog.IsValidDestination(cleaned) {
				s.Destination = types.StrPtr(cleaned)
			}
		}

		switch {
		case !a.Catalog.IsValidDestination(*s.Destination):
			bad := *s.Destination
			s.Destination = nil
			session.Pending = PendingSlot{Slot: slotDestination}
			return &types.TurnResult{
				Status: types.StatusNeedInput,
				Question: fmt.Sprintf("I couldn't find %s in my destinations. From %s you can fly to: %s. Where would you like to go?",
					bad, *s.Source, strings.Join(a.Catalog.DestinationsFrom(*s.Source), ", ")),
				State: s,
			}
		case !a.Catalog.IsValidRoute(*s.Source, *s.Destination):
			bad := *s.Destination
			s.Destination = nil
			session.Pending = PendingSlot{Slot: slotDestination}
			return &types.TurnResult{
				Status: types.StatusNeedInput,
				Question: fmt.Sprintf("No flights available from %s → %s. From %s you can fly to: %s. Where would you like to go?",
					*s.Source, bad, *s.Source, strings.Join(a.Catalog.DestinationsFrom(*s.Source), ", ")),
				State: s,
			}
		}
	}

	if s.TravelDate != nil {
		d, err := types.ParseISODate(*s.TravelDate)
		if err != nil || !d.After(dateOnly(a.now())) {
			s.TravelDate = nil
			session.Pending = PendingSlot{Slot: slotTravelDate}
			return &types.TurnResult{
				Status:   types.StatusNeedInput,
				Question: msgPastDate,
				State:    s,
			}
		}
	}

	return nil
}
