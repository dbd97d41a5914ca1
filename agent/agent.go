package agent

import (
	"context"
	"strings"
	"time"

	"github.com/tripwise-project/tripwise-agent/catalog"
	"github.com/tripwise-project/tripwise-agent/intent"
	"github.com/tripwise-project/tripwise-agent/logger"
	"github.com/tripwise-project/tripwise-agent/services/flights"
	"github.com/tripwise-project/tripwise-agent/services/hotels"
	"github.com/tripwise-project/tripwise-agent/services/places"
	"github.com/tripwise-project/tripwise-agent/services/weather"
	"github.com/tripwise-project/tripwise-agent/types"
)

// Agent owns the dialogue state machine and the planning services it
// drives once a session's state is complete.
type Agent struct {
	Catalog *catalog.RouteCatalog
	Parser  *intent.Pipeline
	Flights *flights.Service
	Hotels  *hotels.Service
	Places  *places.Service
	Weather *weather.Service

	// Now is injectable for date logic in tests. Defaults to time.Now.
	Now func() time.Time

	log *logger.Logger
}

// New wires an agent from its parts.
func New(cat *catalog.RouteCatalog, parser *intent.Pipeline, fl *flights.Service, ho *hotels.Service, pl *places.Service, we *weather.Service) *Agent {
	return &Agent{
		Catalog: cat,
		Parser:  parser,
		Flights: fl,
		Hotels:  ho,
		Places:  pl,
		Weather: we,
		Now:     time.Now,
		log:     logger.GetLogger().WithField("component", "agent"),
	}
}

func (a *Agent) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// ProcessTurn advances one session by one utterance. Every return path
// leaves the session in a state the next utterance can build on.
func (a *Agent) ProcessTurn(ctx context.Context, session *Session, utterance string) types.TurnResult {
	text := strings.TrimSpace(utterance)
	if text == "" {
		return types.TurnResult{Status: types.StatusNeedInput, Question: msgEmptyInput, State: session.State}
	}
	lower := strings.ToLower(text)

	if !session.State.Started {
		if !wantsToPlan(lower) {
			return types.TurnResult{Status: types.StatusNeedInput, Question: msgNotStarted, State: session.State}
		}
		session.State.Started = true
		fields := a.Parser.Parse(ctx, text, session.State)
		intent.Apply(session.State, fields)
		if res := a.validateState(session); res != nil {
			return *res
		}
		return a.continueDialogue(ctx, session)
	}

	// An explicit past date anywhere in the utterance is refused up
	// front, except while the date question itself is pending; its
	// handler gives slot-specific feedback.
	if !a.pendingTravelDate(session) && containsPastISODate(lower, a.now()) {
		return types.TurnResult{Status: types.StatusNeedInput, Question: msgPastDate, State: session.State}
	}

	if lower == "cancel" {
		session.ResetDialogue()
		return types.TurnResult{Status: types.StatusNeedInput, Question: msgCancelled, State: session.State}
	}

	switch p := session.Pending.(type) {
	case PendingOutboundChoice:
		return a.handleOutboundChoice(ctx, session, p, lower)
	case PendingReturnChoice:
		return a.handleReturnChoice(ctx, session, p, lower)
	case PendingSlot:
		return a.handleSlotAnswer(ctx, session, p.Slot, text)
	default:
		return a.handleFreeForm(ctx, session, text)
	}
}

func (a *Agent) pendingTravelDate(session *Session) bool {
	p, ok := session.Pending.(PendingSlot)
	return ok && p.Slot == slotTravelDate
}

// handleFreeForm runs the extraction pipeline over an unconstrained
// utterance.
func (a *Agent) handleFreeForm(ctx context.Context, session *Session, text string) types.TurnResult {
	before := session.State.Clone()

	fields := a.Parser.Parse(ctx, text, session.State)
	intent.Apply(session.State, fields)

	// Correction exception: a stated destination may replace a stored
	// one that does not survive validation against the network.
	if fields.Destination == nil {
		if stated := intent.Extract(text, a.now()); stated.Destination != nil && session.State.Destination != nil {
			current := *session.State.Destination
			if !a.Catalog.IsValidDestination(current) ||
				(session.State.Source != nil && !a.Catalog.IsValidRoute(*session.State.Source, current)) {
				session.State.Destination = stated.Destination
			}
		}
	}

	if res := a.validateState(session); res != nil {
		return *res
	}

	if session.State.Equal(before) {
		slot := nextMissingSlot(session.State)
		if slot == "" {
			return a.assemble(ctx, session)
		}
		session.Pending = PendingSlot{Slot: slot}
		return types.TurnResult{
			Status:   types.StatusNeedInput,
			Question: msgNoNewInfo + " " + slotQuestions[slot],
			State:    session.State,
		}
	}

	return a.continueDialogue(ctx, session)
}

// handleSlotAnswer parses the answer to a direct slot question.
func (a *Agent) handleSlotAnswer(ctx context.Context, session *Session, slot, text string) types.TurnResult {
	reask := func(prefix string) types.TurnResult {
		q := slotQuestions[slot]
		if prefix != "" {
			q = prefix + " " + q
		}
		return types.TurnResult{Status: types.StatusNeedInput, Question: q, State: session.State}
	}

	s := session.State
	lower := strings.ToLower(text)

	switch slot {
	case slotDays:
		n, err := parsePositiveInt(text)
		if err != nil {
			return reask("Please give me a positive number.")
		}
		s.Days = types.IntPtr(n)

	case slotTravelers:
		n, err := parsePositiveInt(text)
		if err != nil {
			return reask("Please give me a positive number.")
		}
		s.Travelers = types.IntPtr(n)

	case slotTripType:
		switch {
		case strings.Contains(lower, "round"):
			s.TripType = types.StrPtr(types.TripRoundTrip)
		case strings.Contains(lower, "one"):
			s.TripType = types.StrPtr(types.TripOneWay)
		default:
			return reask("")
		}

	case slotBudget:
		s.Preferences.Budget = types.StrPtr(strings.ToLower(strings.TrimSpace(text)))

	case slotTravelDate:
		iso, err := parseHumanDate(text, a.now())
		switch err {
		case nil:
			s.TravelDate = types.StrPtr(iso)
		case errPastDate:
			return reask("That date has already passed.")
		default:
			return reask("I couldn't understand that date.")
		}

	case slotSource, slotDestination:
		city := extractCity(text, a.Catalog.IsValidCity)
		if city == "" {
			return reask("I couldn't find a city name in that.")
		}
		if slot == slotSource {
			s.Source = types.StrPtr(city)
		} else {
			s.Destination = types.StrPtr(city)
		}

	default:
		return a.handleFreeForm(ctx, session, text)
	}

	session.Pending = PendingNone{}
	session.ReflectionCount = 0

	if res := a.validateState(session); res != nil {
		return *res
	}
	return a.continueDialogue(ctx, session)
}

// handleOutboundChoice resolves the numbered alternative-date menu.
func (a *Agent) handleOutboundChoice(ctx context.Context, session *Session, p PendingOutboundChoice, lower string) types.TurnResult {
	idx, ok := parseChoiceIndex(lower, len(p.Dates))
	if !ok {
		return types.TurnResult{Status: types.StatusNeedInput, Question: msgChooseNum, State: session.State}
	}

	session.State.TravelDate = types.StrPtr(p.Dates[idx])
	session.Pending = PendingNone{}
	session.ReflectionCount = 0
	return a.continueDialogue(ctx, session)
}

// handleReturnChoice resolves the numbered trip-length menu, including
// the switch to one-way.
func (a *Agent) handleReturnChoice(ctx context.Context, session *Session, p PendingReturnChoice, lower string) types.TurnResult {
	s := session.State

	if lower == "one-way" || lower == "one way" {
		s.TripType = types.StrPtr(types.TripOneWay)
		s.ReturnDate = nil
		s.ReturnResolved = true
		session.Pending = PendingNone{}
		return a.continueDialogue(ctx, session)
	}

	idx, ok := parseChoiceIndex(lower, len(p.Options))
	if !ok {
		q := msgChooseNum
		if len(p.Options) == 0 {
			q = msgOneWayOrCancel
		}
		return types.TurnResult{Status: types.StatusNeedInput, Question: q, State: session.State}
	}

	opt := p.Options[idx]
	s.Days = types.IntPtr(opt.Days)
	s.ReturnDate = types.StrPtr(opt.ReturnDate)
	s.ReturnResolved = true
	session.Pending = PendingNone{}
	session.ReflectionCount = 0
	return a.continueDialogue(ctx, session)
}

// continueDialogue asks the next missing slot, or assembles the plan
// when nothing is missing.
func (a *Agent) continueDialogue(ctx context.Context, session *Session) types.TurnResult {
	slot := nextMissingSlot(session.State)
	if slot == "" {
		return a.assemble(ctx, session)
	}

	session.Pending = PendingSlot{Slot: slot}
	question := reflectQuestion(session, slotQuestions[slot])
	session.ReflectionCount++

	return types.TurnResult{Status: types.StatusNeedInput, Question: question, State: session.State}
}
