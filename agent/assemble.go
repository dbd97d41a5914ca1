package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tripwise-project/tripwise-agent/services/budget"
	"github.com/tripwise-project/tripwise-agent/services/hotels"
	"github.com/tripwise-project/tripwise-agent/types"
)

// Offsets tried when the requested dates have no flight service.
var (
	outboundOffsets = []int{-2, -1, 1, 2, 3, 4, 5, 6, 7}
	returnOffsets   = []int{-3, -2, -1, 1, 2, 3}
)

// assemble builds the plan interactively: schedule conflicts come back
// as numbered choices the user answers on the next turn.
func (a *Agent) assemble(ctx context.Context, session *Session) types.TurnResult {
	return a.assembleWith(ctx, session, false)
}

// AssembleForced builds a plan from an already-complete state with no
// conversation to fall back on. Schedule conflicts become FORM_ERROR
// results carrying up to three suggestions.
func (a *Agent) AssembleForced(ctx context.Context, state *types.TripState) types.TurnResult {
	session := &Session{State: state, Pending: PendingNone{}}

	if slot := nextMissingSlot(state); slot != "" {
		return types.TurnResult{
			Status:  types.StatusFormError,
			Message: fmt.Sprintf("Cannot assemble a plan: %s is missing", slot),
			State:   state,
		}
	}
	if res := a.validateState(session); res != nil {
		return types.TurnResult{Status: types.StatusFormError, Message: res.Question, State: state}
	}
	return a.assembleWith(ctx, session, true)
}

func (a *Agent) assembleWith(ctx context.Context, session *Session, forced bool) types.TurnResult {
	s := session.State
	src, dst := *s.Source, *s.Destination

	out := a.Flights.Search(src, dst)
	if len(out.DirectFlights) == 0 {
		session.Pending = PendingSlot{Slot: slotDestination}
		s.Destination = nil
		msg := fmt.Sprintf("No flights available from %s → %s. From %s you can fly to: %s.",
			src, dst, src, strings.Join(a.Catalog.DestinationsFrom(src), ", "))
		if forced {
			return types.TurnResult{Status: types.StatusFormError, Message: msg, State: s}
		}
		return types.TurnResult{Status: types.StatusNeedInput, Question: msg + " Where would you like to go?", State: s}
	}

	wd, err := weekdayOf(*s.TravelDate)
	if err != nil {
		s.TravelDate = nil
		session.Pending = PendingSlot{Slot: slotTravelDate}
		return types.TurnResult{Status: types.StatusNeedInput, Question: slotQuestions[slotTravelDate], State: s}
	}

	if !containsString(out.AvailableWeekdays, wd) {
		dates := a.alternativeDates(*s.TravelDate, out.AvailableWeekdays)
		if forced {
			if len(dates) > 3 {
				dates = dates[:3]
			}
			return types.TurnResult{
				Status: types.StatusFormError,
				Message: fmt.Sprintf("No %s → %s flights on a %s. Closest dates with service: %s",
					src, dst, wd, strings.Join(dates, ", ")),
				State: s,
			}
		}
		if len(dates) == 0 {
			s.TravelDate = nil
			session.Pending = PendingSlot{Slot: slotTravelDate}
			return types.TurnResult{
				Status:   types.StatusNeedInput,
				Question: fmt.Sprintf("No %s → %s flights near that date. %s", src, dst, slotQuestions[slotTravelDate]),
				State:    s,
			}
		}
		session.Pending = PendingOutboundChoice{Dates: dates}
		var b strings.Builder
		fmt.Fprintf(&b, "No %s → %s flights on a %s. Closest dates with service:\n", src, dst, wd)
		for i, d := range dates {
			day, _ := weekdayOf(d)
			fmt.Fprintf(&b, "%d) %s (%s)\n", i+1, d, day)
		}
		b.WriteString("Reply with a number, or 'cancel'.")
		return types.TurnResult{Status: types.StatusNeedInput, Question: b.String(), State: s}
	}

	outbound := pickFlight(out.DirectFlights, wd)

	var returnFlight *types.Flight

	if *s.TripType == types.TripRoundTrip {
		plannedReturn, err := addDaysISO(*s.TravelDate, *s.Days-1)
		if err != nil {
			s.TravelDate = nil
			session.Pending = PendingSlot{Slot: slotTravelDate}
			return types.TurnResult{Status: types.StatusNeedInput, Question: slotQuestions[slotTravelDate], State: s}
		}

		// A missing return route never flips the trip type on its own:
		// the user either agrees to one-way or cancels.
		back := a.Flights.Search(dst, src)
		if len(back.DirectFlights) == 0 {
			msg := fmt.Sprintf("No return flights from %s to %s.", dst, src)
			if forced {
				return types.TurnResult{
					Status:  types.StatusFormError,
					Message: msg + " Plan this as a one-way trip instead.",
					State:   s,
				}
			}
			session.Pending = PendingReturnChoice{}
			return types.TurnResult{
				Status:   types.StatusNeedInput,
				Question: msg + " " + msgOneWayOrCancel,
				State:    s,
			}
		}

		rwd, _ := weekdayOf(plannedReturn)
		if !containsString(back.AvailableWeekdays, rwd) && !s.ReturnResolved {
			options := a.returnOptions(*s.TravelDate, *s.Days, back.AvailableWeekdays)
			if forced {
				return types.TurnResult{
					Status:  types.StatusFormError,
					Message: returnConflictMessage(dst, src, rwd, options, true),
					State:   s,
				}
			}
			if len(options) == 0 {
				session.Pending = PendingReturnChoice{}
				return types.TurnResult{
					Status: types.StatusNeedInput,
					Question: fmt.Sprintf("No %s → %s return flights on a %s, and no nearby trip length works. %s",
						dst, src, rwd, msgOneWayOrCancel),
					State: s,
				}
			}
			session.Pending = PendingReturnChoice{Options: options}
			return types.TurnResult{
				Status:   types.StatusNeedInput,
				Question: returnConflictMessage(dst, src, rwd, options, false),
				State:    s,
			}
		}

		s.ReturnDate = types.StrPtr(plannedReturn)
		returnFlight = pickFlight(back.DirectFlights, rwd)
	}

	plan := a.buildPlan(ctx, s, outbound, returnFlight)

	session.Pending = PendingNone{}
	return types.TurnResult{Status: types.StatusCompleted, Message: "Your trip plan is ready!", State: s, Plan: plan}
}

// buildPlan composes hotel, weather, budget, places and the itinerary
// around the chosen flights.
func (a *Agent) buildPlan(ctx context.Context, s *types.TripState, outbound, returnFlight *types.Flight) *types.TripPlan {
	dst := *s.Destination

	tier := types.BudgetTierMidRange
	if s.Preferences.Budget != nil {
		tier = *s.Preferences.Budget
	}

	sortMode := hotels.SortHighestRated
	if tier == types.BudgetTierBudget {
		sortMode = hotels.SortPriceLowToHigh
	}
	var hotel *types.Hotel
	if hres := a.Hotels.Search(dst, sortMode); len(hres.Hotels) > 0 {
		hotel = &hres.Hotels[0]
	}

	endDate := *s.TravelDate
	if s.ReturnDate != nil {
		endDate = *s.ReturnDate
	} else if d, err := addDaysISO(*s.TravelDate, *s.Days-1); err == nil {
		endDate = d
	}

	report, err := a.Weather.Forecast(ctx, dst, *s.TravelDate, endDate)
	if err != nil {
		a.log.Warnf("weather unavailable for %s: %v", dst, err)
		report = &types.WeatherReport{
			Supported: false,
			City:      dst,
			Note:      fmt.Sprintf("Weather information is not available for %s", dst),
		}
	}

	in := budget.Input{
		Tier:          tier,
		Days:          *s.Days,
		Travelers:     *s.Travelers,
		OutboundPrice: outbound.Price,
	}
	if returnFlight != nil {
		in.ReturnPrice = returnFlight.Price
	}
	if hotel != nil {
		in.HotelPerNight = hotel.PricePerNight
	}
	estimate := budget.Estimate(in)

	limit := *s.Days * 2
	if limit < 3 {
		limit = 3
	}
	pres := a.Places.Search(dst, limit)

	return &types.TripPlan{
		Flight:    types.FlightPlan{Outbound: outbound, Return: returnFlight},
		Hotel:     hotel,
		Places:    pres.Places,
		Weather:   report,
		Budget:    &estimate,
		Itinerary: buildItinerary(s, outbound, returnFlight, pres.Places, report),
	}
}

// alternativeDates lists nearby future dates whose weekday has service,
// earliest first.
func (a *Agent) alternativeDates(travelDate string, available []string) []string {
	today := dateOnly(a.now())

	var out []string
	for _, off := range outboundOffsets {
		cand, err := addDaysISO(travelDate, off)
		if err != nil {
			continue
		}
		d, _ := types.ParseISODate(cand)
		if !d.After(today) {
			continue
		}
		wd, _ := weekdayOf(cand)
		if containsString(available, wd) {
			out = append(out, cand)
		}
	}
	sort.Strings(out)
	return out
}

// returnOptions adjusts the trip length so the return lands on a day
// with service.
func (a *Agent) returnOptions(travelDate string, days int, available []string) []ReturnOption {
	var out []ReturnOption
	for _, off := range returnOffsets {
		newDays := days + off
		if newDays <= 1 {
			continue
		}
		cand, err := addDaysISO(travelDate, newDays-1)
		if err != nil {
			continue
		}
		wd, _ := weekdayOf(cand)
		if containsString(available, wd) {
			out = append(out, ReturnOption{Days: newDays, ReturnDate: cand})
		}
	}
	return out
}

func returnConflictMessage(dst, src, weekday string, options []ReturnOption, forced bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "No %s → %s return flights on a %s.", dst, src, weekday)

	if forced {
		if len(options) > 3 {
			options = options[:3]
		}
		if len(options) == 0 {
			b.WriteString(" No nearby trip length works either; consider a one-way trip.")
			return b.String()
		}
		b.WriteString(" Closest working trip lengths:")
		for _, o := range options {
			fmt.Fprintf(&b, " %d days (return %s),", o.Days, o.ReturnDate)
		}
		return strings.TrimSuffix(b.String(), ",") + "; or plan one-way."
	}

	b.WriteString(" You could adjust the trip:\n")
	for i, o := range options {
		fmt.Fprintf(&b, "%d) %d days, returning %s\n", i+1, o.Days, o.ReturnDate)
	}
	b.WriteString("Reply with a number, 'one-way', or 'cancel'.")
	return b.String()
}

// pickFlight prefers a flight departing on the travel weekday.
func pickFlight(options []types.Flight, weekday string) *types.Flight {
	for i := range options {
		if fw, err := weekdayOfTimestamp(options[i].DepartureTime); err == nil && fw == weekday {
			return &options[i]
		}
	}
	return &options[0]
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
