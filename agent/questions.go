package agent

import (
	"fmt"
	"strings"

	"github.com/tripwise-project/tripwise-agent/types"
)

// Slot names, in the order they are asked.
const (
	slotSource      = "source"
	slotDestination = "destination"
	slotTripType    = "trip_type"
	slotTravelDate  = "travel_date"
	slotDays        = "days"
	slotTravelers   = "travelers"
	slotBudget      = "budget"
)

var slotOrder = []string{
	slotSource, slotDestination, slotTripType, slotTravelDate,
	slotDays, slotTravelers, slotBudget,
}

var slotQuestions = map[string]string{
	slotSource:      "Where will you travel from?",
	slotDestination: "Where would you like to travel to?",
	slotTripType:    "Is this a one-way trip or a round trip? (one-way / round-trip)",
	slotTravelDate:  "What is your travel date? (YYYY-MM-DD)",
	slotDays:        "How many days is your trip?",
	slotTravelers:   "How many people are traveling?",
	slotBudget:      "What is your budget preference? (budget / mid-range / luxury)",
}

// nextMissingSlot returns the first unfilled slot, or "" when the state
// is complete.
func nextMissingSlot(s *types.TripState) string {
	for _, slot := range slotOrder {
		if slotFilled(s, slot) {
			continue
		}
		return slot
	}
	return ""
}

func slotFilled(s *types.TripState, slot string) bool {
	switch slot {
	case slotSource:
		return s.Source != nil
	case slotDestination:
		return s.Destination != nil
	case slotTripType:
		return s.TripType != nil
	case slotTravelDate:
		return s.TravelDate != nil
	case slotDays:
		return s.Days != nil
	case slotTravelers:
		return s.Travelers != nil
	case slotBudget:
		return s.Preferences.Budget != nil
	}
	return true
}

var responseOpeners = []string{
	"Got it!",
	"Great choice!",
	"Perfect!",
	"Noted!",
}

var responseConfirmations = []string{
	"Alright.",
	"Okay.",
	"Thanks!",
	"Sure.",
}

// stateFacts phrases what is known so far, in slot order.
func stateFacts(s *types.TripState) []string {
	var facts []string
	if s.Source != nil {
		facts = append(facts, fmt.Sprintf("you're starting from %s", *s.Source))
	}
	if s.Destination != nil {
		facts = append(facts, fmt.Sprintf("you're headed to %s", *s.Destination))
	}
	if s.TripType != nil {
		if *s.TripType == types.TripRoundTrip {
			facts = append(facts, "it's a round trip")
		} else {
			facts = append(facts, "it's a one-way trip")
		}
	}
	if s.TravelDate != nil {
		facts = append(facts, fmt.Sprintf("you leave on %s", *s.TravelDate))
	}
	if s.Days != nil {
		facts = append(facts, fmt.Sprintf("for %d day(s)", *s.Days))
	}
	if s.Travelers != nil {
		facts = append(facts, fmt.Sprintf("%d traveler(s)", *s.Travelers))
	}
	if s.Preferences.Budget != nil {
		facts = append(facts, fmt.Sprintf("on a %s budget", *s.Preferences.Budget))
	}
	return facts
}

// reflectQuestion wraps the next question in a short acknowledgment.
// Early in the conversation the wrap restates what is known; later
// turns keep it brief. Phrase choice rotates with the reflection count
// so repeated turns do not sound identical.
func reflectQuestion(session *Session, question string) string {
	n := session.ReflectionCount
	if n <= 3 {
		facts := stateFacts(session.State)
		if len(facts) > 0 {
			opener := responseOpeners[n%len(responseOpeners)]
			return fmt.Sprintf("%s So far: %s. %s", opener, strings.Join(facts, ", "), question)
		}
	}
	confirmation := responseConfirmations[n%len(responseConfirmations)]
	return fmt.Sprintf("%s %s", confirmation, question)
}

// Fixed dialogue responses.
const (
	msgEmptyInput = "Please enter a valid response."
	msgNotStarted = "Tell me when you'd like to start planning a trip! For example: \"plan a trip to Goa\"."
	msgCancelled  = "Okay, I've cancelled this trip. Tell me whenever you want to plan another one!"
	msgPastDate   = "That date is already in the past. Please give me a future date (YYYY-MM-DD)."
	msgNoNewInfo  = "I couldn't find any new trip details in that."
	msgChooseNum  = "Choose a number from the options, or type 'cancel' to start over."

	msgOneWayOrCancel = "Reply 'one-way' to continue without a return flight, or 'cancel'."
)

// triggerWords begin a planning conversation.
var triggerWords = []string{"plan", "trip", "travel", "vacation", "holiday", "tour"}

func wantsToPlan(text string) bool {
	for _, w := range triggerWords {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
