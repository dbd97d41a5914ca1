package intent

import (
	"testing"
	"time"

	"github.com/tripwise-project/tripwise-agent/types"
)

var testNow = time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

func strVal(t *testing.T, p *string, want string) {
	t.Helper()
	if p == nil {
		t.Fatalf("Expected %q, got nil", want)
	}
	if *p != want {
		t.Errorf("Expected %q, got %q", want, *p)
	}
}

func intVal(t *testing.T, p *int, want int) {
	t.Helper()
	if p == nil {
		t.Fatalf("Expected %d, got nil", want)
	}
	if *p != want {
		t.Errorf("Expected %d, got %d", want, *p)
	}
}

func TestExtract_ExplicitRoute(t *testing.T) {
	ex := Extract("book me a flight from delhi to goa", testNow)
	strVal(t, ex.Source, "Delhi")
	strVal(t, ex.Destination, "Goa")
}

func TestExtract_ExplicitRouteWinsGroup(t *testing.T) {
	// Both route patterns match this text; the explicit one must win
	// and the weak one must not rewrite either endpoint.
	ex := Extract("travel from delhi to goa", testNow)
	strVal(t, ex.Source, "Delhi")
	strVal(t, ex.Destination, "Goa")
}

func TestExtract_WeakRoute(t *testing.T) {
	ex := Extract("goa from delhi", testNow)
	strVal(t, ex.Source, "Delhi")
	strVal(t, ex.Destination, "Goa")
}

func TestExtract_WeakRouteGenericPhraseDropped(t *testing.T) {
	ex := Extract("trip from delhi", testNow)
	strVal(t, ex.Source, "Delhi")
	if ex.Destination != nil {
		t.Errorf("Generic phrase must not become a destination, got %q", *ex.Destination)
	}
}

func TestExtract_DestinationOnly(t *testing.T) {
	ex := Extract("take me to goa", testNow)
	if ex.Source != nil {
		t.Errorf("Expected no source, got %q", *ex.Source)
	}
	strVal(t, ex.Destination, "Goa")
}

func TestExtract_DestinationOnlyGenericDropped(t *testing.T) {
	ex := Extract("i want to travel", testNow)
	if ex.Destination != nil {
		t.Errorf("Expected no destination, got %q", *ex.Destination)
	}
}

func TestExtract_TripType(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"make it a round trip", types.TripRoundTrip},
		{"roundtrip please", types.TripRoundTrip},
		{"i need a return trip", types.TripRoundTrip},
		{"both ways", types.TripRoundTrip},
		{"one way only", types.TripOneWay},
		{"one-way", types.TripOneWay},
		{"single trip", types.TripOneWay},
		// "no return" contains "return"; the one-way check runs first.
		{"no return needed", types.TripOneWay},
	}
	for _, tt := range tests {
		ex := Extract(tt.text, testNow)
		strVal(t, ex.TripType, tt.want)
	}
}

func TestExtract_Travelers(t *testing.T) {
	ex := Extract("3 people are traveling", testNow)
	intVal(t, ex.Travelers, 3)

	ex = Extract("me and my wife want a vacation", testNow)
	intVal(t, ex.Travelers, 2)

	ex = Extract("5 pax", testNow)
	intVal(t, ex.Travelers, 5)
}

func TestExtract_Days(t *testing.T) {
	ex := Extract("going for 4 days", testNow)
	intVal(t, ex.Days, 4)

	ex = Extract("one week getaway", testNow)
	intVal(t, ex.Days, 7)
}

func TestExtract_ISODateFutureOnly(t *testing.T) {
	ex := Extract("fly on 2026-09-15", testNow)
	strVal(t, ex.TravelDate, "2026-09-15")

	ex = Extract("fly on 2026-08-01", testNow)
	if ex.TravelDate != nil {
		t.Errorf("Past date must be dropped, got %q", *ex.TravelDate)
	}

	ex = Extract("fly on 2026-08-28", testNow)
	if ex.TravelDate != nil {
		t.Errorf("Same-day date must be dropped, got %q", *ex.TravelDate)
	}
}

func TestExtract_Budget(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"something cheap", types.BudgetTierBudget},
		{"budget friendly options", types.BudgetTierBudget},
		{"low cost please", types.BudgetTierBudget},
		{"luxury all the way", types.BudgetTierLuxury},
		{"mid range works", types.BudgetTierMidRange},
	}
	for _, tt := range tests {
		ex := Extract(tt.text, testNow)
		strVal(t, ex.Budget, tt.want)
	}
}

func TestExtract_CombinedUtterance(t *testing.T) {
	ex := Extract("plan a round trip from delhi to goa for 3 days, 2 people, luxury, on 2026-09-10", testNow)
	strVal(t, ex.Source, "Delhi")
	strVal(t, ex.Destination, "Goa")
	intVal(t, ex.Days, 3)
	intVal(t, ex.Travelers, 2)
	strVal(t, ex.TripType, types.TripRoundTrip)
	strVal(t, ex.Budget, types.BudgetTierLuxury)
	strVal(t, ex.TravelDate, "2026-09-10")
}

func TestExtract_NoisyCaptures(t *testing.T) {
	// Greedy captures swallow the surrounding words; the filler strip
	// must recover clean endpoints from both sides of "from".
	ex := Extract("plan a trip to goa from delhi for 5 days starting 2026-09-10 with 2 people on a budget", testNow)
	strVal(t, ex.Source, "Delhi")
	strVal(t, ex.Destination, "Goa")
	intVal(t, ex.Days, 5)
	intVal(t, ex.Travelers, 2)
	strVal(t, ex.TravelDate, "2026-09-10")
	strVal(t, ex.Budget, types.BudgetTierBudget)

	ex = Extract("i want to go to goa", testNow)
	strVal(t, ex.Destination, "Goa")
}

func TestExtract_EmptyUtterance(t *testing.T) {
	ex := Extract("", testNow)
	if !ex.Empty() {
		t.Errorf("Expected empty extraction, got %+v", ex)
	}
}

func TestIsGenericPhrase(t *testing.T) {
	for _, s := range []string{"trip", "  Vacation ", "PLAN A TRIP", "family trip"} {
		if !IsGenericPhrase(s) {
			t.Errorf("Expected %q to be generic", s)
		}
	}
	for _, s := range []string{"goa", "delhi", "beach trip"} {
		if IsGenericPhrase(s) {
			t.Errorf("Expected %q to be a real value", s)
		}
	}
}
