package flights

import (
	"strings"
	"testing"

	"github.com/tripwise-project/tripwise-agent/dataset"
)

func testRecords() []dataset.FlightRecord {
	return []dataset.FlightRecord{
		// 2026-09-10 is a Thursday, 2026-09-11 a Friday.
		{FlightID: "F1", Airline: "IndiGo", From: "Delhi", To: "Goa", DepartureTime: "2026-09-10T06:30", ArrivalTime: "2026-09-10T09:00", Price: 4500},
		{FlightID: "F2", Airline: "Vistara", From: "Delhi", To: "Goa", DepartureTime: "2026-09-11T18:00", ArrivalTime: "2026-09-11T20:45", Price: 5200},
		{FlightID: "F3", Airline: "Air India", From: "Delhi", To: "Mumbai", DepartureTime: "2026-09-10T07:00", ArrivalTime: "2026-09-10T09:10", Price: 3000},
		{FlightID: "F4", Airline: "IndiGo", From: "Mumbai", To: "Kolkata", DepartureTime: "2026-09-10T10:30", ArrivalTime: "2026-09-10T13:15", Price: 3500},
		{FlightID: "F5", Airline: "SpiceJet", From: "Mumbai", To: "Kolkata", DepartureTime: "2026-09-10T09:20", ArrivalTime: "2026-09-10T12:00", Price: 2800},
	}
}

func TestSearch_DirectFlights(t *testing.T) {
	svc := New(testRecords())
	res := svc.Search("delhi", "goa")

	if len(res.DirectFlights) != 2 {
		t.Fatalf("Expected 2 direct flights, got %d", len(res.DirectFlights))
	}
	if len(res.ConnectingFlights) != 0 {
		t.Errorf("Expected no connections when directs exist")
	}

	first := res.DirectFlights[0]
	if first.FlightID != "F1" {
		t.Errorf("Expected morning flight first, got %s", first.FlightID)
	}
	if first.TimeOfDay != "morning" {
		t.Errorf("Expected morning bucket, got %s", first.TimeOfDay)
	}
	if first.Duration != "2 hr 30 mins" {
		t.Errorf("Expected duration 2 hr 30 mins, got %s", first.Duration)
	}
}

func TestSearch_WeekdaysAndFilters(t *testing.T) {
	svc := New(testRecords())
	res := svc.Search("Delhi", "Goa")

	want := []string{"thursday", "friday"}
	if len(res.AvailableWeekdays) != 2 || res.AvailableWeekdays[0] != want[0] || res.AvailableWeekdays[1] != want[1] {
		t.Errorf("Expected %v, got %v", want, res.AvailableWeekdays)
	}

	if res.Filters.PriceRange.Min != 4500 || res.Filters.PriceRange.Max != 5200 {
		t.Errorf("Unexpected price range: %+v", res.Filters.PriceRange)
	}
	if len(res.Filters.Airlines) != 2 {
		t.Errorf("Expected 2 airlines, got %v", res.Filters.Airlines)
	}
}

func TestSearch_ExtremeTags(t *testing.T) {
	svc := New(testRecords())
	res := svc.Search("Delhi", "Goa")

	var cheapest, fastest string
	for _, f := range res.DirectFlights {
		if f.IsCheapest {
			cheapest = f.FlightID
		}
		if f.IsFastest {
			fastest = f.FlightID
		}
	}
	if cheapest != "F1" {
		t.Errorf("Expected F1 cheapest, got %s", cheapest)
	}
	// F1 is 2h30m, F2 is 2h45m.
	if fastest != "F1" {
		t.Errorf("Expected F1 fastest, got %s", fastest)
	}
}

func TestSearch_ConnectingFlights(t *testing.T) {
	svc := New(testRecords())
	res := svc.Search("Delhi", "Kolkata")

	if len(res.DirectFlights) != 0 {
		t.Fatal("Expected no direct flights")
	}
	if len(res.ConnectingFlights) != 2 {
		t.Fatalf("Expected 2 connections, got %d", len(res.ConnectingFlights))
	}

	// Cheapest total first: F3+F5 = 5800 before F3+F4 = 6500.
	if res.ConnectingFlights[0].TotalPrice != 5800 {
		t.Errorf("Expected cheapest connection first, got %d", res.ConnectingFlights[0].TotalPrice)
	}
	if res.ConnectingFlights[0].Route != "Delhi -> Mumbai -> Kolkata" {
		t.Errorf("Unexpected route: %s", res.ConnectingFlights[0].Route)
	}
	if !strings.Contains(res.Message, "connecting") {
		t.Errorf("Expected connecting message, got %q", res.Message)
	}
}

func TestSearch_LayoverTooShort(t *testing.T) {
	records := []dataset.FlightRecord{
		{FlightID: "A1", Airline: "IndiGo", From: "Delhi", To: "Mumbai", DepartureTime: "2026-09-10T07:00", ArrivalTime: "2026-09-10T09:10", Price: 3000},
		// Departs 30 minutes after the first leg lands.
		{FlightID: "A2", Airline: "IndiGo", From: "Mumbai", To: "Goa", DepartureTime: "2026-09-10T09:40", ArrivalTime: "2026-09-10T11:00", Price: 2500},
	}
	svc := New(records)
	res := svc.Search("Delhi", "Goa")

	if len(res.ConnectingFlights) != 0 {
		t.Errorf("Connections under the minimum layover must be rejected")
	}
	if !strings.Contains(res.Message, "No flights found") {
		t.Errorf("Expected no-flights message, got %q", res.Message)
	}
}

func TestSearch_CaseInsensitive(t *testing.T) {
	svc := New(testRecords())
	res := svc.Search("DELHI", "gOa")
	if len(res.DirectFlights) != 2 {
		t.Errorf("City matching must ignore case, got %d flights", len(res.DirectFlights))
	}
}
