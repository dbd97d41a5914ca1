package agent

import (
	"errors"
	"testing"
	"time"
)

var slotsNow = time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

func TestParseHumanDate_Formats(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-09-10", "2026-09-10"},
		{"10 Sep 2026", "2026-09-10"},
		{"10 September 2026", "2026-09-10"},
		{"Sep 10 2026", "2026-09-10"},
		{"September 10, 2026", "2026-09-10"},
		{"10 sep", "2026-09-10"},
		{"september 10", "2026-09-10"},
	}
	for _, tt := range tests {
		got, err := parseHumanDate(tt.in, slotsNow)
		if err != nil {
			t.Errorf("parseHumanDate(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseHumanDate(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestParseHumanDate_YearlessRollsForward(t *testing.T) {
	// March has already passed in the fixed clock's year.
	got, err := parseHumanDate("15 Mar", slotsNow)
	if err != nil {
		t.Fatalf("parseHumanDate failed: %v", err)
	}
	if got != "2027-03-15" {
		t.Errorf("Expected rollover to 2027-03-15, got %q", got)
	}
}

func TestParseHumanDate_PastRejected(t *testing.T) {
	if _, err := parseHumanDate("2026-08-01", slotsNow); !errors.Is(err, errPastDate) {
		t.Errorf("Expected errPastDate, got %v", err)
	}
	// Same-day travel is also refused.
	if _, err := parseHumanDate("2026-08-28", slotsNow); !errors.Is(err, errPastDate) {
		t.Errorf("Expected errPastDate for today, got %v", err)
	}
}

func TestParseHumanDate_Garbage(t *testing.T) {
	for _, in := range []string{"", "soonish", "the day after tomorrow"} {
		if _, err := parseHumanDate(in, slotsNow); !errors.Is(err, errUnparsedDate) {
			t.Errorf("parseHumanDate(%q): expected errUnparsedDate, got %v", in, err)
		}
	}
}

func TestExtractCity_NoiseStripping(t *testing.T) {
	valid := func(c string) bool { return c == "Goa" || c == "Delhi" || c == "New Delhi" }

	tests := []struct {
		in   string
		want string
	}{
		{"goa", "Goa"},
		{"I'm going to Goa please", "Goa"},
		{"change destination to delhi", "Delhi"},
		{"starting from Delhi!", "Delhi"},
		{"new delhi", "New Delhi"},
		{"to from on", ""},
	}
	for _, tt := range tests {
		if got := extractCity(tt.in, valid); got != tt.want {
			t.Errorf("extractCity(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractCity_UnknownPairFallsToFirstToken(t *testing.T) {
	valid := func(string) bool { return false }
	if got := extractCity("sunny beaches", valid); got != "Sunny" {
		t.Errorf("Expected first token fallback, got %q", got)
	}
}

func TestContainsPastISODate(t *testing.T) {
	if !containsPastISODate("we flew on 2026-08-01 last time", slotsNow) {
		t.Error("Expected past date to be detected")
	}
	if containsPastISODate("we fly on 2026-09-10", slotsNow) {
		t.Error("Future date must not trip the guard")
	}
	if containsPastISODate("no dates here", slotsNow) {
		t.Error("Text without dates must not trip the guard")
	}
}

func TestParsePositiveInt(t *testing.T) {
	if n, err := parsePositiveInt("3"); err != nil || n != 3 {
		t.Errorf("Expected 3, got %d (%v)", n, err)
	}
	if n, err := parsePositiveInt("about 5 days"); err != nil || n != 5 {
		t.Errorf("Expected 5, got %d (%v)", n, err)
	}
	if _, err := parsePositiveInt("0"); err == nil {
		t.Error("Zero must be rejected")
	}
	if _, err := parsePositiveInt("many"); err == nil {
		t.Error("Non-numeric must be rejected")
	}
}

func TestParseChoiceIndex(t *testing.T) {
	if idx, ok := parseChoiceIndex("2", 3); !ok || idx != 1 {
		t.Errorf("Expected index 1, got %d (%v)", idx, ok)
	}
	for _, in := range []string{"0", "4", "nope"} {
		if _, ok := parseChoiceIndex(in, 3); ok {
			t.Errorf("Expected %q to be rejected", in)
		}
	}
}
