package types

import "testing"

func sampleState() *TripState {
	s := NewTripState()
	s.Started = true
	s.Source = StrPtr("Delhi")
	s.Destination = StrPtr("Goa")
	s.TripType = StrPtr(TripRoundTrip)
	s.TravelDate = StrPtr("2026-09-10")
	s.Days = IntPtr(3)
	s.Travelers = IntPtr(2)
	s.Preferences.Budget = StrPtr(BudgetTierBudget)
	s.Preferences.Interests = []string{"beaches"}
	return s
}

func TestCloneIsDeep(t *testing.T) {
	s := sampleState()
	c := s.Clone()
	if !s.Equal(c) {
		t.Fatal("Clone must compare equal to its source")
	}

	*c.Destination = "Mumbai"
	*c.Days = 5
	c.Preferences.Interests[0] = "mountains"

	if *s.Destination != "Goa" || *s.Days != 3 || s.Preferences.Interests[0] != "beaches" {
		t.Error("Mutating the clone leaked into the source")
	}
}

func TestEqual(t *testing.T) {
	s := sampleState()
	c := s.Clone()
	if !s.Equal(c) {
		t.Fatal("Expected equal states")
	}

	c.Travelers = nil
	if s.Equal(c) {
		t.Error("nil vs set pointer must not compare equal")
	}

	c = s.Clone()
	*c.TravelDate = "2026-09-11"
	if s.Equal(c) {
		t.Error("Differing values must not compare equal")
	}
}

func TestReset(t *testing.T) {
	s := sampleState()
	s.Reset()
	if !s.Equal(NewTripState()) {
		t.Errorf("Reset left residual state: %+v", s)
	}
	if s.Started || s.ReturnResolved {
		t.Error("Flags survived Reset")
	}
}

func TestExtractionEmpty(t *testing.T) {
	if !(Extraction{}).Empty() {
		t.Error("Zero extraction must be empty")
	}
	if (Extraction{Days: IntPtr(3)}).Empty() {
		t.Error("Extraction with a value must not be empty")
	}
	if (Extraction{Interests: []string{"beaches"}}).Empty() {
		t.Error("Extraction with interests must not be empty")
	}
}

func TestParseISODate(t *testing.T) {
	d, err := ParseISODate("2026-09-10")
	if err != nil {
		t.Fatalf("ParseISODate: %v", err)
	}
	if d.Year() != 2026 || d.Month() != 9 || d.Day() != 10 {
		t.Errorf("Parsed wrong date: %v", d)
	}
	if _, err := ParseISODate("10-09-2026"); err == nil {
		t.Error("Expected error for non-ISO layout")
	}
}
