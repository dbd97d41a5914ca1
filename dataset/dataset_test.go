package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadFlights(t *testing.T) {
	path := writeFile(t, "flights.json", `[
		{"flight_id": "F1", "airline": "IndiGo", "from": "Delhi", "to": "Goa",
		 "departure_time": "2026-09-10T06:30", "arrival_time": "2026-09-10T09:00", "price": 4500}
	]`)

	flights, err := LoadFlights(path)
	if err != nil {
		t.Fatalf("LoadFlights: %v", err)
	}
	if len(flights) != 1 || flights[0].FlightID != "F1" || flights[0].Price != 4500 {
		t.Errorf("Unexpected records: %+v", flights)
	}
}

func TestLoadFlightsMissingField(t *testing.T) {
	path := writeFile(t, "flights.json", `[
		{"flight_id": "F1", "airline": "IndiGo", "from": "Delhi", "to": "",
		 "departure_time": "2026-09-10T06:30", "arrival_time": "2026-09-10T09:00", "price": 4500}
	]`)

	_, err := LoadFlights(path)
	if err == nil || !strings.Contains(err.Error(), "missing required fields") {
		t.Errorf("Expected missing-field error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFlights(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil || !strings.Contains(err.Error(), "dataset not found") {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFile(t, "hotels.json", "")
	_, err := LoadHotels(path)
	if err == nil || !strings.Contains(err.Error(), "dataset is empty") {
		t.Errorf("Expected empty error, got %v", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := writeFile(t, "places.json", `[{"place_id": "P1"`)
	_, err := LoadPlaces(path)
	if err == nil || !strings.Contains(err.Error(), "dataset is corrupt") {
		t.Errorf("Expected corrupt error, got %v", err)
	}
}

func TestLoadHotels(t *testing.T) {
	path := writeFile(t, "hotels.json", `[
		{"hotel_id": "H1", "name": "Sea Breeze", "city": "Goa", "stars": 3,
		 "price_per_night": 2600, "amenities": ["wifi", "pool"]}
	]`)

	hotels, err := LoadHotels(path)
	if err != nil {
		t.Fatalf("LoadHotels: %v", err)
	}
	if len(hotels) != 1 || hotels[0].Stars != 3 || len(hotels[0].Amenities) != 2 {
		t.Errorf("Unexpected records: %+v", hotels)
	}
}

func TestLoadPlaces(t *testing.T) {
	path := writeFile(t, "places.json", `[
		{"place_id": "P1", "name": "Baga Beach", "city": "Goa", "type": "beach", "rating": 4.5}
	]`)

	places, err := LoadPlaces(path)
	if err != nil {
		t.Fatalf("LoadPlaces: %v", err)
	}
	if len(places) != 1 || places[0].Rating != 4.5 {
		t.Errorf("Unexpected records: %+v", places)
	}
}

func TestLoadPlacesZeroRating(t *testing.T) {
	path := writeFile(t, "places.json", `[
		{"place_id": "P1", "name": "Baga Beach", "city": "Goa", "type": "beach", "rating": 0}
	]`)

	if _, err := LoadPlaces(path); err == nil {
		t.Error("Expected error for zero rating")
	}
}
