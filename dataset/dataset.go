// Package dataset loads the static JSON catalogs the planning services
// query. Malformed or missing data is a startup failure, never a per-turn
// condition.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
)

// FlightRecord is one raw flight entry as stored on disk.
// departure_time and arrival_time use the 2006-01-02T15:04 layout.
type FlightRecord struct {
	FlightID      string `json:"flight_id"`
	Airline       string `json:"airline"`
	From          string `json:"from"`
	To            string `json:"to"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	Price         int    `json:"price"`
}

// HotelRecord is one raw hotel entry as stored on disk.
type HotelRecord struct {
	HotelID       string   `json:"hotel_id"`
	Name          string   `json:"name"`
	City          string   `json:"city"`
	Stars         int      `json:"stars"`
	PricePerNight int      `json:"price_per_night"`
	Amenities     []string `json:"amenities"`
}

// PlaceRecord is one raw point-of-interest entry as stored on disk.
type PlaceRecord struct {
	PlaceID string  `json:"place_id"`
	Name    string  `json:"name"`
	City    string  `json:"city"`
	Type    string  `json:"type"`
	Rating  float64 `json:"rating"`
}

// LoadFlights reads and validates the flight catalog.
func LoadFlights(path string) ([]FlightRecord, error) {
	var out []FlightRecord
	if err := loadList(path, &out); err != nil {
		return nil, err
	}
	for i, f := range out {
		if f.FlightID == "" || f.Airline == "" || f.From == "" || f.To == "" ||
			f.DepartureTime == "" || f.ArrivalTime == "" || f.Price <= 0 {
			return nil, fmt.Errorf("flight dataset %s: record %d is missing required fields", path, i)
		}
	}
	return out, nil
}

// LoadHotels reads and validates the hotel catalog.
func LoadHotels(path string) ([]HotelRecord, error) {
	var out []HotelRecord
	if err := loadList(path, &out); err != nil {
		return nil, err
	}
	for i, h := range out {
		if h.HotelID == "" || h.Name == "" || h.City == "" || h.Stars <= 0 || h.PricePerNight <= 0 {
			return nil, fmt.Errorf("hotel dataset %s: record %d is missing required fields", path, i)
		}
	}
	return out, nil
}

// LoadPlaces reads and validates the places catalog.
func LoadPlaces(path string) ([]PlaceRecord, error) {
	var out []PlaceRecord
	if err := loadList(path, &out); err != nil {
		return nil, err
	}
	for i, p := range out {
		if p.PlaceID == "" || p.Name == "" || p.City == "" || p.Type == "" || p.Rating <= 0 {
			return nil, fmt.Errorf("places dataset %s: record %d is missing required fields", path, i)
		}
	}
	return out, nil
}

func loadList(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("dataset not found: %s: %w", path, err)
	}
	if len(data) == 0 {
		return fmt.Errorf("dataset is empty: %s", path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("dataset is corrupt: %s: %w", path, err)
	}
	return nil
}
