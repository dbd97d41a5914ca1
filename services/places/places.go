// Package places recommends points of interest for a city, best rated
// first. Like the hotel search, it never returns empty while the
// catalog has entries: an unmatched city falls back to the full list.
package places

import (
	"sort"
	"strings"

	"github.com/tripwise-project/tripwise-agent/dataset"
	"github.com/tripwise-project/tripwise-agent/types"
)

// Service answers place searches over an in-memory catalog.
type Service struct {
	records []dataset.PlaceRecord
}

// New builds a service over loaded place records.
func New(records []dataset.PlaceRecord) *Service {
	return &Service{records: records}
}

// Search returns up to limit places for the city, sorted by rating
// descending. limit <= 0 means no cap. City matching is a bidirectional
// substring check, so "North Goa" matches a "Goa" entry and vice versa.
func (s *Service) Search(city string, limit int) types.PlaceResult {
	needle := strings.ToLower(strings.TrimSpace(city))

	var places []types.Place
	for _, r := range s.records {
		have := strings.ToLower(r.City)
		if strings.Contains(have, needle) || strings.Contains(needle, have) {
			places = append(places, toPlace(r))
		}
	}
	if len(places) == 0 {
		for _, r := range s.records {
			places = append(places, toPlace(r))
		}
	}

	sort.SliceStable(places, func(i, j int) bool {
		return places[i].Rating > places[j].Rating
	})

	if len(places) > 0 {
		places[0].IsTopRated = true
	}
	if limit > 0 && len(places) > limit {
		places = places[:limit]
	}

	return types.PlaceResult{
		Places:  places,
		Filters: buildFilters(places),
	}
}

func toPlace(r dataset.PlaceRecord) types.Place {
	return types.Place{
		PlaceID: r.PlaceID,
		Name:    r.Name,
		City:    r.City,
		Type:    r.Type,
		Rating:  r.Rating,
	}
}

func buildFilters(places []types.Place) types.PlaceFilters {
	if len(places) == 0 {
		return types.PlaceFilters{}
	}

	typeSet := make(map[string]bool)
	rr := types.RatingRange{Min: places[0].Rating, Max: places[0].Rating}
	for _, p := range places {
		typeSet[p.Type] = true
		if p.Rating < rr.Min {
			rr.Min = p.Rating
		}
		if p.Rating > rr.Max {
			rr.Max = p.Rating
		}
	}

	kinds := make([]string, 0, len(typeSet))
	for k := range typeSet {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	return types.PlaceFilters{Types: kinds, RatingRange: rr}
}
