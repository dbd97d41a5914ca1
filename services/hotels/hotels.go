// Package hotels searches the static hotel catalog with tier-aware
// sorting. The search never returns empty: when a city has no entries
// the whole catalog backs the fallback.
package hotels

import (
	"sort"
	"strings"

	"github.com/tripwise-project/tripwise-agent/dataset"
	"github.com/tripwise-project/tripwise-agent/types"
)

// Sort modes accepted by Search.
const (
	SortPriceLowToHigh = "price_low_to_high"
	SortPriceHighToLow = "price_high_to_low"
	SortHighestRated   = "highest_rated"
	SortBestValue      = "best_value"
	SortRecommended    = "recommended"
)

// Service answers hotel searches over an in-memory catalog.
type Service struct {
	records []dataset.HotelRecord
}

// New builds a service over loaded hotel records.
func New(records []dataset.HotelRecord) *Service {
	return &Service{records: records}
}

// Search returns hotels for the city sorted by the requested mode.
// City matching is a bidirectional substring check, so "North Goa"
// matches a "Goa" entry and vice versa.
func (s *Service) Search(city, sortBy string) types.HotelResult {
	needle := strings.ToLower(strings.TrimSpace(city))

	var matched []dataset.HotelRecord
	for _, r := range s.records {
		have := strings.ToLower(r.City)
		if strings.Contains(have, needle) || strings.Contains(needle, have) {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		matched = s.records
	}

	hotels := make([]types.Hotel, len(matched))
	for i, r := range matched {
		hotels[i] = types.Hotel{
			HotelID:       r.HotelID,
			Name:          r.Name,
			City:          r.City,
			Stars:         r.Stars,
			PricePerNight: r.PricePerNight,
			Amenities:     r.Amenities,
		}
	}

	tagExtremes(hotels)
	sortHotels(hotels, sortBy)

	return types.HotelResult{
		Hotels:  hotels,
		Filters: buildFilters(hotels),
	}
}

// tagExtremes marks every hotel tied for the lowest price and every
// hotel tied for the highest star rating.
func tagExtremes(hotels []types.Hotel) {
	if len(hotels) == 0 {
		return
	}
	minPrice, maxStars := hotels[0].PricePerNight, hotels[0].Stars
	for _, h := range hotels[1:] {
		if h.PricePerNight < minPrice {
			minPrice = h.PricePerNight
		}
		if h.Stars > maxStars {
			maxStars = h.Stars
		}
	}
	for i := range hotels {
		if hotels[i].PricePerNight == minPrice {
			hotels[i].IsCheapest = true
		}
		if hotels[i].Stars == maxStars {
			hotels[i].IsBestRated = true
		}
	}
}

func sortHotels(hotels []types.Hotel, sortBy string) {
	switch sortBy {
	case SortPriceLowToHigh:
		sort.SliceStable(hotels, func(i, j int) bool {
			return hotels[i].PricePerNight < hotels[j].PricePerNight
		})
	case SortPriceHighToLow:
		sort.SliceStable(hotels, func(i, j int) bool {
			return hotels[i].PricePerNight > hotels[j].PricePerNight
		})
	case SortBestValue:
		// Stars per rupee, best ratio first.
		sort.SliceStable(hotels, func(i, j int) bool {
			return float64(hotels[i].Stars)/float64(hotels[i].PricePerNight) >
				float64(hotels[j].Stars)/float64(hotels[j].PricePerNight)
		})
	case SortHighestRated, SortRecommended, "":
		fallthrough
	default:
		sort.SliceStable(hotels, func(i, j int) bool {
			if hotels[i].Stars != hotels[j].Stars {
				return hotels[i].Stars > hotels[j].Stars
			}
			return hotels[i].PricePerNight < hotels[j].PricePerNight
		})
	}
}

func buildFilters(hotels []types.Hotel) types.HotelFilters {
	if len(hotels) == 0 {
		return types.HotelFilters{}
	}

	pr := types.PriceRange{Min: hotels[0].PricePerNight, Max: hotels[0].PricePerNight}
	starSet := make(map[int]bool)
	amenitySet := make(map[string]bool)

	for _, h := range hotels {
		if h.PricePerNight < pr.Min {
			pr.Min = h.PricePerNight
		}
		if h.PricePerNight > pr.Max {
			pr.Max = h.PricePerNight
		}
		starSet[h.Stars] = true
		for _, a := range h.Amenities {
			amenitySet[a] = true
		}
	}

	stars := make([]int, 0, len(starSet))
	for s := range starSet {
		stars = append(stars, s)
	}
	sort.Ints(stars)

	amenities := make([]string, 0, len(amenitySet))
	for a := range amenitySet {
		amenities = append(amenities, a)
	}
	sort.Strings(amenities)

	return types.HotelFilters{PriceRange: pr, Stars: stars, Amenities: amenities}
}
