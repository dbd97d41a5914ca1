// Package flights searches the static flight catalog: direct matches,
// two-leg connections, and the filter metadata a UI needs.
package flights

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tripwise-project/tripwise-agent/dataset"
	"github.com/tripwise-project/tripwise-agent/types"
)

// timeLayout matches the departure/arrival strings in the catalog.
const timeLayout = "2006-01-02T15:04"

// minLayover is the shortest changeover accepted for a connection.
const minLayover = 45 * time.Minute

var bucketOrder = map[string]int{
	"morning":   0,
	"afternoon": 1,
	"evening":   2,
	"night":     3,
}

var weekdayOrder = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Service answers flight searches over an in-memory catalog.
type Service struct {
	records []dataset.FlightRecord
}

// New builds a service over loaded flight records.
func New(records []dataset.FlightRecord) *Service {
	return &Service{records: records}
}

// Search returns direct flights for the route, or two-leg connections
// when no direct flight exists. City comparison is case-insensitive.
func (s *Service) Search(source, destination string) types.FlightResult {
	src := strings.ToLower(strings.TrimSpace(source))
	dst := strings.ToLower(strings.TrimSpace(destination))

	var direct []types.Flight
	for _, r := range s.records {
		if strings.ToLower(r.From) == src && strings.ToLower(r.To) == dst {
			direct = append(direct, enrich(r))
		}
	}

	result := types.FlightResult{DirectFlights: direct}

	if len(direct) == 0 {
		result.ConnectingFlights = s.connections(src, dst)
		if len(result.ConnectingFlights) > 0 {
			result.Message = fmt.Sprintf("No direct flights from %s to %s, showing connecting options", source, destination)
		} else {
			result.Message = fmt.Sprintf("No flights found from %s to %s", source, destination)
		}
		return result
	}

	tagExtremes(direct)
	sort.SliceStable(direct, func(i, j int) bool {
		if bucketOrder[direct[i].TimeOfDay] != bucketOrder[direct[j].TimeOfDay] {
			return bucketOrder[direct[i].TimeOfDay] < bucketOrder[direct[j].TimeOfDay]
		}
		return direct[i].Price < direct[j].Price
	})

	result.DirectFlights = direct
	result.AvailableWeekdays = weekdays(direct)
	result.Filters = buildFilters(direct)
	return result
}

// enrich computes duration and time-of-day for one record.
func enrich(r dataset.FlightRecord) types.Flight {
	f := types.Flight{
		FlightID:      r.FlightID,
		Airline:       r.Airline,
		From:          r.From,
		To:            r.To,
		DepartureTime: r.DepartureTime,
		ArrivalTime:   r.ArrivalTime,
		Price:         r.Price,
	}

	dep, depErr := time.Parse(timeLayout, r.DepartureTime)
	arr, arrErr := time.Parse(timeLayout, r.ArrivalTime)
	if depErr == nil && arrErr == nil {
		f.Duration = formatDuration(arr.Sub(dep))
	}
	if depErr == nil {
		f.TimeOfDay = timeBucket(dep.Hour())
	}
	return f
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	return fmt.Sprintf("%d hr %d mins", hours, mins)
}

func timeBucket(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 21:
		return "evening"
	default:
		return "night"
	}
}

// tagExtremes marks the cheapest and fastest direct flights.
func tagExtremes(flights []types.Flight) {
	if len(flights) == 0 {
		return
	}

	cheapest, fastest := 0, -1
	var bestDur time.Duration
	for i, f := range flights {
		if f.Price < flights[cheapest].Price {
			cheapest = i
		}
		dep, depErr := time.Parse(timeLayout, f.DepartureTime)
		arr, arrErr := time.Parse(timeLayout, f.ArrivalTime)
		if depErr != nil || arrErr != nil {
			continue
		}
		if d := arr.Sub(dep); fastest < 0 || d < bestDur {
			fastest, bestDur = i, d
		}
	}

	flights[cheapest].IsCheapest = true
	if fastest >= 0 {
		flights[fastest].IsFastest = true
	}
}

// weekdays lists the departure weekdays present in a flight set,
// lowercase, in calendar order.
func weekdays(flights []types.Flight) []string {
	seen := make(map[string]bool)
	for _, f := range flights {
		if dep, err := time.Parse(timeLayout, f.DepartureTime); err == nil {
			seen[strings.ToLower(dep.Weekday().String())] = true
		}
	}

	var out []string
	for _, day := range weekdayOrder {
		if seen[day] {
			out = append(out, day)
		}
	}
	return out
}

// connections finds two-leg itineraries through one changeover city with
// a workable layover, cheapest three first.
func (s *Service) connections(src, dst string) []types.ConnectingFlight {
	var out []types.ConnectingFlight

	for _, first := range s.records {
		if strings.ToLower(first.From) != src {
			continue
		}
		via := strings.ToLower(first.To)
		if via == dst {
			continue
		}

		arr1, err := time.Parse(timeLayout, first.ArrivalTime)
		if err != nil {
			continue
		}

		for _, second := range s.records {
			if strings.ToLower(second.From) != via || strings.ToLower(second.To) != dst {
				continue
			}
			dep2, err := time.Parse(timeLayout, second.DepartureTime)
			if err != nil {
				continue
			}
			if dep2.Sub(arr1) < minLayover {
				continue
			}

			arr2, err := time.Parse(timeLayout, second.ArrivalTime)
			if err != nil {
				continue
			}
			dep1, err := time.Parse(timeLayout, first.DepartureTime)
			if err != nil {
				continue
			}

			out = append(out, types.ConnectingFlight{
				Route:         fmt.Sprintf("%s -> %s -> %s", first.From, first.To, second.To),
				TotalPrice:    first.Price + second.Price,
				TotalDuration: formatDuration(arr2.Sub(dep1)),
				Segments: []types.FlightSegment{
					{Airline: first.Airline, From: first.From, To: first.To, DepartureTime: first.DepartureTime, ArrivalTime: first.ArrivalTime, Price: first.Price},
					{Airline: second.Airline, From: second.From, To: second.To, DepartureTime: second.DepartureTime, ArrivalTime: second.ArrivalTime, Price: second.Price},
				},
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalPrice < out[j].TotalPrice })
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// buildFilters summarizes airlines, time buckets and price bounds.
func buildFilters(flights []types.Flight) types.FlightFilters {
	airlineSet := make(map[string]bool)
	bucketSet := make(map[string]bool)
	pr := types.PriceRange{Min: flights[0].Price, Max: flights[0].Price}

	for _, f := range flights {
		airlineSet[f.Airline] = true
		if f.TimeOfDay != "" {
			bucketSet[f.TimeOfDay] = true
		}
		if f.Price < pr.Min {
			pr.Min = f.Price
		}
		if f.Price > pr.Max {
			pr.Max = f.Price
		}
	}

	airlines := make([]string, 0, len(airlineSet))
	for a := range airlineSet {
		airlines = append(airlines, a)
	}
	sort.Strings(airlines)

	var buckets []string
	for _, b := range []string{"morning", "afternoon", "evening", "night"} {
		if bucketSet[b] {
			buckets = append(buckets, b)
		}
	}

	return types.FlightFilters{Airlines: airlines, TimeOfDay: buckets, PriceRange: pr}
}
