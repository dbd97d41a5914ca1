package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/tripwise-project/tripwise-agent/types"
)

// flightTimeLayout matches the catalog's departure/arrival strings.
const flightTimeLayout = "2006-01-02T15:04"

// weekdayOfTimestamp returns the lowercase weekday of a catalog
// timestamp.
func weekdayOfTimestamp(ts string) (string, error) {
	t, err := time.Parse(flightTimeLayout, ts)
	if err != nil {
		return "", fmt.Errorf("bad timestamp %q: %w", ts, err)
	}
	return strings.ToLower(t.Weekday().String()), nil
}

// clockOf extracts the HH:MM portion of a catalog timestamp.
func clockOf(ts string) string {
	t, err := time.Parse(flightTimeLayout, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04")
}

// buildItinerary writes the day-wise narrative. Day one is arrival, the
// last day departs or concludes, and places fill the days between in
// groups of three, cycling when the list is short.
func buildItinerary(s *types.TripState, outbound, returnFlight *types.Flight, placeList []types.Place, report *types.WeatherReport) []types.ItineraryDay {
	days := *s.Days
	dst := *s.Destination

	forecastByDate := make(map[string]types.DailyForecast)
	if report != nil {
		for _, d := range report.DailyForecast {
			forecastByDate[d.Date] = d
		}
	}

	out := make([]types.ItineraryDay, 0, days)
	placeCursor := 0

	for i := 0; i < days; i++ {
		date, err := addDaysISO(*s.TravelDate, i)
		if err != nil {
			date = *s.TravelDate
		}

		var plan strings.Builder
		switch {
		case i == 0:
			fmt.Fprintf(&plan, "Arrive in %s. %s flight %s departs at %s and lands at %s.",
				dst, outbound.Airline, outbound.FlightID, clockOf(outbound.DepartureTime), clockOf(outbound.ArrivalTime))
			if days > 1 {
				plan.WriteString(" Check in and unwind for the evening.")
			}
		case i == days-1 && returnFlight != nil:
			fmt.Fprintf(&plan, "Departure day. %s flight %s back to %s leaves at %s.",
				returnFlight.Airline, returnFlight.FlightID, returnFlight.To, clockOf(returnFlight.DepartureTime))
		case i == days-1:
			fmt.Fprintf(&plan, "Last day in %s. Wrap up at your own pace before the trip concludes.", dst)
		default:
			names := nextPlaces(placeList, &placeCursor, 3)
			if len(names) > 0 {
				fmt.Fprintf(&plan, "Explore %s.", strings.Join(names, ", "))
			} else {
				fmt.Fprintf(&plan, "Free day to explore %s.", dst)
			}
		}

		if fc, ok := forecastByDate[date]; ok {
			fmt.Fprintf(&plan, " Weather: %s, around %.0f°C with a %d%% chance of rain.",
				fc.Condition, fc.TempMax, fc.RainProbability)
		}

		out = append(out, types.ItineraryDay{
			Day:  fmt.Sprintf("Day %d", i+1),
			Date: date,
			Plan: plan.String(),
		})
	}
	return out
}

// nextPlaces hands out up to n place names, cycling the list.
func nextPlaces(placeList []types.Place, cursor *int, n int) []string {
	if len(placeList) == 0 {
		return nil
	}
	var names []string
	for i := 0; i < n && i < len(placeList); i++ {
		names = append(names, placeList[*cursor%len(placeList)].Name)
		*cursor++
	}
	return names
}
