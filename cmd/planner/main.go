// The planner binary assembles a plan non-interactively from complete
// flags. Schedule conflicts come back as FORM_ERROR with suggestions
// instead of follow-up questions.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/tripwise-project/tripwise-agent/agent"
	"github.com/tripwise-project/tripwise-agent/catalog"
	"github.com/tripwise-project/tripwise-agent/config"
	"github.com/tripwise-project/tripwise-agent/dataset"
	"github.com/tripwise-project/tripwise-agent/intent"
	"github.com/tripwise-project/tripwise-agent/logger"
	"github.com/tripwise-project/tripwise-agent/services/flights"
	"github.com/tripwise-project/tripwise-agent/services/hotels"
	"github.com/tripwise-project/tripwise-agent/services/places"
	"github.com/tripwise-project/tripwise-agent/services/weather"
	"github.com/tripwise-project/tripwise-agent/types"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to agent YAML config (default from AGENT_CONFIG_PATH)")
		source      = flag.String("from", "", "Departure city")
		destination = flag.String("to", "", "Arrival city")
		tripType    = flag.String("trip-type", "round_trip", "one_way or round_trip")
		travelDate  = flag.String("date", "", "Travel date (YYYY-MM-DD)")
		days        = flag.Int("days", 0, "Trip length in days")
		travelers   = flag.Int("travelers", 0, "Number of travelers")
		budgetTier  = flag.String("budget", "mid-range", "budget, mid-range or luxury")
	)
	flag.Parse()

	logger.GetLogger().SetJSONFormat(false)
	logger.SetGlobalLevel(logger.WARN)

	env, err := config.LoadEnv()
	if err != nil {
		fatal(err)
	}
	if *configPath == "" {
		*configPath = env.AgentConfigPath
	}

	cfg, err := config.LoadAgentConfig(*configPath)
	if err != nil {
		fatal(err)
	}

	flightRecords, err := dataset.LoadFlights(cfg.Datasets.Flights)
	if err != nil {
		fatal(err)
	}
	hotelRecords, err := dataset.LoadHotels(cfg.Datasets.Hotels)
	if err != nil {
		fatal(err)
	}
	placeRecords, err := dataset.LoadPlaces(cfg.Datasets.Places)
	if err != nil {
		fatal(err)
	}

	a := agent.New(
		catalog.New(flightRecords),
		intent.NewPipeline(nil),
		flights.New(flightRecords),
		hotels.New(hotelRecords),
		places.New(placeRecords),
		weather.New(cfg.Weather),
	)

	state := types.NewTripState()
	state.Started = true
	if *source != "" {
		state.Source = types.StrPtr(catalog.Normalize(*source))
	}
	if *destination != "" {
		state.Destination = types.StrPtr(catalog.Normalize(*destination))
	}
	if *tripType != "" {
		state.TripType = types.StrPtr(*tripType)
	}
	if *travelDate != "" {
		state.TravelDate = types.StrPtr(*travelDate)
	}
	if *days > 0 {
		state.Days = types.IntPtr(*days)
	}
	if *travelers > 0 {
		state.Travelers = types.IntPtr(*travelers)
	}
	if *budgetTier != "" {
		state.Preferences.Budget = types.StrPtr(*budgetTier)
	}

	result := a.AssembleForced(context.Background(), state)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(out))

	if result.Status != types.StatusCompleted {
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
