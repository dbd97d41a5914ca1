package types

// TurnStatus enumerates the outcomes of one processed utterance.
type TurnStatus string

const (
	// StatusNeedInput means the agent needs another answer from the user.
	StatusNeedInput TurnStatus = "NEED_INPUT"
	// StatusFormError is emitted only in non-interactive mode when the
	// assembly cannot proceed without a form change.
	StatusFormError TurnStatus = "FORM_ERROR"
	// StatusCompleted means the plan was assembled.
	StatusCompleted TurnStatus = "COMPLETED"
)

// TurnResult is the state machine's only public output.
type TurnResult struct {
	Status   TurnStatus `json:"status"`
	Question string     `json:"question,omitempty"`
	Message  string     `json:"message,omitempty"`
	State    *TripState `json:"final_state,omitempty"`
	Plan     *TripPlan  `json:"trip_plan,omitempty"`
}

// Flight is one enriched direct flight.
type Flight struct {
	FlightID      string `json:"flight_id"`
	Airline       string `json:"airline"`
	From          string `json:"from"`
	To            string `json:"to"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	Price         int    `json:"price"`
	Duration      string `json:"duration"`
	TimeOfDay     string `json:"time_of_day"`
	IsCheapest    bool   `json:"is_cheapest"`
	IsFastest     bool   `json:"is_fastest"`
}

// FlightSegment is one leg of a connecting itinerary.
type FlightSegment struct {
	Airline       string `json:"airline"`
	From          string `json:"from"`
	To            string `json:"to"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	Price         int    `json:"price"`
}

// ConnectingFlight is a two-leg itinerary through an intermediate city.
type ConnectingFlight struct {
	Route         string          `json:"route"`
	TotalPrice    int             `json:"total_price"`
	TotalDuration string          `json:"total_duration"`
	Segments      []FlightSegment `json:"segments"`
}

// PriceRange bounds the prices seen in a result set.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FlightFilters describes the filter options available for a route.
type FlightFilters struct {
	Airlines   []string   `json:"airlines"`
	TimeOfDay  []string   `json:"time_of_day"`
	PriceRange PriceRange `json:"price_range"`
}

// FlightResult is the full flight search response for one route.
type FlightResult struct {
	DirectFlights     []Flight           `json:"direct_flights"`
	ConnectingFlights []ConnectingFlight `json:"connecting_flights"`
	AvailableWeekdays []string           `json:"available_weekdays"`
	Message           string             `json:"flight_message,omitempty"`
	Filters           FlightFilters      `json:"filters"`
}

// Hotel is one enriched hotel entry.
type Hotel struct {
	HotelID       string   `json:"hotel_id"`
	Name          string   `json:"name"`
	City          string   `json:"city"`
	Stars         int      `json:"stars"`
	PricePerNight int      `json:"price_per_night"`
	Amenities     []string `json:"amenities"`
	IsCheapest    bool     `json:"is_cheapest"`
	IsBestRated   bool     `json:"is_best_rated"`
}

// HotelFilters describes the filter options available for a city.
type HotelFilters struct {
	PriceRange PriceRange `json:"price_range"`
	Stars      []int      `json:"stars"`
	Amenities  []string   `json:"amenities"`
}

// HotelResult is the hotel search response.
type HotelResult struct {
	Hotels  []Hotel      `json:"hotels"`
	Filters HotelFilters `json:"filters"`
}

// Place is one point of interest.
type Place struct {
	PlaceID    string  `json:"place_id"`
	Name       string  `json:"name"`
	City       string  `json:"city"`
	Type       string  `json:"type"`
	Rating     float64 `json:"rating"`
	IsTopRated bool    `json:"is_top_rated"`
}

// RatingRange bounds the ratings seen in a result set.
type RatingRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PlaceFilters describes the filter options available for a city.
type PlaceFilters struct {
	Types       []string    `json:"types"`
	RatingRange RatingRange `json:"rating_range"`
}

// PlaceResult is the places search response.
type PlaceResult struct {
	Places  []Place      `json:"places"`
	Filters PlaceFilters `json:"filters"`
}

// DailyForecast is one day of weather.
type DailyForecast struct {
	Date            string  `json:"date"`
	TempMax         float64 `json:"temp_max"`
	TempMin         float64 `json:"temp_min"`
	Condition       string  `json:"condition"`
	RainProbability int     `json:"rain_probability"`
	RiskScore       int     `json:"risk_score"`
	ComfortIndex    int     `json:"comfort_index"`
}

// WeatherReport covers the trip window: a daily forecast inside the
// near-term horizon, or a seasonal outlook beyond it.
type WeatherReport struct {
	Supported       bool            `json:"supported"`
	City            string          `json:"city"`
	StartDate       string          `json:"start_date,omitempty"`
	EndDate         string          `json:"end_date,omitempty"`
	Summary         string          `json:"summary,omitempty"`
	SeasonalOutlook string          `json:"seasonal_outlook,omitempty"`
	Confidence      string          `json:"confidence,omitempty"`
	RiskScore       int             `json:"weather_risk_score"`
	RainProbability int             `json:"rain_probability_avg"`
	BestDay         string          `json:"best_day_to_travel,omitempty"`
	Note            string          `json:"note,omitempty"`
	DailyForecast   []DailyForecast `json:"daily_forecast"`
}

// BudgetBreakdown splits the estimate by cost category.
type BudgetBreakdown struct {
	Flight          int `json:"flight"`
	Hotel           int `json:"hotel"`
	FoodLocalTravel int `json:"food_local_travel"`
}

// BudgetEstimate is the tier-based trip cost estimate.
type BudgetEstimate struct {
	Breakdown          BudgetBreakdown `json:"breakdown"`
	TotalEstimatedCost int             `json:"total_estimated_cost"`
	Currency           string          `json:"currency"`
	BudgetTier         string          `json:"budget_tier"`
	Note               string          `json:"note,omitempty"`
}

// ItineraryDay is one day of the generated narrative.
type ItineraryDay struct {
	Day  string `json:"day"`
	Date string `json:"date"`
	Plan string `json:"plan"`
}

// FlightPlan bundles the chosen outbound and return flights.
type FlightPlan struct {
	Outbound *Flight `json:"outbound"`
	Return   *Flight `json:"return"`
}

// TripPlan is the assembled plan bundle returned on completion.
type TripPlan struct {
	Flight    FlightPlan      `json:"flight"`
	Hotel     *Hotel          `json:"hotel"`
	Places    []Place         `json:"places"`
	Weather   *WeatherReport  `json:"weather"`
	Budget    *BudgetEstimate `json:"budget_estimate"`
	Itinerary []ItineraryDay  `json:"day_wise_itinerary"`
}
