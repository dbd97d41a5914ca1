// Package budget produces tier-based trip cost estimates in INR.
package budget

import (
	"fmt"

	"github.com/tripwise-project/tripwise-agent/types"
)

// dailyRates are per-person per-day costs for food, local transport and
// miscellaneous spend.
type dailyRates struct {
	food  int
	local int
	misc  int
}

var tierRates = map[string]dailyRates{
	types.BudgetTierBudget:   {food: 400, local: 250, misc: 150},
	types.BudgetTierMidRange: {food: 700, local: 400, misc: 300},
	types.BudgetTierLuxury:   {food: 1200, local: 700, misc: 600},
}

// Input carries everything the estimate needs from the assembled plan.
type Input struct {
	Tier          string
	Days          int
	Travelers     int
	OutboundPrice int
	ReturnPrice   int // zero for one-way trips
	HotelPerNight int
}

// Estimate computes the full trip estimate. An unknown tier falls back
// to the budget rates.
func Estimate(in Input) types.BudgetEstimate {
	tier := in.Tier
	rates, ok := tierRates[tier]
	if !ok {
		tier = types.BudgetTierBudget
		rates = tierRates[tier]
	}

	flight := (in.OutboundPrice + in.ReturnPrice) * in.Travelers
	hotel := in.HotelPerNight * in.Days * in.Travelers
	daily := (rates.food + rates.local + rates.misc) * in.Days * in.Travelers

	return types.BudgetEstimate{
		Breakdown: types.BudgetBreakdown{
			Flight:          flight,
			Hotel:           hotel,
			FoodLocalTravel: daily,
		},
		TotalEstimatedCost: flight + hotel + daily,
		Currency:           "INR",
		BudgetTier:         tier,
		Note: fmt.Sprintf("Estimate for %d traveler(s) over %d day(s) at the %s tier, flights and hotel included",
			in.Travelers, in.Days, tier),
	}
}
