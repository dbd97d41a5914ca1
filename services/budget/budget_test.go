package budget

import (
	"testing"

	"github.com/tripwise-project/tripwise-agent/types"
)

func TestEstimate_BudgetTier(t *testing.T) {
	est := Estimate(Input{
		Tier:          types.BudgetTierBudget,
		Days:          3,
		Travelers:     2,
		OutboundPrice: 4500,
		ReturnPrice:   5000,
		HotelPerNight: 2500,
	})

	if est.Breakdown.Flight != 19000 {
		t.Errorf("Expected flight 19000, got %d", est.Breakdown.Flight)
	}
	if est.Breakdown.Hotel != 15000 {
		t.Errorf("Expected hotel 15000, got %d", est.Breakdown.Hotel)
	}
	// (400+250+150) * 3 days * 2 travelers
	if est.Breakdown.FoodLocalTravel != 4800 {
		t.Errorf("Expected daily costs 4800, got %d", est.Breakdown.FoodLocalTravel)
	}
	if est.TotalEstimatedCost != 38800 {
		t.Errorf("Expected total 38800, got %d", est.TotalEstimatedCost)
	}
	if est.Currency != "INR" {
		t.Errorf("Expected INR, got %s", est.Currency)
	}
}

func TestEstimate_OneWayHasNoReturnCost(t *testing.T) {
	base := Input{
		Tier:          types.BudgetTierMidRange,
		Days:          2,
		Travelers:     1,
		OutboundPrice: 4000,
		HotelPerNight: 3000,
	}

	est := Estimate(base)
	if est.Breakdown.Flight != 4000 {
		t.Errorf("Expected one-way flight cost 4000, got %d", est.Breakdown.Flight)
	}
}

func TestEstimate_LinearInTravelers(t *testing.T) {
	one := Estimate(Input{Tier: types.BudgetTierLuxury, Days: 4, Travelers: 1, OutboundPrice: 6000, HotelPerNight: 9000})
	three := Estimate(Input{Tier: types.BudgetTierLuxury, Days: 4, Travelers: 3, OutboundPrice: 6000, HotelPerNight: 9000})

	if three.TotalEstimatedCost != 3*one.TotalEstimatedCost {
		t.Errorf("Total must scale linearly with travelers: %d vs 3*%d", three.TotalEstimatedCost, one.TotalEstimatedCost)
	}
}

func TestEstimate_UnknownTierFallsBack(t *testing.T) {
	est := Estimate(Input{Tier: "platinum", Days: 1, Travelers: 1, OutboundPrice: 1000, HotelPerNight: 1000})

	if est.BudgetTier != types.BudgetTierBudget {
		t.Errorf("Expected budget fallback, got %s", est.BudgetTier)
	}
	// 1000 + 1000 + (400+250+150)
	if est.TotalEstimatedCost != 2800 {
		t.Errorf("Expected total 2800, got %d", est.TotalEstimatedCost)
	}
}
