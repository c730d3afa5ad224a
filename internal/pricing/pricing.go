// Package pricing derives subscription prices from a fixed rate table.
// It is a pure calculation layer: no I/O, no hidden state, same inputs
// always produce the same quote.
package pricing

import (
	"fmt"

	"dietbro/internal/models"
)

// DietType is the pricing tier of a subscription.
type DietType string

const (
	DietBalanced    DietType = "Balanced"
	DietHighProtein DietType = "HighProtein"
)

// Day counts a subscription can be bought for.
var validDays = []int{3, 7, 14, 28}

// rateTable maps (diet type, day count) to the per-meal-per-day rate in
// rupees. Exactly these eight combinations are sellable; anything else is
// an invalid selection, never a free tier.
var rateTable = map[DietType]map[int]int{
	DietBalanced: {
		3:  230,
		7:  220,
		14: 205,
		28: 189,
	},
	DietHighProtein: {
		3:  280,
		7:  270,
		14: 245,
		28: 199,
	},
}

// nonVegSurcharge is added per meal per day for non-vegetarian plans.
const nonVegSurcharge = 20

// Quote is the breakdown of a computed subscription price, in rupees.
type Quote struct {
	PerMealRate int `json:"perMealRate"`
	BasePrice   int `json:"basePrice"`
	Surcharge   int `json:"surcharge"`
	Total       int `json:"total"`
}

// MealsPerDay maps a meal plan selection to the number of meals delivered
// each day. Unknown plans return 0.
func MealsPerDay(mealPlan string) int {
	switch mealPlan {
	case models.MealPlanLunch, models.MealPlanDinner:
		return 1
	case models.MealPlanBoth:
		return 2
	}
	return 0
}

// Calculate computes the price of a subscription. It rejects any
// (dietType, days) pair outside the rate table and any meals-per-day value
// outside {1, 2} rather than silently pricing the selection at zero.
func Calculate(diet DietType, days, mealsPerDay int, nonVeg bool) (*Quote, error) {
	rates, ok := rateTable[diet]
	if !ok {
		return nil, fmt.Errorf("unknown diet type %q", diet)
	}
	rate, ok := rates[days]
	if !ok {
		return nil, fmt.Errorf("no %s plan for %d days", diet, days)
	}
	if mealsPerDay != 1 && mealsPerDay != 2 {
		return nil, fmt.Errorf("invalid meals per day: %d", mealsPerDay)
	}

	q := &Quote{PerMealRate: rate}
	q.BasePrice = rate * mealsPerDay * days
	if nonVeg {
		q.Surcharge = nonVegSurcharge * mealsPerDay * days
	}
	q.Total = q.BasePrice + q.Surcharge
	return q, nil
}

// ValidDays returns the sellable day counts, for catalog display.
func ValidDays() []int {
	out := make([]int, len(validDays))
	copy(out, validDays)
	return out
}
