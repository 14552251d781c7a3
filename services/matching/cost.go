package matching

import (
	"math"

	"advisorly/models"
)

// baseDurationHours is the expected consultation length per category.
var baseDurationHours = map[string]float64{
	models.CategoryTrading:    0.5,
	models.CategoryInvestment: 1.0,
	models.CategoryRetirement: 1.5,
	models.CategoryTax:        1.0,
	models.CategoryInsurance:  0.75,
	models.CategoryGeneral:    0.5,
}

const defaultDurationHours = 1.0

// Urgency adjustments: critical consultations run short and cost more;
// low-urgency ones run long at the normal rate.
const (
	CriticalDurationFactor = 0.5
	LowDurationFactor      = 1.5
	CriticalPriceFactor    = 1.5
	HighPriceFactor        = 1.2
)

// EstimateDurationHours returns the expected session length for a category
// and urgency.
func EstimateDurationHours(category, urgency string) float64 {
	hours, ok := baseDurationHours[category]
	if !ok {
		hours = defaultDurationHours
	}
	switch urgency {
	case models.UrgencyCritical:
		hours *= CriticalDurationFactor
	case models.UrgencyLow:
		hours *= LowDurationFactor
	}
	return hours
}

// urgencyPriceMultiplier prices urgency into the estimate.
func urgencyPriceMultiplier(urgency string) float64 {
	switch urgency {
	case models.UrgencyCritical:
		return CriticalPriceFactor
	case models.UrgencyHigh:
		return HighPriceFactor
	default:
		return 1.0
	}
}

// EstimateCost is the canonical cost estimate used both for match results
// and for scheduling: hourly rate times the expected duration for the
// category/urgency, times the urgency price multiplier. Rounded to cents.
func EstimateCost(hourlyRate float64, category, urgency string) float64 {
	cost := hourlyRate * EstimateDurationHours(category, urgency) * urgencyPriceMultiplier(urgency)
	return math.Round(cost*100) / 100
}
