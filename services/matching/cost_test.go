package matching

import (
	"testing"

	"advisorly/models"
)

func TestEstimateCost(t *testing.T) {
	cases := []struct {
		name     string
		rate     float64
		category string
		urgency  string
		want     float64
	}{
		{"trading high", 150, models.CategoryTrading, models.UrgencyHigh, 90},           // 150 * 0.5 * 1.2
		{"investment medium", 150, models.CategoryInvestment, models.UrgencyMedium, 150}, // 150 * 1.0
		{"retirement critical", 100, models.CategoryRetirement, models.UrgencyCritical, 112.5}, // 100 * 0.75 * 1.5
		{"investment low", 100, models.CategoryInvestment, models.UrgencyLow, 150},       // 100 * 1.5
		{"insurance medium", 80, models.CategoryInsurance, models.UrgencyMedium, 60},     // 80 * 0.75
		{"unknown category", 100, "estate", models.UrgencyMedium, 100},                   // default 1h
	}
	for _, tc := range cases {
		if got := EstimateCost(tc.rate, tc.category, tc.urgency); got != tc.want {
			t.Fatalf("%s: EstimateCost(%v, %q, %q) = %v, want %v",
				tc.name, tc.rate, tc.category, tc.urgency, got, tc.want)
		}
	}
}

func TestEstimateCostRoundedToCents(t *testing.T) {
	// 133.33 * 0.5 * 1.2 = 79.998, rounds to 80.00
	if got := EstimateCost(133.33, models.CategoryTrading, models.UrgencyHigh); got != 80 {
		t.Fatalf("EstimateCost = %v, want 80", got)
	}
}

func TestEstimateDurationHours(t *testing.T) {
	if got := EstimateDurationHours(models.CategoryRetirement, models.UrgencyCritical); got != 0.75 {
		t.Fatalf("critical retirement duration = %v, want 0.75", got)
	}
	if got := EstimateDurationHours(models.CategoryTrading, models.UrgencyLow); got != 0.75 {
		t.Fatalf("low trading duration = %v, want 0.75", got)
	}
	if got := EstimateDurationHours(models.CategoryTax, models.UrgencyMedium); got != 1.0 {
		t.Fatalf("medium tax duration = %v, want 1.0", got)
	}
}
