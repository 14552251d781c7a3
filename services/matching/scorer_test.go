package matching

import (
	"math"
	"testing"
	"time"

	"advisorly/models"
)

var scoreNow = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC) // a Wednesday

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreIdealExpert(t *testing.T) {
	expert := models.Expert{
		ID:                "exp-1",
		Specialties:       []string{models.CategoryTrading},
		Languages:         []string{"en"},
		Rating:            4.8,
		YearsOfExperience: 12,
		HourlyRate:        150,
		IsOnline:          true,
	}
	req := models.ConsultationRequest{
		Category: models.CategoryTrading,
		Urgency:  models.UrgencyHigh,
		Budget:   200,
	}

	got := Score(expert, req, nil, scoreNow)

	want := models.ComponentScores{
		Specialty:    1.0,
		Language:     1.0,
		Rating:       0.96,
		Experience:   1.0,
		Availability: 1.0,
		Budget:       1.0,
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"specialty", got.Components.Specialty, want.Specialty},
		{"language", got.Components.Language, want.Language},
		{"rating", got.Components.Rating, want.Rating},
		{"experience", got.Components.Experience, want.Experience},
		{"availability", got.Components.Availability, want.Availability},
		{"budget", got.Components.Budget, want.Budget},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.want) {
			t.Fatalf("%s component = %v, want %v", c.name, c.got, c.want)
		}
	}

	wantTotal := 0.4 + 0.1 + 0.2*0.96 + 0.15 + 0.1 + 0.05
	if !almostEqual(got.Total, wantTotal) {
		t.Fatalf("total = %v, want %v", got.Total, wantTotal)
	}
	if got.Tier != models.TierImmediate {
		t.Fatalf("tier = %q, want %q", got.Tier, models.TierImmediate)
	}
	if len(got.Reasons) == 0 {
		t.Fatalf("expected human-readable reasons for a strong match")
	}
}

func TestScoreRelatedSpecialty(t *testing.T) {
	expert := models.Expert{
		Specialties: []string{models.CategoryInvestment},
		Languages:   []string{"en"},
	}
	req := models.ConsultationRequest{Category: models.CategoryTrading}

	got := Score(expert, req, nil, scoreNow)
	if !almostEqual(got.Components.Specialty, RelatedSpecialtyScore) {
		t.Fatalf("specialty = %v, want %v", got.Components.Specialty, RelatedSpecialtyScore)
	}
}

func TestScoreUnrelatedSpecialty(t *testing.T) {
	expert := models.Expert{
		Specialties: []string{models.CategoryInsurance},
	}
	req := models.ConsultationRequest{Category: models.CategoryTrading}

	got := Score(expert, req, nil, scoreNow)
	if got.Components.Specialty != 0 {
		t.Fatalf("specialty = %v, want 0", got.Components.Specialty)
	}
}

func TestBudgetScore(t *testing.T) {
	cases := []struct {
		name   string
		rate   float64
		budget float64
		want   float64
	}{
		{"within budget", 100, 100, 1.0},
		{"stretch", 115, 100, BudgetStretchScore},
		{"stretch boundary", 120, 100, BudgetStretchScore},
		{"over stretch", 121, 100, 0},
		{"no budget given", 100, 0, 0},
	}
	for _, tc := range cases {
		if got := budgetScore(tc.rate, tc.budget); !almostEqual(got, tc.want) {
			t.Fatalf("%s: budgetScore(%v, %v) = %v, want %v", tc.name, tc.rate, tc.budget, got, tc.want)
		}
	}
}

func TestPreferredLanguageFallback(t *testing.T) {
	req := models.ConsultationRequest{PreferredLanguage: "fr"}
	if got := preferredLanguage(req, nil); got != "fr" {
		t.Fatalf("request preference ignored: got %q", got)
	}

	profile := &models.User{PreferredLanguage: "de"}
	if got := preferredLanguage(models.ConsultationRequest{}, profile); got != "de" {
		t.Fatalf("profile fallback ignored: got %q", got)
	}

	if got := preferredLanguage(models.ConsultationRequest{}, nil); got != DefaultLanguage {
		t.Fatalf("default fallback = %q, want %q", got, DefaultLanguage)
	}
}

func TestScoreExperienceCapped(t *testing.T) {
	expert := models.Expert{YearsOfExperience: 25, Rating: 6.0}
	got := Score(expert, models.ConsultationRequest{Category: models.CategoryGeneral}, nil, scoreNow)
	if got.Components.Experience != 1.0 {
		t.Fatalf("experience = %v, want capped at 1.0", got.Components.Experience)
	}
	if got.Components.Rating != 1.0 {
		t.Fatalf("rating = %v, want capped at 1.0", got.Components.Rating)
	}
}

func TestScoreDeterministic(t *testing.T) {
	expert := models.Expert{
		Specialties:       []string{models.CategoryTax},
		Languages:         []string{"en", "es"},
		Rating:            4.2,
		YearsOfExperience: 7,
		HourlyRate:        90,
		WeeklySchedule: models.WeeklySchedule{
			"wednesday": {{Start: "09:00", End: "17:00"}},
		},
	}
	req := models.ConsultationRequest{
		Category: models.CategoryTax,
		Urgency:  models.UrgencyMedium,
		Budget:   100,
	}

	first := Score(expert, req, nil, scoreNow)
	for i := 0; i < 10; i++ {
		again := Score(expert, req, nil, scoreNow)
		if again.Total != first.Total || again.Components != first.Components {
			t.Fatalf("score not deterministic: run %d got %+v, want %+v", i, again, first)
		}
	}
}
