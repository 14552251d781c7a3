package matching

import (
	"fmt"
	"time"

	"advisorly/models"
)

// Scoring weights. They sum to 1.0 so a total score is always in [0,1].
const (
	SpecialtyWeight    = 0.40
	LanguageWeight     = 0.10
	RatingWeight       = 0.20
	ExperienceWeight   = 0.15
	AvailabilityWeight = 0.10
	BudgetWeight       = 0.05
)

// Component scoring constants.
const (
	RelatedSpecialtyScore = 0.7
	BudgetStretchFactor   = 1.2
	BudgetStretchScore    = 0.7
	MaxRating             = 5.0
	ExperienceCeiling     = 10.0 // years at which the experience component saturates

	// Visibility thresholds for human-readable match reasons.
	HighRatingThreshold   = 4.5
	VeteranYearsThreshold = 10

	DefaultLanguage = "en"
)

// relatedSpecialties maps each category to the categories considered close
// enough for a partial specialty credit.
var relatedSpecialties = map[string][]string{
	models.CategoryTrading:    {models.CategoryInvestment, models.CategoryGeneral},
	models.CategoryInvestment: {models.CategoryTrading, models.CategoryRetirement, models.CategoryGeneral},
	models.CategoryRetirement: {models.CategoryInvestment, models.CategoryTax, models.CategoryGeneral},
	models.CategoryTax:        {models.CategoryRetirement, models.CategoryGeneral},
	models.CategoryInsurance:  {models.CategoryGeneral},
	models.CategoryGeneral: {
		models.CategoryTrading, models.CategoryInvestment, models.CategoryRetirement,
		models.CategoryTax, models.CategoryInsurance,
	},
}

// MatchScore is the outcome of scoring one expert against one request.
type MatchScore struct {
	Total      float64
	Components models.ComponentScores
	Tier       string
	Reasons    []string
}

// Score computes the weighted match score for an expert. The user profile
// supplies the language fallback; missing optional fields contribute the
// lowest score for their factor. Score is pure: identical inputs always
// produce identical output.
func Score(expert models.Expert, req models.ConsultationRequest, profile *models.User, now time.Time) MatchScore {
	var reasons []string

	specialty := specialtyScore(expert, req.Category)
	switch specialty {
	case 1.0:
		reasons = append(reasons, fmt.Sprintf("Specializes in %s", req.Category))
	case RelatedSpecialtyScore:
		reasons = append(reasons, fmt.Sprintf("Covers areas related to %s", req.Category))
	}

	lang := preferredLanguage(req, profile)
	language := 0.0
	if expert.SpeaksLanguage(lang) {
		language = 1.0
	}

	rating := expert.Rating / MaxRating
	if rating > 1 {
		rating = 1
	}
	if expert.Rating >= HighRatingThreshold {
		reasons = append(reasons, fmt.Sprintf("Highly rated (%.1f/5)", expert.Rating))
	}

	experience := float64(expert.YearsOfExperience) / ExperienceCeiling
	if experience > 1 {
		experience = 1
	}
	if expert.YearsOfExperience >= VeteranYearsThreshold {
		reasons = append(reasons, fmt.Sprintf("%d years of experience", expert.YearsOfExperience))
	}

	avail := EstimateAvailability(expert, now)
	if avail.Tier == models.TierImmediate {
		reasons = append(reasons, "Available right now")
	}

	budget := budgetScore(expert.HourlyRate, req.Budget)
	if budget == 1.0 && req.Budget > 0 {
		reasons = append(reasons, "Within your budget")
	}

	components := models.ComponentScores{
		Specialty:    specialty,
		Language:     language,
		Rating:       rating,
		Experience:   experience,
		Availability: avail.Score,
		Budget:       budget,
	}

	total := SpecialtyWeight*specialty +
		LanguageWeight*language +
		RatingWeight*rating +
		ExperienceWeight*experience +
		AvailabilityWeight*avail.Score +
		BudgetWeight*budget

	return MatchScore{
		Total:      total,
		Components: components,
		Tier:       avail.Tier,
		Reasons:    reasons,
	}
}

// specialtyScore gives full credit for an exact category match and partial
// credit when the expert covers a related category.
func specialtyScore(expert models.Expert, category string) float64 {
	for _, s := range expert.Specialties {
		if s == category {
			return 1.0
		}
	}
	for _, related := range relatedSpecialties[category] {
		for _, s := range expert.Specialties {
			if s == related {
				return RelatedSpecialtyScore
			}
		}
	}
	return 0
}

// budgetScore gives full credit within budget and partial credit up to a
// 20% stretch.
func budgetScore(hourlyRate, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	switch {
	case hourlyRate <= budget:
		return 1.0
	case hourlyRate <= budget*BudgetStretchFactor:
		return BudgetStretchScore
	default:
		return 0
	}
}

// preferredLanguage resolves the language to match against: the request's
// preference, then the user profile's, then English.
func preferredLanguage(req models.ConsultationRequest, profile *models.User) string {
	if req.PreferredLanguage != "" {
		return req.PreferredLanguage
	}
	if profile != nil && profile.PreferredLanguage != "" {
		return profile.PreferredLanguage
	}
	return DefaultLanguage
}
