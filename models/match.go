package models

// Availability tiers shown to users, derived from the availability score.
const (
	TierImmediate  = "immediate"
	TierWithinHour = "within_hour"
	TierWithinDay  = "within_day"
	TierScheduled  = "scheduled"
)

// ComponentScores breaks a match score down by factor. Every component is
// in [0,1] before weighting.
type ComponentScores struct {
	Specialty    float64 `json:"specialty"`
	Language     float64 `json:"language"`
	Rating       float64 `json:"rating"`
	Experience   float64 `json:"experience"`
	Availability float64 `json:"availability"`
	Budget       float64 `json:"budget"`
}

// ExpertMatch is the transient result of scoring one expert against one
// consultation request. It is returned to callers and never persisted.
type ExpertMatch struct {
	ExpertID         string          `json:"expertId"`
	TotalScore       float64         `json:"totalScore"`
	ComponentScores  ComponentScores `json:"componentScores"`
	AvailabilityTier string          `json:"availabilityTier"`
	EstimatedCost    float64         `json:"estimatedCost"`
	Reasons          []string        `json:"reasons"`
}
