package models

import "time"

// Consultation categories.
const (
	CategoryTrading    = "trading"
	CategoryInvestment = "investment"
	CategoryRetirement = "retirement"
	CategoryTax        = "tax"
	CategoryInsurance  = "insurance"
	CategoryGeneral    = "general"
)

// Urgency levels for a consultation request.
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// ConsultationRequest is a user's request for expert consultation. It is
// created upstream and read-only to the matching and session services.
type ConsultationRequest struct {
	ID                string    `bson:"id" json:"id"`
	UserID            string    `bson:"userId" json:"userId"`
	Category          string    `bson:"category" json:"category"`
	Urgency           string    `bson:"urgency" json:"urgency"`
	Budget            float64   `bson:"budget" json:"budget"`
	PreferredLanguage string    `bson:"preferredLanguage,omitempty" json:"preferredLanguage,omitempty"`
	Description       string    `bson:"description" json:"description"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt,omitzero"`
}
