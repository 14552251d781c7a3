package models

import (
	"time"
)

// ScheduleWindow is a single working window within a weekday, using
// 24h "HH:MM" wall-clock times.
type ScheduleWindow struct {
	Start string `bson:"start" json:"start"` // e.g. "09:00"
	End   string `bson:"end" json:"end"`     // e.g. "17:30"
}

// WeeklySchedule maps a lowercase weekday name ("monday") to the expert's
// working windows for that day. Days with no windows may be omitted.
type WeeklySchedule map[string][]ScheduleWindow

// ExpertProfile holds the public-facing identity of an expert.
type ExpertProfile struct {
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email,omitempty"`
	PhoneNumber  string `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	ProfileImage string `bson:"profileImage" json:"profileImage,omitempty"`
	Bio          string `bson:"bio" json:"bio,omitempty"`
}

// AvailabilityHold reserves an expert's time around a scheduled session so
// the slot is not offered twice. Released when the session is cancelled.
type AvailabilityHold struct {
	SessionID string    `bson:"sessionId" json:"sessionId"`
	HeldAt    time.Time `bson:"heldAt" json:"heldAt"`
	StartTime time.Time `bson:"startTime" json:"startTime"`
}

// Expert represents a financial expert in the directory. Expert documents
// are treated as read-only snapshots during matching and session operations.
type Expert struct {
	ID                string             `bson:"id" json:"id"`
	Profile           ExpertProfile      `bson:"profile" json:"profile"`
	Specialties       []string           `bson:"specialties" json:"specialties"`
	Languages         []string           `bson:"languages" json:"languages"`
	Rating            float64            `bson:"rating" json:"rating"` // 0–5
	YearsOfExperience int                `bson:"yearsOfExperience" json:"yearsOfExperience"`
	HourlyRate        float64            `bson:"hourlyRate" json:"hourlyRate"`
	IsOnline          bool               `bson:"isOnline" json:"isOnline"`
	WeeklySchedule    WeeklySchedule     `bson:"weeklySchedule" json:"weeklySchedule,omitempty"`
	AvailabilityHolds []AvailabilityHold `bson:"availabilityHolds,omitempty" json:"availabilityHolds,omitempty"`
	FCMToken          string             `bson:"fcmToken,omitempty" json:"-"`
	CompletedSessions int                `bson:"completedSessions" json:"completedSessions,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// SpeaksLanguage reports whether the expert lists the given language code.
func (e Expert) SpeaksLanguage(lang string) bool {
	for _, l := range e.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// HasSchedule reports whether the expert has any working window configured.
func (e Expert) HasSchedule() bool {
	for _, windows := range e.WeeklySchedule {
		if len(windows) > 0 {
			return true
		}
	}
	return false
}
