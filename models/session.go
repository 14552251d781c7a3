package models

import "time"

// Session lifecycle states. The only legal transitions are
// scheduled→active, active→completed, active→cancelled and
// scheduled→cancelled.
const (
	SessionScheduled = "scheduled"
	SessionActive    = "active"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

// Session channel types.
const (
	SessionTypeChat  = "chat"
	SessionTypeVideo = "video"
	SessionTypePhone = "phone"
)

// Payment states for a session.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// ConnectionInfo describes the live channel provisioned for an active
// session: a video room, phone bridge or chat room plus join credentials.
type ConnectionInfo struct {
	Channel     string `bson:"channel" json:"channel"` // "video", "phone" or "chat"
	RoomID      string `bson:"roomId" json:"roomId"`
	JoinToken   string `bson:"joinToken" json:"joinToken"`
	ExpertToken string `bson:"expertToken" json:"-"`
	DialNumber  string `bson:"dialNumber,omitempty" json:"dialNumber,omitempty"`
}

// SessionReport is generated when a session completes: next steps for the
// user plus follow-up recommendations.
type SessionReport struct {
	SessionID       string    `bson:"sessionId" json:"sessionId"`
	Summary         string    `bson:"summary" json:"summary"`
	ActionItems     []string  `bson:"actionItems" json:"actionItems"`
	NextSteps       []string  `bson:"nextSteps" json:"nextSteps"`
	FollowUpAdvised bool      `bson:"followUpAdvised" json:"followUpAdvised"`
	GeneratedAt     time.Time `bson:"generatedAt" json:"generatedAt"`
}

// Session is a paid consultation between a user and an expert.
type Session struct {
	ID              string          `bson:"id" json:"id"`
	RequestID       string          `bson:"requestId" json:"requestId"`
	ExpertID        string          `bson:"expertId" json:"expertId"`
	UserID          string          `bson:"userId" json:"userId"`
	SessionType     string          `bson:"sessionType,omitempty" json:"sessionType,omitempty"`
	Status          string          `bson:"status" json:"status"`
	ScheduledTime   time.Time       `bson:"scheduledTime" json:"scheduledTime"`
	StartTime       *time.Time      `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime         *time.Time      `bson:"endTime,omitempty" json:"endTime,omitempty"`
	DurationMinutes int             `bson:"durationMinutes" json:"durationMinutes"`
	Cost            float64         `bson:"cost" json:"cost"`
	PaymentStatus   string          `bson:"paymentStatus" json:"paymentStatus"`
	Summary         string          `bson:"summary,omitempty" json:"summary,omitempty"`
	ActionItems     []string        `bson:"actionItems,omitempty" json:"actionItems,omitempty"`
	RecordingURL    string          `bson:"recordingUrl,omitempty" json:"recordingUrl,omitempty"`
	TranscriptURL   string          `bson:"transcriptUrl,omitempty" json:"transcriptUrl,omitempty"`
	Connection      *ConnectionInfo `bson:"connection,omitempty" json:"connection,omitempty"`
	Report          *SessionReport  `bson:"report,omitempty" json:"report,omitempty"`
	Version         int64           `bson:"version" json:"-"`
	CreatedAt       time.Time       `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt       time.Time       `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// SessionUpdate is a typed partial update applied to a persisted session.
// Nil fields are left untouched.
type SessionUpdate struct {
	Status          *string         `bson:"status,omitempty"`
	SessionType     *string         `bson:"sessionType,omitempty"`
	StartTime       *time.Time      `bson:"startTime,omitempty"`
	EndTime         *time.Time      `bson:"endTime,omitempty"`
	DurationMinutes *int            `bson:"durationMinutes,omitempty"`
	Cost            *float64        `bson:"cost,omitempty"`
	PaymentStatus   *string         `bson:"paymentStatus,omitempty"`
	Summary         *string         `bson:"summary,omitempty"`
	ActionItems     *[]string       `bson:"actionItems,omitempty"`
	RecordingURL    *string         `bson:"recordingUrl,omitempty"`
	TranscriptURL   *string         `bson:"transcriptUrl,omitempty"`
	Connection      *ConnectionInfo `bson:"connection,omitempty"`
	Report          *SessionReport  `bson:"report,omitempty"`
	UpdatedAt       *time.Time      `bson:"updatedAt,omitempty"`
}
