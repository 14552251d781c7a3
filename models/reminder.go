package models

// ReminderPayload is the queued payload for a scheduled-session reminder.
type ReminderPayload struct {
	SessionID string `json:"sessionId"`
	Target    string `json:"target"` // "user" or "expert"
	TargetID  string `json:"targetId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	FireDate  string `json:"fireDate"`
}
