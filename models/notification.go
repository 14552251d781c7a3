package models

// Notification priorities.
const (
	PriorityNormal   = "normal"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Notification is an in-app/push message for a user or expert.
type Notification struct {
	UserID   string            `json:"userId"`
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Message  string            `json:"message"`
	Data     map[string]string `json:"data,omitempty"`
	Priority string            `json:"priority,omitempty"`
}

// EmailMessage is a templated email dispatched through the delivery worker.
type EmailMessage struct {
	To       string            `json:"to"`
	Subject  string            `json:"subject"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data,omitempty"`
}

// SMSMessage is a plain text message to a phone number.
type SMSMessage struct {
	To      string `json:"to"`
	Message string `json:"message"`
}
