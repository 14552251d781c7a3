package tasks

import (
	"encoding/json"
	"time"

	"advisorly/models"

	"github.com/hibiken/asynq"
)

// Queued task types handled by the delivery worker.
const (
	TypeSendReminder = "reminder:send"
	TypeSendEmail    = "email:send"
	TypeSendSMS      = "sms:send"
)

// NewReminderTask queues a session reminder to fire at the given time.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// NewEmailTask queues an email for the delivery worker.
func NewEmailTask(msg models.EmailMessage) (*asynq.Task, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendEmail, b), nil
}

// NewSMSTask queues an SMS for the delivery worker.
func NewSMSTask(msg models.SMSMessage) (*asynq.Task, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendSMS, b), nil
}
