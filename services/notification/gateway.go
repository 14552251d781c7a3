package notification

import (
	"context"
	"fmt"

	expertRepo "advisorly/database/repository/expert"
	userRepo "advisorly/database/repository/user"
	"advisorly/errs"
	"advisorly/models"
	"advisorly/services/tasks"
	"advisorly/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
)

// DefaultNotificationGateway sends pushes over FCM and hands email/SMS off
// to the asynq delivery worker.
type DefaultNotificationGateway struct {
	Users   userRepo.UserRepository
	Experts expertRepo.ExpertRepository
	Queue   *asynq.Client
}

func NewDefaultNotificationGateway(
	users userRepo.UserRepository,
	experts expertRepo.ExpertRepository,
	queue *asynq.Client,
) (*DefaultNotificationGateway, error) {
	if users == nil || experts == nil {
		return nil, fmt.Errorf("notification gateway initialization error: user or expert repository is nil")
	}
	return &DefaultNotificationGateway{Users: users, Experts: experts, Queue: queue}, nil
}

// SendNotification resolves the recipient's FCM token (user or expert) and
// sends a push. Critical and high priority notifications are flagged for
// immediate delivery on both platforms.
func (g *DefaultNotificationGateway) SendNotification(ctx context.Context, n models.Notification) error {
	token, err := g.resolveToken(n.UserID)
	if err != nil {
		return &errs.ExternalServiceError{Service: "fcm", Err: err}
	}

	data := n.Data
	if data == nil {
		data = map[string]string{}
	}
	data["type"] = n.Type

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Message,
		},
		Data: data,
	}

	if n.Priority == models.PriorityHigh || n.Priority == models.PriorityCritical {
		msg.Android = &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		}
		msg.APNS = &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		}
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return &errs.ExternalServiceError{Service: "fcm", Err: err}
	}
	return nil
}

// SendEmail queues a templated email for the delivery worker.
func (g *DefaultNotificationGateway) SendEmail(ctx context.Context, msg models.EmailMessage) error {
	task, err := tasks.NewEmailTask(msg)
	if err != nil {
		return &errs.ExternalServiceError{Service: "email queue", Err: err}
	}
	if _, err := g.Queue.EnqueueContext(ctx, task); err != nil {
		return &errs.ExternalServiceError{Service: "email queue", Err: err}
	}
	return nil
}

// SendSMS queues a text message for the delivery worker.
func (g *DefaultNotificationGateway) SendSMS(ctx context.Context, msg models.SMSMessage) error {
	task, err := tasks.NewSMSTask(msg)
	if err != nil {
		return &errs.ExternalServiceError{Service: "sms queue", Err: err}
	}
	if _, err := g.Queue.EnqueueContext(ctx, task); err != nil {
		return &errs.ExternalServiceError{Service: "sms queue", Err: err}
	}
	return nil
}

// resolveToken looks the recipient up as a user first, then as an expert.
func (g *DefaultNotificationGateway) resolveToken(id string) (string, error) {
	if u, err := g.Users.GetByID(id); err == nil {
		if u.FCMToken == "" {
			return "", fmt.Errorf("user %s has no FCM token", id)
		}
		return u.FCMToken, nil
	}
	e, err := g.Experts.GetByID(id)
	if err != nil {
		return "", fmt.Errorf("no push target for recipient %s: %w", id, err)
	}
	if e.FCMToken == "" {
		return "", fmt.Errorf("expert %s has no FCM token", id)
	}
	return e.FCMToken, nil
}
