package notification

import (
	"context"

	"advisorly/models"
)

// NotificationGateway dispatches messages to users and experts. All methods
// are fire-and-forget from the caller's perspective: a returned error means
// the dispatch could not be handed off, and callers on best-effort paths
// log it and continue.
type NotificationGateway interface {
	SendNotification(ctx context.Context, n models.Notification) error
	SendEmail(ctx context.Context, msg models.EmailMessage) error
	SendSMS(ctx context.Context, msg models.SMSMessage) error
}
