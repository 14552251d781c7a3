package session

import (
	"context"
	"time"

	"advisorly/config"
	expertRepo "advisorly/database/repository/expert"
	requestRepo "advisorly/database/repository/request"
	sessionRepo "advisorly/database/repository/session"
	userRepo "advisorly/database/repository/user"
	"advisorly/models"
	"advisorly/services/monitoring"
	"advisorly/services/notification"
	"advisorly/services/payment"
	"advisorly/services/provisioning"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// SessionService owns the consultation session lifecycle: scheduling,
// activation with payment capture and channel provisioning, completion
// with cost reconciliation, and cancellation with refund.
type SessionService interface {
	ScheduleSession(ctx context.Context, requestID, expertID string, scheduledTime time.Time) (string, error)
	StartSession(ctx context.Context, sessionID, userID, sessionType string) (*models.ConnectionInfo, error)
	EndSession(ctx context.Context, sessionID, userID, summary string, actionItems []string) (*models.Session, error)
	CancelSession(ctx context.Context, sessionID, userID, reason string) error
}

// RoomCloser tears down a provisioned room once its session is over.
type RoomCloser interface {
	CloseRoom(ctx context.Context, roomID string) error
}

// DefaultSessionService is the production implementation.
type DefaultSessionService struct {
	Sessions sessionRepo.SessionRepository
	Experts  expertRepo.ExpertRepository
	Requests requestRepo.RequestRepository
	Users    userRepo.UserRepository

	Payments payment.PaymentGateway
	Notifier notification.NotificationGateway

	Video provisioning.VideoRoomProvisioner
	Phone provisioning.PhoneBridgeProvisioner
	Chat  provisioning.ChatRoomProvisioner
	Rooms RoomCloser

	// Reminders queues scheduled-session reminders; optional.
	Reminders *asynq.Client

	Monitor monitoring.Monitor
	Logger  *zap.Logger

	// Now allows tests to pin the clock. Defaults to time.Now.
	Now func() time.Time

	locks sessionLocks
}

func (s *DefaultSessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func financialTimeout() time.Duration {
	if t := config.FinancialCallTimeout(); t > 0 {
		return t
	}
	return 15 * time.Second
}

func bestEffortTimeout() time.Duration {
	if t := config.BestEffortCallTimeout(); t > 0 {
		return t
	}
	return 10 * time.Second
}

func currency() string {
	if c := config.AppConfig.Currency; c != "" {
		return c
	}
	return "usd"
}
