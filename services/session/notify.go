package session

import (
	"context"

	"advisorly/models"

	"go.uber.org/zap"
)

// sendNotification dispatches a push notification on a best-effort basis.
// Failures are logged and recorded, never propagated.
func (s *DefaultSessionService) sendNotification(ctx context.Context, n models.Notification) {
	sendCtx, cancel := context.WithTimeout(ctx, bestEffortTimeout())
	defer cancel()

	if err := s.Notifier.SendNotification(sendCtx, n); err != nil {
		s.Logger.Warn("failed to send session notification",
			zap.String("recipient", n.UserID),
			zap.String("type", n.Type),
			zap.Error(err))
		s.recordError("notification", err)
	}
}

func (s *DefaultSessionService) recordError(scope string, err error) {
	if s.Monitor != nil {
		s.Monitor.RecordError(scope, err)
	}
}
