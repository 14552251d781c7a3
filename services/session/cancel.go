package session

import (
	"context"
	"fmt"

	"advisorly/errs"
	"advisorly/models"
	"advisorly/services/monitoring"

	"go.uber.org/zap"
)

// CancelSession cancels a scheduled or active session. If payment was
// already captured, the full amount is refunded before the state changes; a
// failed refund aborts the cancellation entirely.
func (s *DefaultSessionService) CancelSession(ctx context.Context, sessionID, userID, reason string) error {
	s.locks.acquire(sessionID)
	defer s.locks.release(sessionID)

	sess, err := s.Sessions.GetByID(sessionID)
	if err != nil {
		return err
	}
	if sess.UserID != userID && sess.ExpertID != userID {
		return &errs.UnauthorizedError{Actor: userID, Resource: "session " + sessionID}
	}
	if sess.Status != models.SessionScheduled && sess.Status != models.SessionActive {
		return &errs.InvalidStateError{
			Current: sess.Status, Wanted: models.SessionScheduled, Op: "cancel",
		}
	}

	paymentStatus := sess.PaymentStatus
	if sess.PaymentStatus == models.PaymentPaid {
		refundCtx, cancel := context.WithTimeout(ctx, financialTimeout())
		refundErr := s.Payments.ProcessRefund(refundCtx, models.RefundRequest{
			UserID:    sess.UserID,
			Amount:    sess.Cost,
			Reason:    "session cancelled: " + reason,
			SessionID: sess.ID,
		})
		cancel()
		if refundErr != nil {
			s.Logger.Error("cancellation refund failed, session unchanged",
				zap.String("sessionId", sess.ID), zap.Error(refundErr))
			s.recordError("payment", refundErr)
			return &errs.PaymentError{Op: "refund", Err: refundErr}
		}
		paymentStatus = models.PaymentRefunded
	}

	now := s.now()
	status := models.SessionCancelled
	update := models.SessionUpdate{
		Status:        &status,
		PaymentStatus: &paymentStatus,
		Summary:       &reason,
		UpdatedAt:     &now,
	}
	if sess.Status == models.SessionActive {
		update.EndTime = &now
	}
	if err := s.Sessions.UpdateWithVersion(sess.ID, sess.Version, update); err != nil {
		return fmt.Errorf("failed to cancel session: %w", err)
	}

	wasActive := sess.Status == models.SessionActive

	counterpart := sess.ExpertID
	if userID == sess.ExpertID {
		counterpart = sess.UserID
	}
	s.sendNotification(ctx, models.Notification{
		UserID:  counterpart,
		Type:    "session_cancelled",
		Title:   "Consultation cancelled",
		Message: fmt.Sprintf("The consultation was cancelled: %s", reason),
		Data:    map[string]string{"sessionId": sess.ID},
	})

	if err := s.Experts.RemoveAvailabilityHold(sess.ExpertID, sess.ID); err != nil {
		s.Logger.Warn("failed to release calendar hold",
			zap.String("sessionId", sess.ID), zap.Error(err))
		s.recordError("calendar_hold", err)
	}

	if wasActive {
		s.closeRoom(ctx, sess)
	}

	if s.Monitor != nil {
		if wasActive {
			s.Monitor.RecordMetric(monitoring.MetricSessionsActive, -1, nil)
		}
		s.Monitor.RecordMetric(monitoring.MetricSessionsCancelled, 1,
			map[string]string{"from": sess.Status})
	}
	return nil
}
