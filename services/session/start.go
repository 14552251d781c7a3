package session

import (
	"context"
	"fmt"

	"advisorly/errs"
	"advisorly/models"
	"advisorly/services/monitoring"

	"go.uber.org/zap"
)

// StartSession activates a scheduled session. Payment is captured before
// anything else changes hands: a failed capture aborts the transition and
// leaves the session untouched. Channel provisioning and notifications are
// best-effort once the money has moved.
func (s *DefaultSessionService) StartSession(ctx context.Context, sessionID, userID, sessionType string) (*models.ConnectionInfo, error) {
	switch sessionType {
	case models.SessionTypeChat, models.SessionTypeVideo, models.SessionTypePhone:
	default:
		return nil, &errs.ValidationError{Field: "sessionType", Reason: "must be chat, video or phone"}
	}

	s.locks.acquire(sessionID)
	defer s.locks.release(sessionID)

	sess, err := s.Sessions.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, &errs.UnauthorizedError{Actor: userID, Resource: "session " + sessionID}
	}
	if sess.Status != models.SessionScheduled {
		return nil, &errs.InvalidStateError{
			Current: sess.Status, Wanted: models.SessionScheduled, Op: "start",
		}
	}

	if sess.PaymentStatus != models.PaymentPaid {
		payCtx, cancel := context.WithTimeout(ctx, financialTimeout())
		invoice, payErr := s.Payments.ProcessPayment(payCtx, models.PaymentRequest{
			UserID:      sess.UserID,
			Amount:      sess.Cost,
			Currency:    currency(),
			Description: fmt.Sprintf("Consultation session %s", sess.ID),
			Metadata:    map[string]string{"sessionId": sess.ID},
		})
		cancel()
		if payErr != nil {
			s.Logger.Error("payment capture failed, session not started",
				zap.String("sessionId", sess.ID), zap.Error(payErr))
			s.recordError("payment", payErr)
			return nil, &errs.PaymentError{Op: "capture", Err: payErr}
		}
		s.Logger.Info("payment captured",
			zap.String("sessionId", sess.ID),
			zap.String("invoiceId", invoice.InvoiceID),
			zap.Float64("amount", invoice.Amount))
	}

	conn := s.provisionChannel(ctx, sess.ID, sessionType)

	now := s.now()
	status := models.SessionActive
	paid := models.PaymentPaid
	update := models.SessionUpdate{
		Status:        &status,
		SessionType:   &sessionType,
		StartTime:     &now,
		PaymentStatus: &paid,
		Connection:    conn,
		UpdatedAt:     &now,
	}
	if err := s.Sessions.UpdateWithVersion(sess.ID, sess.Version, update); err != nil {
		// Payment has already been captured; surface the conflict so the
		// caller retries, the paid flag persists via the next read.
		return nil, fmt.Errorf("failed to activate session: %w", err)
	}

	s.sendNotification(ctx, models.Notification{
		UserID:  sess.ExpertID,
		Type:    "session_started",
		Title:   "Consultation started",
		Message: fmt.Sprintf("Your %s consultation is now live.", sessionType),
		Data:    map[string]string{"sessionId": sess.ID},
	})

	if s.Monitor != nil {
		s.Monitor.RecordMetric(monitoring.MetricSessionsActive, 1, nil)
	}
	return conn, nil
}

// provisionChannel sets up the live channel for the chosen session type.
// Provisioning failures are tolerated: the session still activates and the
// parties can reconnect once the channel recovers.
func (s *DefaultSessionService) provisionChannel(ctx context.Context, sessionID, sessionType string) *models.ConnectionInfo {
	provCtx, cancel := context.WithTimeout(ctx, bestEffortTimeout())
	defer cancel()

	var (
		conn *models.ConnectionInfo
		err  error
	)
	switch sessionType {
	case models.SessionTypeVideo:
		conn, err = s.Video.ProvisionVideoRoom(provCtx, sessionID)
	case models.SessionTypePhone:
		conn, err = s.Phone.ProvisionPhoneBridge(provCtx, sessionID)
	case models.SessionTypeChat:
		conn, err = s.Chat.ProvisionChatRoom(provCtx, sessionID)
	}
	if err != nil {
		s.Logger.Warn("channel provisioning failed",
			zap.String("sessionId", sessionID),
			zap.String("sessionType", sessionType),
			zap.Error(err))
		s.recordError("provisioning", err)
		return nil
	}
	return conn
}
