package session

import (
	"context"
	"fmt"
	"math"
	"time"

	"advisorly/errs"
	"advisorly/models"
	"advisorly/services/monitoring"

	"go.uber.org/zap"
)

// minBillableMinutes is the billing floor for a completed session.
const minBillableMinutes = 15

// EndSession completes an active session. The final cost is recomputed from
// actual duration at the expert's hourly rate with a billing floor, and any
// difference from the captured amount is settled before the session is
// marked completed. Payment failures abort: the session stays active and no
// money half-moves.
func (s *DefaultSessionService) EndSession(ctx context.Context, sessionID, userID, summary string, actionItems []string) (*models.Session, error) {
	s.locks.acquire(sessionID)
	defer s.locks.release(sessionID)

	sess, err := s.Sessions.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID && sess.ExpertID != userID {
		return nil, &errs.UnauthorizedError{Actor: userID, Resource: "session " + sessionID}
	}
	if sess.Status != models.SessionActive {
		return nil, &errs.InvalidStateError{
			Current: sess.Status, Wanted: models.SessionActive, Op: "end",
		}
	}

	now := s.now()
	duration := 0
	if sess.StartTime != nil {
		duration = int(math.Round(now.Sub(*sess.StartTime).Minutes()))
	}

	expert, err := s.Experts.GetByID(sess.ExpertID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expert for billing: %w", err)
	}

	finalCost := finalSessionCost(duration, expert.HourlyRate)
	if err := s.settleDifference(ctx, sess, finalCost); err != nil {
		return nil, err
	}

	recordingURL, transcriptURL := sessionArtifacts(sess)
	report := buildReport(sess.ID, summary, actionItems, duration, now)

	status := models.SessionCompleted
	update := models.SessionUpdate{
		Status:          &status,
		EndTime:         &now,
		DurationMinutes: &duration,
		Cost:            &finalCost,
		Summary:         &summary,
		ActionItems:     &actionItems,
		RecordingURL:    &recordingURL,
		TranscriptURL:   &transcriptURL,
		Report:          report,
		UpdatedAt:       &now,
	}
	if err := s.Sessions.UpdateWithVersion(sess.ID, sess.Version, update); err != nil {
		return nil, fmt.Errorf("failed to complete session: %w", err)
	}

	sess.Status = status
	sess.EndTime = &now
	sess.DurationMinutes = duration
	sess.Cost = finalCost
	sess.Summary = summary
	sess.ActionItems = actionItems
	sess.RecordingURL = recordingURL
	sess.TranscriptURL = transcriptURL
	sess.Report = report
	sess.UpdatedAt = now
	sess.Version++

	s.finishCleanup(ctx, sess)
	return sess, nil
}

// finalSessionCost bills actual minutes at the expert's hourly rate with a
// 15 minute floor, rounded to whole currency units.
func finalSessionCost(durationMinutes int, hourlyRate float64) float64 {
	billable := durationMinutes
	if billable < minBillableMinutes {
		billable = minBillableMinutes
	}
	return math.Round(float64(billable) / 60 * hourlyRate)
}

// settleDifference reconciles the captured amount against the final cost:
// an extra charge when the session ran long, a partial refund when it ended
// early. Either call is strict.
func (s *DefaultSessionService) settleDifference(ctx context.Context, sess *models.Session, finalCost float64) error {
	diff := finalCost - sess.Cost
	if diff == 0 {
		return nil
	}

	payCtx, cancel := context.WithTimeout(ctx, financialTimeout())
	defer cancel()

	if diff > 0 {
		_, err := s.Payments.ProcessPayment(payCtx, models.PaymentRequest{
			UserID:      sess.UserID,
			Amount:      diff,
			Currency:    currency(),
			Description: fmt.Sprintf("Consultation session %s overtime", sess.ID),
			Metadata:    map[string]string{"sessionId": sess.ID, "kind": "adjustment"},
		})
		if err != nil {
			s.Logger.Error("overtime charge failed, session stays active",
				zap.String("sessionId", sess.ID),
				zap.Float64("amount", diff), zap.Error(err))
			s.recordError("payment", err)
			return &errs.PaymentError{Op: "adjustment", Err: err}
		}
		return nil
	}

	err := s.Payments.ProcessRefund(payCtx, models.RefundRequest{
		UserID:    sess.UserID,
		Amount:    -diff,
		Reason:    "ended early",
		SessionID: sess.ID,
	})
	if err != nil {
		s.Logger.Error("partial refund failed, session stays active",
			zap.String("sessionId", sess.ID),
			zap.Float64("amount", -diff), zap.Error(err))
		s.recordError("payment", err)
		return &errs.PaymentError{Op: "refund", Err: err}
	}
	return nil
}

// sessionArtifacts derives the media artifact locations for a finished
// session. Chat sessions produce a transcript only; video and phone also
// produce a recording.
func sessionArtifacts(sess *models.Session) (recordingURL, transcriptURL string) {
	transcriptURL = fmt.Sprintf("https://media.advisorly.app/transcripts/%s.txt", sess.ID)
	if sess.SessionType == models.SessionTypeChat {
		return "", transcriptURL
	}
	recordingURL = fmt.Sprintf("https://media.advisorly.app/recordings/%s.mp4", sess.ID)
	return recordingURL, transcriptURL
}

// buildReport assembles the post-session report. A follow-up is advised
// whenever the expert left action items behind or the session ran short.
func buildReport(sessionID, summary string, actionItems []string, durationMinutes int, generatedAt time.Time) *models.SessionReport {
	nextSteps := make([]string, 0, len(actionItems)+1)
	for _, item := range actionItems {
		nextSteps = append(nextSteps, "Complete: "+item)
	}
	followUp := len(actionItems) > 0 || durationMinutes < minBillableMinutes
	if followUp {
		nextSteps = append(nextSteps, "Book a follow-up consultation to review progress")
	}
	return &models.SessionReport{
		SessionID:       sessionID,
		Summary:         summary,
		ActionItems:     actionItems,
		NextSteps:       nextSteps,
		FollowUpAdvised: followUp,
		GeneratedAt:     generatedAt,
	}
}

// finishCleanup runs the best-effort tail of completion: notify both
// parties, release the calendar hold, bump the expert's tally, close the
// live room and update gauges. None of these can fail the completion.
func (s *DefaultSessionService) finishCleanup(ctx context.Context, sess *models.Session) {
	s.sendNotification(ctx, models.Notification{
		UserID:  sess.UserID,
		Type:    "session_completed",
		Title:   "Consultation complete",
		Message: fmt.Sprintf("Your %d minute consultation is complete. Final cost $%.2f. Your report is ready.", sess.DurationMinutes, sess.Cost),
		Data:    map[string]string{"sessionId": sess.ID},
	})
	s.sendNotification(ctx, models.Notification{
		UserID:  sess.ExpertID,
		Type:    "session_completed",
		Title:   "Consultation complete",
		Message: fmt.Sprintf("Session complete. You earned $%.2f.", sess.Cost),
		Data:    map[string]string{"sessionId": sess.ID},
	})

	if err := s.Experts.IncrementCompletedSessions(sess.ExpertID); err != nil {
		s.Logger.Warn("failed to bump expert session tally",
			zap.String("expertId", sess.ExpertID), zap.Error(err))
		s.recordError("expert_update", err)
	}
	if err := s.Experts.RemoveAvailabilityHold(sess.ExpertID, sess.ID); err != nil {
		s.Logger.Warn("failed to release calendar hold",
			zap.String("sessionId", sess.ID), zap.Error(err))
		s.recordError("calendar_hold", err)
	}

	s.closeRoom(ctx, sess)

	if s.Monitor != nil {
		s.Monitor.RecordMetric(monitoring.MetricSessionsActive, -1, nil)
		s.Monitor.RecordMetric(monitoring.MetricSessionsCompleted, 1,
			map[string]string{"sessionType": sess.SessionType})
	}
}

// closeRoom tears down the live channel if one was provisioned.
func (s *DefaultSessionService) closeRoom(ctx context.Context, sess *models.Session) {
	if s.Rooms == nil || sess.Connection == nil || sess.Connection.RoomID == "" {
		return
	}
	closeCtx, cancel := context.WithTimeout(ctx, bestEffortTimeout())
	defer cancel()
	if err := s.Rooms.CloseRoom(closeCtx, sess.Connection.RoomID); err != nil {
		s.Logger.Warn("failed to close session room",
			zap.String("sessionId", sess.ID),
			zap.String("roomId", sess.Connection.RoomID), zap.Error(err))
		s.recordError("provisioning", err)
	}
}
