package session

import (
	"context"
	"fmt"
	"time"

	"advisorly/errs"
	"advisorly/models"
	"advisorly/services/matching"
	"advisorly/services/monitoring"
	"advisorly/services/tasks"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// reminderLead is how long before the scheduled time reminders fire.
const reminderLead = 30 * time.Minute

// ScheduleSession validates the expert's availability at the requested
// time, creates the session in the scheduled state with an estimated cost,
// places a calendar hold on the expert, and notifies both parties.
func (s *DefaultSessionService) ScheduleSession(ctx context.Context, requestID, expertID string, scheduledTime time.Time) (string, error) {
	req, err := s.Requests.GetByID(requestID)
	if err != nil {
		return "", err
	}
	expert, err := s.Experts.GetByID(expertID)
	if err != nil {
		return "", err
	}

	now := s.now()
	if !scheduledTime.After(now) {
		return "", &errs.ValidationError{Field: "scheduledTime", Reason: "must be in the future"}
	}
	if !expertAvailableAt(*expert, scheduledTime, now) {
		return "", &errs.ValidationError{Field: "scheduledTime", Reason: "expert is not available at the requested time"}
	}

	sess := &models.Session{
		ID:            uuid.New().String(),
		RequestID:     requestID,
		ExpertID:      expertID,
		UserID:        req.UserID,
		Status:        models.SessionScheduled,
		ScheduledTime: scheduledTime,
		Cost:          matching.EstimateCost(expert.HourlyRate, req.Category, req.Urgency),
		PaymentStatus: models.PaymentPending,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Sessions.Create(sess); err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}

	// Calendar hold and notifications are best-effort: the session is
	// already booked.
	hold := models.AvailabilityHold{
		SessionID: sess.ID,
		HeldAt:    now,
		StartTime: scheduledTime,
	}
	if err := s.Experts.AddAvailabilityHold(expertID, hold); err != nil {
		s.Logger.Warn("failed to place calendar hold",
			zap.String("sessionId", sess.ID), zap.Error(err))
		s.recordError("calendar_hold", err)
	}

	s.notifyScheduled(ctx, sess, expert.Profile.Name)
	s.queueReminders(sess, expert.Profile.Name)

	if s.Monitor != nil {
		s.Monitor.RecordMetric(monitoring.MetricSessionsScheduled, 1,
			map[string]string{"category": req.Category})
	}
	return sess.ID, nil
}

// expertAvailableAt reports whether the expert can take a session at the
// given time: either a weekly schedule window covers it, or the expert is
// online now and the session starts within the hour.
func expertAvailableAt(expert models.Expert, at, now time.Time) bool {
	if matching.InScheduleWindow(expert.WeeklySchedule, at) {
		return true
	}
	return expert.IsOnline && at.Before(now.Add(time.Hour))
}

func (s *DefaultSessionService) notifyScheduled(ctx context.Context, sess *models.Session, expertName string) {
	when := sess.ScheduledTime.Format("2 January, 3:04 PM")

	s.sendNotification(ctx, models.Notification{
		UserID:  sess.UserID,
		Type:    "session_scheduled",
		Title:   "Consultation scheduled",
		Message: fmt.Sprintf("Your consultation with %s is scheduled for %s. Estimated cost $%.2f.", expertName, when, sess.Cost),
		Data:    map[string]string{"sessionId": sess.ID},
	})
	s.sendNotification(ctx, models.Notification{
		UserID:  sess.ExpertID,
		Type:    "session_scheduled",
		Title:   "New consultation scheduled",
		Message: fmt.Sprintf("A consultation has been scheduled with you for %s.", when),
		Data:    map[string]string{"sessionId": sess.ID},
	})
}

// queueReminders schedules a reminder for each party shortly before the
// session starts.
func (s *DefaultSessionService) queueReminders(sess *models.Session, expertName string) {
	if s.Reminders == nil {
		return
	}
	fireAt := sess.ScheduledTime.Add(-reminderLead)
	if !fireAt.After(s.now()) {
		return
	}

	payloads := []models.ReminderPayload{
		{
			SessionID: sess.ID,
			Target:    "user",
			TargetID:  sess.UserID,
			Title:     "Consultation starting soon",
			Body:      fmt.Sprintf("Your consultation with %s starts in 30 minutes.", expertName),
			FireDate:  fireAt.Format(time.RFC3339),
		},
		{
			SessionID: sess.ID,
			Target:    "expert",
			TargetID:  sess.ExpertID,
			Title:     "Consultation starting soon",
			Body:      "Your next consultation starts in 30 minutes.",
			FireDate:  fireAt.Format(time.RFC3339),
		},
	}
	for _, p := range payloads {
		task, opts, err := tasks.NewReminderTask(p, fireAt)
		if err != nil {
			s.Logger.Warn("failed to build reminder task", zap.Error(err))
			continue
		}
		if _, err := s.Reminders.Enqueue(task, opts...); err != nil {
			s.Logger.Warn("failed to queue reminder",
				zap.String("sessionId", sess.ID), zap.Error(err))
			s.recordError("reminder_queue", err)
		}
	}
}
