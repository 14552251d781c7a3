package matching

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"advisorly/config"
	"advisorly/models"
	"advisorly/services/monitoring"

	"go.uber.org/zap"
)

// Fan-out constants.
const (
	// NotifyTopMatches is how many ranked experts get a standard
	// notification for a new request.
	NotifyTopMatches = 5
	// EmergencySMSRecipients is how many top-rated experts get an SMS on
	// an emergency broadcast.
	EmergencySMSRecipients = 3
	// EmergencySMSRatingFloor gates SMS escalation to proven experts.
	EmergencySMSRatingFloor = 4.5
)

// NotifyMatchingExperts notifies the top matched experts of a new request.
// High and critical urgency additionally triggers an email per expert.
// Dispatch is scatter/gather: every recipient is attempted, and a failure
// for one is logged without affecting the rest.
func (s *DefaultMatchingService) NotifyMatchingExperts(ctx context.Context, requestID string, matches []models.ExpertMatch) error {
	req, err := s.RequestRepo.GetByID(requestID)
	if err != nil {
		return fmt.Errorf("failed to load consultation request: %w", err)
	}

	top := matches
	if len(top) > NotifyTopMatches {
		top = top[:NotifyTopMatches]
	}

	urgent := req.Urgency == models.UrgencyHigh || req.Urgency == models.UrgencyCritical

	var wg sync.WaitGroup
	for _, m := range top {
		wg.Add(1)
		go func(m models.ExpertMatch) {
			defer wg.Done()
			s.notifyExpertOfRequest(ctx, *req, m, urgent)
		}(m)
	}
	wg.Wait()

	if s.Monitor != nil {
		s.Monitor.RecordMetric(monitoring.MetricNotifyFanoutTotal, float64(len(top)),
			map[string]string{"kind": "match"})
	}
	return nil
}

func (s *DefaultMatchingService) notifyExpertOfRequest(ctx context.Context, req models.ConsultationRequest, m models.ExpertMatch, urgent bool) {
	sendCtx, cancel := context.WithTimeout(ctx, bestEffortTimeout())
	defer cancel()

	n := models.Notification{
		UserID:  m.ExpertID,
		Type:    "consultation_request",
		Title:   "New consultation request",
		Message: fmt.Sprintf("A user is looking for %s advice (%s urgency). Estimated payout $%.2f.", req.Category, req.Urgency, m.EstimatedCost),
		Data: map[string]string{
			"requestId": req.ID,
			"category":  req.Category,
			"urgency":   req.Urgency,
		},
		Priority: priorityForUrgency(req.Urgency),
	}
	if err := s.Notifier.SendNotification(sendCtx, n); err != nil {
		s.Logger.Warn("failed to notify matched expert",
			zap.String("expertId", m.ExpertID), zap.Error(err))
		s.recordNotifyError(err)
	}

	if !urgent {
		return
	}

	expert, err := s.ExpertRepo.GetByID(m.ExpertID)
	if err != nil || expert.Profile.Email == "" {
		return
	}
	email := models.EmailMessage{
		To:       expert.Profile.Email,
		Subject:  fmt.Sprintf("Urgent %s consultation request", req.Category),
		Template: "urgent_request",
		Data: map[string]string{
			"requestId":   req.ID,
			"category":    req.Category,
			"urgency":     req.Urgency,
			"description": req.Description,
		},
	}
	if err := s.Notifier.SendEmail(sendCtx, email); err != nil {
		s.Logger.Warn("failed to email matched expert",
			zap.String("expertId", m.ExpertID), zap.Error(err))
		s.recordNotifyError(err)
	}
}

// NotifyEmergencyRequest broadcasts a critical-priority notification to the
// entire expert pool, then escalates by SMS to the top-rated experts that
// have a phone number on file. All dispatches are isolated: one failing
// recipient never blocks or fails the others.
func (s *DefaultMatchingService) NotifyEmergencyRequest(ctx context.Context, requestID string) error {
	req, err := s.RequestRepo.GetByID(requestID)
	if err != nil {
		return fmt.Errorf("failed to load consultation request: %w", err)
	}

	pool, err := s.ExpertRepo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to load expert pool: %w", err)
	}

	var wg sync.WaitGroup
	for _, e := range pool {
		wg.Add(1)
		go func(e models.Expert) {
			defer wg.Done()
			sendCtx, cancel := context.WithTimeout(ctx, bestEffortTimeout())
			defer cancel()

			n := models.Notification{
				UserID:  e.ID,
				Type:    "emergency_request",
				Title:   "Emergency consultation needed",
				Message: fmt.Sprintf("Urgent help needed with %s. First responder takes the session.", req.Category),
				Data: map[string]string{
					"requestId": req.ID,
					"category":  req.Category,
				},
				Priority: models.PriorityCritical,
			}
			if err := s.Notifier.SendNotification(sendCtx, n); err != nil {
				s.Logger.Warn("emergency broadcast failed for expert",
					zap.String("expertId", e.ID), zap.Error(err))
				s.recordNotifyError(err)
			}
		}(e)
	}

	for _, e := range smsEscalationTargets(pool) {
		wg.Add(1)
		go func(e models.Expert) {
			defer wg.Done()
			sendCtx, cancel := context.WithTimeout(ctx, bestEffortTimeout())
			defer cancel()

			sms := models.SMSMessage{
				To:      e.Profile.PhoneNumber,
				Message: fmt.Sprintf("ADVISORLY EMERGENCY: a client urgently needs %s advice. Open the app to respond.", req.Category),
			}
			if err := s.Notifier.SendSMS(sendCtx, sms); err != nil {
				s.Logger.Warn("emergency SMS failed for expert",
					zap.String("expertId", e.ID), zap.Error(err))
				s.recordNotifyError(err)
			}
		}(e)
	}
	wg.Wait()

	if s.Monitor != nil {
		s.Monitor.RecordMetric(monitoring.MetricNotifyFanoutTotal, float64(len(pool)),
			map[string]string{"kind": "emergency"})
	}
	return nil
}

// smsEscalationTargets picks the top-rated experts eligible for SMS: rating
// at or above the floor and a phone number on file, best rated first.
func smsEscalationTargets(pool []models.Expert) []models.Expert {
	var eligible []models.Expert
	for _, e := range pool {
		if e.Rating >= EmergencySMSRatingFloor && e.Profile.PhoneNumber != "" {
			eligible = append(eligible, e)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Rating > eligible[j].Rating
	})
	if len(eligible) > EmergencySMSRecipients {
		eligible = eligible[:EmergencySMSRecipients]
	}
	return eligible
}

func (s *DefaultMatchingService) recordNotifyError(err error) {
	if s.Monitor != nil {
		s.Monitor.RecordError("notification", err)
	}
}

func priorityForUrgency(urgency string) string {
	switch urgency {
	case models.UrgencyCritical:
		return models.PriorityCritical
	case models.UrgencyHigh:
		return models.PriorityHigh
	default:
		return models.PriorityNormal
	}
}

func bestEffortTimeout() time.Duration {
	if t := config.BestEffortCallTimeout(); t > 0 {
		return t
	}
	return 10 * time.Second
}
