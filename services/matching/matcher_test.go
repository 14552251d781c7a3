package matching

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"advisorly/errs"
	"advisorly/models"

	"go.uber.org/zap"
)

type fakeExpertRepo struct {
	experts []models.Expert
}

func (f *fakeExpertRepo) GetByID(id string) (*models.Expert, error) {
	for i := range f.experts {
		if f.experts[i].ID == id {
			e := f.experts[i]
			return &e, nil
		}
	}
	return nil, &errs.NotFoundError{Entity: "expert", ID: id}
}

func (f *fakeExpertRepo) GetAll() ([]models.Expert, error) {
	return append([]models.Expert(nil), f.experts...), nil
}

func (f *fakeExpertRepo) Create(e *models.Expert) error { f.experts = append(f.experts, *e); return nil }
func (f *fakeExpertRepo) Update(e *models.Expert) error { return nil }
func (f *fakeExpertRepo) Delete(id string) error        { return nil }
func (f *fakeExpertRepo) AddAvailabilityHold(expertID string, hold models.AvailabilityHold) error {
	return nil
}
func (f *fakeExpertRepo) RemoveAvailabilityHold(expertID, sessionID string) error { return nil }
func (f *fakeExpertRepo) IncrementCompletedSessions(expertID string) error        { return nil }

type fakeUserRepo struct {
	users map[string]models.User
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, &errs.NotFoundError{Entity: "user", ID: id}
}

type fakeRequestRepo struct {
	requests map[string]models.ConsultationRequest
}

func (f *fakeRequestRepo) GetByID(id string) (*models.ConsultationRequest, error) {
	if r, ok := f.requests[id]; ok {
		return &r, nil
	}
	return nil, &errs.NotFoundError{Entity: "consultation request", ID: id}
}

// fakeNotifier records every dispatch; optional per-recipient failures.
type fakeNotifier struct {
	mu            sync.Mutex
	notifications []models.Notification
	emails        []models.EmailMessage
	sms           []models.SMSMessage
	failPush      map[string]bool
}

func (f *fakeNotifier) SendNotification(ctx context.Context, n models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPush[n.UserID] {
		return &errs.ExternalServiceError{Service: "fcm", Err: fmt.Errorf("push rejected")}
	}
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotifier) SendEmail(ctx context.Context, msg models.EmailMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emails = append(f.emails, msg)
	return nil
}

func (f *fakeNotifier) SendSMS(ctx context.Context, msg models.SMSMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sms = append(f.sms, msg)
	return nil
}

func (f *fakeNotifier) pushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notifications)
}

func newMatchingService(experts []models.Expert, users map[string]models.User, requests map[string]models.ConsultationRequest, notifier *fakeNotifier) *DefaultMatchingService {
	if notifier == nil {
		notifier = &fakeNotifier{}
	}
	return &DefaultMatchingService{
		ExpertRepo:  &fakeExpertRepo{experts: experts},
		UserRepo:    &fakeUserRepo{users: users},
		RequestRepo: &fakeRequestRepo{requests: requests},
		Notifier:    notifier,
		Logger:      zap.NewNop(),
		Now:         func() time.Time { return scoreNow },
	}
}

func poolExpert(id string, rating float64) models.Expert {
	return models.Expert{
		ID:                id,
		Specialties:       []string{models.CategoryTrading},
		Languages:         []string{"en"},
		Rating:            rating,
		YearsOfExperience: 8,
		HourlyRate:        100,
		IsOnline:          true,
	}
}

func TestFindBestMatchesFiltersAndRanks(t *testing.T) {
	experts := []models.Expert{
		poolExpert("good", 4.0),
		poolExpert("better", 5.0),
		{ID: "poor"}, // no specialty, offline, unrated: below the cutoff
	}
	svc := newMatchingService(experts, map[string]models.User{"u1": {ID: "u1"}}, nil, nil)

	req := models.ConsultationRequest{
		Category: models.CategoryTrading,
		Urgency:  models.UrgencyMedium,
		Budget:   120,
	}
	matches, err := svc.FindBestMatches(context.Background(), "u1", req)
	if err != nil {
		t.Fatalf("FindBestMatches() error = %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2 (poor fit filtered out)", len(matches))
	}
	if matches[0].ExpertID != "better" || matches[1].ExpertID != "good" {
		t.Fatalf("ranking wrong: got %s then %s", matches[0].ExpertID, matches[1].ExpertID)
	}
	if matches[0].TotalScore < matches[1].TotalScore {
		t.Fatalf("scores not descending: %v < %v", matches[0].TotalScore, matches[1].TotalScore)
	}
	if matches[0].EstimatedCost != EstimateCost(100, req.Category, req.Urgency) {
		t.Fatalf("estimated cost = %v, want %v", matches[0].EstimatedCost, EstimateCost(100, req.Category, req.Urgency))
	}
}

func TestFindBestMatchesTruncatesToMax(t *testing.T) {
	var experts []models.Expert
	for i := 0; i < MaxMatches+5; i++ {
		experts = append(experts, poolExpert(fmt.Sprintf("exp-%02d", i), 4.5))
	}
	svc := newMatchingService(experts, map[string]models.User{"u1": {ID: "u1"}}, nil, nil)

	matches, err := svc.FindBestMatches(context.Background(), "u1", models.ConsultationRequest{
		Category: models.CategoryTrading,
		Urgency:  models.UrgencyMedium,
		Budget:   120,
	})
	if err != nil {
		t.Fatalf("FindBestMatches() error = %v", err)
	}
	if len(matches) != MaxMatches {
		t.Fatalf("got %d matches, want %d", len(matches), MaxMatches)
	}
}

func TestFindBestMatchesDeterministic(t *testing.T) {
	var experts []models.Expert
	for i := 0; i < 8; i++ {
		e := poolExpert(fmt.Sprintf("exp-%d", i), 4.5) // identical scores: ties keep pool order
		experts = append(experts, e)
	}
	svc := newMatchingService(experts, map[string]models.User{"u1": {ID: "u1"}}, nil, nil)
	req := models.ConsultationRequest{
		Category: models.CategoryTrading,
		Urgency:  models.UrgencyMedium,
		Budget:   120,
	}

	first, err := svc.FindBestMatches(context.Background(), "u1", req)
	if err != nil {
		t.Fatalf("FindBestMatches() error = %v", err)
	}
	for run := 0; run < 5; run++ {
		again, err := svc.FindBestMatches(context.Background(), "u1", req)
		if err != nil {
			t.Fatalf("run %d error = %v", run, err)
		}
		for i := range first {
			if again[i].ExpertID != first[i].ExpertID {
				t.Fatalf("run %d: position %d = %s, want %s", run, i, again[i].ExpertID, first[i].ExpertID)
			}
		}
	}
}

func TestFindBestMatchesUnknownUser(t *testing.T) {
	svc := newMatchingService(nil, nil, nil, nil)
	if _, err := svc.FindBestMatches(context.Background(), "ghost", models.ConsultationRequest{}); err == nil {
		t.Fatalf("expected error for unknown user")
	}
}

func TestNotifyMatchingExpertsTopFiveOnly(t *testing.T) {
	notifier := &fakeNotifier{}
	requests := map[string]models.ConsultationRequest{
		"req-1": {ID: "req-1", Category: models.CategoryTrading, Urgency: models.UrgencyMedium},
	}
	svc := newMatchingService(nil, nil, requests, notifier)

	var matches []models.ExpertMatch
	for i := 0; i < 8; i++ {
		matches = append(matches, models.ExpertMatch{ExpertID: fmt.Sprintf("exp-%d", i)})
	}
	if err := svc.NotifyMatchingExperts(context.Background(), "req-1", matches); err != nil {
		t.Fatalf("NotifyMatchingExperts() error = %v", err)
	}
	if got := notifier.pushCount(); got != NotifyTopMatches {
		t.Fatalf("notified %d experts, want %d", got, NotifyTopMatches)
	}
	if len(notifier.emails) != 0 {
		t.Fatalf("medium urgency should not email, got %d emails", len(notifier.emails))
	}
}

func TestNotifyMatchingExpertsUrgentEmails(t *testing.T) {
	notifier := &fakeNotifier{}
	experts := []models.Expert{
		{ID: "exp-0", Profile: models.ExpertProfile{Email: "a@example.com"}},
		{ID: "exp-1"}, // no email on file, push only
	}
	requests := map[string]models.ConsultationRequest{
		"req-1": {ID: "req-1", Category: models.CategoryTax, Urgency: models.UrgencyHigh},
	}
	svc := newMatchingService(experts, nil, requests, notifier)

	matches := []models.ExpertMatch{{ExpertID: "exp-0"}, {ExpertID: "exp-1"}}
	if err := svc.NotifyMatchingExperts(context.Background(), "req-1", matches); err != nil {
		t.Fatalf("NotifyMatchingExperts() error = %v", err)
	}
	if got := notifier.pushCount(); got != 2 {
		t.Fatalf("notified %d experts, want 2", got)
	}
	if len(notifier.emails) != 1 || notifier.emails[0].To != "a@example.com" {
		t.Fatalf("emails = %+v, want one to a@example.com", notifier.emails)
	}
}

func TestNotifyMatchingExpertsIsolatesFailures(t *testing.T) {
	notifier := &fakeNotifier{failPush: map[string]bool{"exp-1": true}}
	requests := map[string]models.ConsultationRequest{
		"req-1": {ID: "req-1", Category: models.CategoryTrading, Urgency: models.UrgencyMedium},
	}
	svc := newMatchingService(nil, nil, requests, notifier)

	matches := []models.ExpertMatch{{ExpertID: "exp-0"}, {ExpertID: "exp-1"}, {ExpertID: "exp-2"}}
	if err := svc.NotifyMatchingExperts(context.Background(), "req-1", matches); err != nil {
		t.Fatalf("one failing recipient should not fail the fan-out: %v", err)
	}
	if got := notifier.pushCount(); got != 2 {
		t.Fatalf("delivered %d pushes, want 2", got)
	}
}

func TestNotifyEmergencyRequestBroadcastsAndEscalates(t *testing.T) {
	notifier := &fakeNotifier{}
	experts := []models.Expert{
		{ID: "e1", Rating: 4.9, Profile: models.ExpertProfile{PhoneNumber: "+1-111"}},
		{ID: "e2", Rating: 4.6, Profile: models.ExpertProfile{PhoneNumber: "+1-222"}},
		{ID: "e3", Rating: 4.5, Profile: models.ExpertProfile{PhoneNumber: "+1-333"}},
		{ID: "e4", Rating: 4.8, Profile: models.ExpertProfile{PhoneNumber: "+1-444"}},
		{ID: "e5", Rating: 4.9}, // high rating but no phone
		{ID: "e6", Rating: 3.0, Profile: models.ExpertProfile{PhoneNumber: "+1-666"}},
	}
	requests := map[string]models.ConsultationRequest{
		"req-1": {ID: "req-1", Category: models.CategoryTrading, Urgency: models.UrgencyCritical},
	}
	svc := newMatchingService(experts, nil, requests, notifier)

	if err := svc.NotifyEmergencyRequest(context.Background(), "req-1"); err != nil {
		t.Fatalf("NotifyEmergencyRequest() error = %v", err)
	}

	if got := notifier.pushCount(); got != len(experts) {
		t.Fatalf("broadcast reached %d experts, want the whole pool of %d", got, len(experts))
	}
	if len(notifier.sms) != EmergencySMSRecipients {
		t.Fatalf("sent %d SMS, want %d", len(notifier.sms), EmergencySMSRecipients)
	}
	// Top rated with a phone on file: e1 (4.9), e4 (4.8), e2 (4.6).
	wantTo := map[string]bool{"+1-111": true, "+1-444": true, "+1-222": true}
	for _, s := range notifier.sms {
		if !wantTo[s.To] {
			t.Fatalf("unexpected SMS recipient %q", s.To)
		}
	}
	for _, n := range notifier.notifications {
		if n.Priority != models.PriorityCritical {
			t.Fatalf("broadcast priority = %q, want critical", n.Priority)
		}
	}
}
