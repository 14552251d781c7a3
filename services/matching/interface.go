package matching

import (
	"context"
	"time"

	expertRepo "advisorly/database/repository/expert"
	requestRepo "advisorly/database/repository/request"
	userRepo "advisorly/database/repository/user"
	"advisorly/models"
	"advisorly/services/monitoring"
	"advisorly/services/notification"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// MatchingService ranks experts against consultation requests and fans
// notifications out to them.
type MatchingService interface {
	FindBestMatches(ctx context.Context, userID string, req models.ConsultationRequest) ([]models.ExpertMatch, error)
	NotifyMatchingExperts(ctx context.Context, requestID string, matches []models.ExpertMatch) error
	NotifyEmergencyRequest(ctx context.Context, requestID string) error
}

// DefaultMatchingService is the production implementation.
type DefaultMatchingService struct {
	ExpertRepo  expertRepo.ExpertRepository
	UserRepo    userRepo.UserRepository
	RequestRepo requestRepo.RequestRepository
	CacheClient *redis.Client
	Notifier    notification.NotificationGateway
	Monitor     monitoring.Monitor
	Logger      *zap.Logger

	// Now allows tests to pin the clock. Defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultMatchingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
