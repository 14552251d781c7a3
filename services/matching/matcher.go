package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"advisorly/models"
	"advisorly/services/monitoring"

	"go.uber.org/zap"
)

// Ranking constants.
const (
	// MinMatchScore filters out experts that are a poor fit overall.
	MinMatchScore = 0.3
	// MaxMatches bounds the ranked list returned to the caller.
	MaxMatches = 10
	// matchCacheTTL keeps ranked results hot for repeated lookups.
	matchCacheTTL = 5 * time.Minute
)

// FindBestMatches scores the full expert pool against the request, keeps
// matches above the minimum score, and returns the top results ranked by
// total score. Ordering is deterministic: ties keep pool order.
func (s *DefaultMatchingService) FindBestMatches(ctx context.Context, userID string, req models.ConsultationRequest) ([]models.ExpertMatch, error) {
	started := time.Now()

	profile, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}

	cacheKey, cached := s.cachedMatches(ctx, userID, req)
	if cached != nil {
		return cached, nil
	}

	experts, err := s.ExpertRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load expert pool: %w", err)
	}

	now := s.now()

	// Score every expert concurrently. Each goroutine writes to its own
	// slot, so pool order is preserved for the stable sort below.
	scored := make([]models.ExpertMatch, len(experts))
	var wg sync.WaitGroup
	for i, e := range experts {
		wg.Add(1)
		go func(i int, e models.Expert) {
			defer wg.Done()
			result := Score(e, req, profile, now)
			scored[i] = models.ExpertMatch{
				ExpertID:         e.ID,
				TotalScore:       result.Total,
				ComponentScores:  result.Components,
				AvailabilityTier: result.Tier,
				EstimatedCost:    EstimateCost(e.HourlyRate, req.Category, req.Urgency),
				Reasons:          result.Reasons,
			}
		}(i, e)
	}
	wg.Wait()

	var matches []models.ExpertMatch
	for _, m := range scored {
		if m.TotalScore > MinMatchScore {
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].TotalScore > matches[j].TotalScore
	})
	if len(matches) > MaxMatches {
		matches = matches[:MaxMatches]
	}

	if s.Monitor != nil {
		s.Monitor.RecordMetric(monitoring.MetricMatchDurationMS,
			float64(time.Since(started).Milliseconds()),
			map[string]string{"category": req.Category})
		s.Monitor.RecordMetric(monitoring.MetricMatchResultsTotal,
			float64(len(matches)), nil)
	}

	s.storeMatches(ctx, cacheKey, matches)
	return matches, nil
}

// cachedMatches returns the cache key for this lookup and any hit.
func (s *DefaultMatchingService) cachedMatches(ctx context.Context, userID string, req models.ConsultationRequest) (string, []models.ExpertMatch) {
	reqBytes, err := json.Marshal(req)
	if err != nil {
		return "", nil
	}
	key := fmt.Sprintf("match:%s:%x", userID, reqBytes)
	if s.CacheClient == nil {
		return key, nil
	}

	cached, err := s.CacheClient.Get(ctx, key).Result()
	if err != nil || cached == "" {
		return key, nil
	}
	var matches []models.ExpertMatch
	if err := json.Unmarshal([]byte(cached), &matches); err != nil {
		// Stale or corrupt entry; recompute.
		return key, nil
	}
	return key, matches
}

func (s *DefaultMatchingService) storeMatches(ctx context.Context, key string, matches []models.ExpertMatch) {
	if s.CacheClient == nil || key == "" {
		return
	}
	b, err := json.Marshal(matches)
	if err != nil {
		return
	}
	if err := s.CacheClient.Set(ctx, key, b, matchCacheTTL).Err(); err != nil {
		s.Logger.Warn("failed to cache match results", zap.Error(err))
	}
}
