package matching

import (
	"strings"
	"time"

	"advisorly/models"
)

// Availability scores.
const (
	OnlineScore       = 1.0
	InScheduleScore   = 0.8
	HasScheduleScore  = 0.6 // has some schedule, assumed reachable within a day
	NoScheduleScore   = 0.2
	WithinHourMinimum = 0.8
	WithinDayMinimum  = 0.6
)

// Availability is a coarse estimate of how soon an expert can take a
// session.
type Availability struct {
	Score     float64
	Available bool
	Tier      string
}

// EstimateAvailability derives an availability estimate from the expert's
// online flag, weekly schedule and the current time.
func EstimateAvailability(expert models.Expert, now time.Time) Availability {
	if expert.IsOnline {
		return Availability{Score: OnlineScore, Available: true, Tier: models.TierImmediate}
	}
	if InScheduleWindow(expert.WeeklySchedule, now) {
		return Availability{Score: InScheduleScore, Available: true, Tier: models.TierWithinHour}
	}
	if expert.HasSchedule() {
		return Availability{Score: HasScheduleScore, Available: true, Tier: models.TierWithinDay}
	}
	return Availability{Score: NoScheduleScore, Available: false, Tier: models.TierScheduled}
}

// TierForScore maps an availability score onto a display tier. Online
// experts are always "immediate"; otherwise the tier follows the score.
func TierForScore(score float64, online bool) string {
	switch {
	case online:
		return models.TierImmediate
	case score >= WithinHourMinimum:
		return models.TierWithinHour
	case score >= WithinDayMinimum:
		return models.TierWithinDay
	default:
		return models.TierScheduled
	}
}

// InScheduleWindow reports whether the given time falls inside one of the
// schedule's working windows for that weekday. Windows with malformed
// times are skipped.
func InScheduleWindow(schedule models.WeeklySchedule, t time.Time) bool {
	day := strings.ToLower(t.Weekday().String())
	minutes := t.Hour()*60 + t.Minute()
	for _, w := range schedule[day] {
		start, ok := parseClock(w.Start)
		if !ok {
			continue
		}
		end, ok := parseClock(w.End)
		if !ok {
			continue
		}
		if minutes >= start && minutes < end {
			return true
		}
	}
	return false
}

// parseClock converts "HH:MM" to minutes from midnight.
func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
