package matching

import (
	"testing"
	"time"

	"advisorly/models"
)

func TestEstimateAvailabilityOnline(t *testing.T) {
	got := EstimateAvailability(models.Expert{IsOnline: true}, scoreNow)
	if got.Score != OnlineScore || got.Tier != models.TierImmediate || !got.Available {
		t.Fatalf("online expert: got %+v", got)
	}
}

func TestEstimateAvailabilityInWindow(t *testing.T) {
	expert := models.Expert{
		WeeklySchedule: models.WeeklySchedule{
			"wednesday": {{Start: "09:00", End: "17:00"}},
		},
	}
	got := EstimateAvailability(expert, scoreNow) // Wednesday 10:00
	if got.Score != InScheduleScore || got.Tier != models.TierWithinHour {
		t.Fatalf("in-window expert: got %+v", got)
	}
}

func TestEstimateAvailabilityOutsideWindow(t *testing.T) {
	expert := models.Expert{
		WeeklySchedule: models.WeeklySchedule{
			"monday": {{Start: "09:00", End: "17:00"}},
		},
	}
	got := EstimateAvailability(expert, scoreNow)
	if got.Score != HasScheduleScore || got.Tier != models.TierWithinDay {
		t.Fatalf("scheduled-elsewhere expert: got %+v", got)
	}
}

func TestEstimateAvailabilityNoSchedule(t *testing.T) {
	got := EstimateAvailability(models.Expert{}, scoreNow)
	if got.Score != NoScheduleScore || got.Tier != models.TierScheduled || got.Available {
		t.Fatalf("no-schedule expert: got %+v", got)
	}
}

func TestInScheduleWindowBoundaries(t *testing.T) {
	schedule := models.WeeklySchedule{
		"wednesday": {{Start: "09:00", End: "17:00"}},
	}

	at := func(h, m int) time.Time {
		return time.Date(2026, 3, 4, h, m, 0, 0, time.UTC)
	}

	if !InScheduleWindow(schedule, at(9, 0)) {
		t.Fatalf("window start should be inclusive")
	}
	if InScheduleWindow(schedule, at(17, 0)) {
		t.Fatalf("window end should be exclusive")
	}
	if InScheduleWindow(schedule, at(8, 59)) {
		t.Fatalf("before window should not match")
	}
}

func TestInScheduleWindowMalformedTimesSkipped(t *testing.T) {
	schedule := models.WeeklySchedule{
		"wednesday": {
			{Start: "not-a-time", End: "17:00"},
			{Start: "09:00", End: "12:00"},
		},
	}
	if !InScheduleWindow(schedule, scoreNow) {
		t.Fatalf("valid window should match despite a malformed sibling")
	}
}

func TestTierForScore(t *testing.T) {
	cases := []struct {
		score  float64
		online bool
		want   string
	}{
		{0.5, true, models.TierImmediate},
		{0.9, false, models.TierWithinHour},
		{0.6, false, models.TierWithinDay},
		{0.2, false, models.TierScheduled},
	}
	for _, tc := range cases {
		if got := TierForScore(tc.score, tc.online); got != tc.want {
			t.Fatalf("TierForScore(%v, %v) = %q, want %q", tc.score, tc.online, got, tc.want)
		}
	}
}
