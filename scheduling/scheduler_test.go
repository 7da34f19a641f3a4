package scheduling

import (
	"testing"
	"time"

	"github.com/padelpoint/pairing-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unscheduled(n int) []models.Match {
	matches := make([]models.Match, n)
	for i := range matches {
		matches[i] = models.Match{ID: i + 1, RoundNumber: 1, MatchOrder: i + 1}
	}
	return matches
}

func TestBuildSchedule_RoundRobinsCourtsAndAdvancesClock(t *testing.T) {
	start := time.Date(2026, 9, 5, 9, 0, 0, 0, time.UTC)
	courts := []int{1, 2}

	assignments, err := BuildSchedule(unscheduled(5), courts, start, 45*time.Minute)
	require.NoError(t, err)
	require.Len(t, assignments, 5)

	assert.Equal(t, 1, assignments[0].CourtNumber)
	assert.Equal(t, start, assignments[0].ScheduledTime)
	assert.Equal(t, 2, assignments[1].CourtNumber)
	assert.Equal(t, start, assignments[1].ScheduledTime)

	slot2 := start.Add(45 * time.Minute)
	assert.Equal(t, 1, assignments[2].CourtNumber)
	assert.Equal(t, slot2, assignments[2].ScheduledTime)
	assert.Equal(t, 2, assignments[3].CourtNumber)
	assert.Equal(t, slot2, assignments[3].ScheduledTime)

	assert.Equal(t, 1, assignments[4].CourtNumber)
	assert.Equal(t, start.Add(90*time.Minute), assignments[4].ScheduledTime)
}

func TestBuildSchedule_NoCourtTimeCollisions(t *testing.T) {
	start := time.Date(2026, 9, 5, 9, 0, 0, 0, time.UTC)
	for _, courts := range [][]int{{3}, {1, 2}, {5, 2, 9}} {
		assignments, err := BuildSchedule(unscheduled(17), courts, start, 30*time.Minute)
		require.NoError(t, err)

		type slot struct {
			court int
			at    time.Time
		}
		seen := map[slot]bool{}
		for _, a := range assignments {
			key := slot{a.CourtNumber, a.ScheduledTime}
			assert.False(t, seen[key], "courts=%v slot=%v", courts, key)
			seen[key] = true
		}
	}
}

func TestBuildSchedule_EarlierRoundsFirst(t *testing.T) {
	start := time.Date(2026, 9, 5, 9, 0, 0, 0, time.UTC)
	matches := []models.Match{
		{ID: 10, RoundNumber: 2, MatchOrder: 1},
		{ID: 11, RoundNumber: 1, MatchOrder: 2},
		{ID: 12, RoundNumber: 1, MatchOrder: 1},
	}

	assignments, err := BuildSchedule(matches, []int{1}, start, time.Hour)
	require.NoError(t, err)
	require.Len(t, assignments, 3)
	assert.Equal(t, 12, assignments[0].MatchID)
	assert.Equal(t, 11, assignments[1].MatchID)
	assert.Equal(t, 10, assignments[2].MatchID)
	assert.True(t, assignments[2].ScheduledTime.After(assignments[0].ScheduledTime))
}

func TestBuildSchedule_NoCourtsFailsFast(t *testing.T) {
	_, err := BuildSchedule(unscheduled(2), nil, time.Now(), time.Hour)
	assert.ErrorIs(t, err, ErrNoCourtsConfigured)
}

func TestBuildSchedule_NothingToSchedule(t *testing.T) {
	assignments, err := BuildSchedule(nil, nil, time.Now(), time.Hour)
	require.NoError(t, err)
	assert.Empty(t, assignments)
}
