// Package scheduling assigns courts and start times to generated matches.
// Pure computation; persistence of the resulting assignments belongs to the
// service layer.
package scheduling

import (
	"errors"
	"sort"
	"time"

	"github.com/padelpoint/pairing-engine/models"
)

var ErrNoCourtsConfigured = errors.New("tournament has no available courts configured")

// Assignment is one court/time slot for a match.
type Assignment struct {
	MatchID       int
	CourtNumber   int
	ScheduledTime time.Time
}

// BuildSchedule walks the unscheduled matches in (round_number, match_order)
// order and round-robins them over the available courts: each match takes
// the next court, and when the court list wraps the clock advances by one
// match duration. Earlier rounds therefore always start no later than later
// ones, and no two matches share a court at the same time by construction.
//
// An empty match list yields an empty schedule. A non-empty match list with
// no courts is a configuration error and fails fast.
func BuildSchedule(matches []models.Match, courts []int, start time.Time, matchDuration time.Duration) ([]Assignment, error) {
	if len(matches) == 0 {
		return nil, nil
	}
	if len(courts) == 0 {
		return nil, ErrNoCourtsConfigured
	}

	ordered := make([]models.Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].RoundNumber != ordered[j].RoundNumber {
			return ordered[i].RoundNumber < ordered[j].RoundNumber
		}
		return ordered[i].MatchOrder < ordered[j].MatchOrder
	})

	assignments := make([]Assignment, 0, len(ordered))
	currentTime := start
	courtIndex := 0

	for _, m := range ordered {
		assignments = append(assignments, Assignment{
			MatchID:       m.ID,
			CourtNumber:   courts[courtIndex],
			ScheduledTime: currentTime,
		})

		courtIndex++
		if courtIndex >= len(courts) {
			courtIndex = 0
			currentTime = currentTime.Add(matchDuration)
		}
	}

	return assignments, nil
}
