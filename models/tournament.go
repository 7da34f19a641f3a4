package models

import "time"

// TournamentType matches the ENUM in the DB.
type TournamentType string

const (
	TournamentKnockout   TournamentType = "knockout"
	TournamentRoundRobin TournamentType = "round_robin"
)

// Tournament is the read-only configuration the engine works from.
// It is never mutated during a generation pass.
type Tournament struct {
	ID              int            `json:"id" db:"id"`
	ClubID          *int           `json:"club_id,omitempty" db:"club_id"`
	Name            string         `json:"name" db:"name"`
	Type            TournamentType `json:"tournament_type" db:"tournament_type"`
	PoolSize        int            `json:"pool_size" db:"pool_size"`
	PoolFormat      string         `json:"pool_format" db:"pool_format"`
	AvailableCourts []int          `json:"available_courts" db:"available_courts"`
	MatchDuration   int            `json:"match_duration_minutes" db:"match_duration_minutes"`
	StartDate       time.Time      `json:"start_date" db:"start_date"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
}

// MatchDurationAsTime returns the per-slot duration used by the scheduler.
func (t *Tournament) MatchDurationAsTime() time.Duration {
	return time.Duration(t.MatchDuration) * time.Minute
}
