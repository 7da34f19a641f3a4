package models

import "time"

type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchCompleted MatchStatus = "completed"
)

// Round types, named by distance from the final.
const (
	RoundFinal          = "final"
	RoundSemis          = "semis"
	RoundQuarters       = "quarters"
	RoundOf16           = "round_of_16"
	RoundOf32           = "round_of_32"
	RoundOf64           = "round_of_64"
	RoundQualifications = "qualifications"
	RoundPool           = "pool"
)

// Match is one scheduled (or bye-completed) encounter between two pairs.
// Team slots are nullable: a bye has only team 1, and placeholder matches
// for later knockout rounds start with both slots empty until results come
// in through the reporting flow.
type Match struct {
	ID                   int         `json:"id" db:"id"`
	TournamentID         int         `json:"tournament_id" db:"tournament_id"`
	PoolID               *int        `json:"pool_id,omitempty" db:"pool_id"`
	RoundType            string      `json:"round_type" db:"round_type"`
	RoundNumber          int         `json:"round_number" db:"round_number"`
	MatchOrder           int         `json:"match_order" db:"match_order"`
	Team1RegistrationID  *int        `json:"team1_registration_id,omitempty" db:"team1_registration_id"`
	Team2RegistrationID  *int        `json:"team2_registration_id,omitempty" db:"team2_registration_id"`
	IsBye                bool        `json:"is_bye" db:"is_bye"`
	Status               MatchStatus `json:"status" db:"status"`
	WinnerRegistrationID *int        `json:"winner_registration_id,omitempty" db:"winner_registration_id"`
	CourtNumber          *int        `json:"court_number,omitempty" db:"court_number"`
	ScheduledTime        *time.Time  `json:"scheduled_time,omitempty" db:"scheduled_time"`

	// Advancement linkage: the winner of this match is written into slot
	// NextMatchSlot (1 or 2) of match NextMatchID by the result-entry flow.
	NextMatchID   *int `json:"next_match_id,omitempty" db:"next_match_id"`
	NextMatchSlot *int `json:"next_match_slot,omitempty" db:"next_match_slot"`
}
