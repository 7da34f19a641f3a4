package models

type PoolStatus string

const (
	PoolActive    PoolStatus = "active"
	PoolCompleted PoolStatus = "completed"
)

// Pool is one round-robin sub-group of a tournament. Every member plays
// every other member once.
type Pool struct {
	ID           int        `json:"id" db:"id"`
	TournamentID int        `json:"tournament_id" db:"tournament_id"`
	PoolNumber   int        `json:"pool_number" db:"pool_number"`
	PoolType     string     `json:"pool_type" db:"pool_type"`
	NumTeams     int        `json:"num_teams" db:"num_teams"`
	Format       string     `json:"format" db:"format"`
	Status       PoolStatus `json:"status" db:"status"`
}
