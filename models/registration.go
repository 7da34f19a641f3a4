package models

import "time"

// RegistrationStatus matches the ENUM in the DB.
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCanceled  RegistrationStatus = "canceled"
)

// Registration is a two-player pair entered in a tournament. Rows are
// created by the registration flow; the engine only touches the seed and
// pool fields.
type Registration struct {
	ID           int                `json:"id" db:"id"`
	TournamentID int                `json:"tournament_id" db:"tournament_id"`
	Player1ID    int                `json:"player1_id" db:"player1_id"`
	Player2ID    int                `json:"player2_id" db:"player2_id"`
	PairWeight   int                `json:"pair_weight" db:"pair_weight"`
	Status       RegistrationStatus `json:"status" db:"status"`
	IsSeed       bool               `json:"is_seed" db:"is_seed"`
	SeedNumber   *int               `json:"seed_number,omitempty" db:"seed_number"`
	PoolID       *int               `json:"pool_id,omitempty" db:"pool_id"`
	Phase        *string            `json:"phase,omitempty" db:"phase"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`
}
