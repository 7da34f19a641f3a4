package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/padelpoint/pairing-engine/models"
)

var (
	ErrRegistrationNotFound    = errors.New("registration not found")
	ErrRegistrationPoolInvalid = errors.New("registration pool reference invalid")
)

type RegistrationRepository interface {
	// ListConfirmedByTournament returns confirmed registrations in insertion
	// order. That order is the ranking tie-break, so it must stay stable.
	ListConfirmedByTournament(ctx context.Context, tournamentID int) ([]models.Registration, error)

	UpdatePairWeight(ctx context.Context, id int, weight int) error
	UpdateSeed(ctx context.Context, id int, seedNumber int) error
	ClearSeeds(ctx context.Context, tournamentID int) error
	UpdatePool(ctx context.Context, id int, poolID int, phase string) error
	ClearPoolAssignments(ctx context.Context, tournamentID int) error
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) ListConfirmedByTournament(ctx context.Context, tournamentID int) ([]models.Registration, error) {
	query := `
		SELECT id, tournament_id, player1_id, player2_id, pair_weight,
		       status, is_seed, seed_number, pool_id, phase, created_at
		FROM registrations
		WHERE tournament_id = $1 AND status = $2
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID, models.RegistrationConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmed registrations for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	registrations := make([]models.Registration, 0)
	for rows.Next() {
		var reg models.Registration
		if err := rows.Scan(
			&reg.ID,
			&reg.TournamentID,
			&reg.Player1ID,
			&reg.Player2ID,
			&reg.PairWeight,
			&reg.Status,
			&reg.IsSeed,
			&reg.SeedNumber,
			&reg.PoolID,
			&reg.Phase,
			&reg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		registrations = append(registrations, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate registration rows: %w", err)
	}
	return registrations, nil
}

func (r *postgresRegistrationRepository) UpdatePairWeight(ctx context.Context, id int, weight int) error {
	query := `UPDATE registrations SET pair_weight = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, weight, id)
	if err != nil {
		return fmt.Errorf("failed to update pair weight for registration %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) UpdateSeed(ctx context.Context, id int, seedNumber int) error {
	query := `UPDATE registrations SET is_seed = TRUE, seed_number = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, seedNumber, id)
	if err != nil {
		return fmt.Errorf("failed to update seed for registration %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) ClearSeeds(ctx context.Context, tournamentID int) error {
	query := `UPDATE registrations SET is_seed = FALSE, seed_number = NULL WHERE tournament_id = $1`
	if _, err := r.db.ExecContext(ctx, query, tournamentID); err != nil {
		return fmt.Errorf("failed to clear seeds for tournament %d: %w", tournamentID, err)
	}
	return nil
}

func (r *postgresRegistrationRepository) UpdatePool(ctx context.Context, id int, poolID int, phase string) error {
	query := `UPDATE registrations SET pool_id = $1, phase = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, poolID, phase, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrRegistrationPoolInvalid
		}
		return fmt.Errorf("failed to assign registration %d to pool %d: %w", id, poolID, err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) ClearPoolAssignments(ctx context.Context, tournamentID int) error {
	query := `UPDATE registrations SET pool_id = NULL, phase = NULL WHERE tournament_id = $1`
	if _, err := r.db.ExecContext(ctx, query, tournamentID); err != nil {
		return fmt.Errorf("failed to clear pool assignments for tournament %d: %w", tournamentID, err)
	}
	return nil
}
