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
	ErrPoolNotFound = errors.New("pool not found")
	ErrPoolConflict = errors.New("pool number already exists for this tournament")
)

type PoolRepository interface {
	Create(ctx context.Context, p *models.Pool) error
	DeleteByTournament(ctx context.Context, tournamentID int) error
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Pool, error)
}

type postgresPoolRepository struct {
	db *sql.DB
}

func NewPostgresPoolRepository(db *sql.DB) PoolRepository {
	return &postgresPoolRepository{db: db}
}

func (r *postgresPoolRepository) Create(ctx context.Context, p *models.Pool) error {
	query := `
		INSERT INTO pools (tournament_id, pool_number, pool_type, num_teams, format, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		p.TournamentID,
		p.PoolNumber,
		p.PoolType,
		p.NumTeams,
		p.Format,
		p.Status,
	).Scan(&p.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrPoolConflict
		}
		return fmt.Errorf("failed to create pool %d for tournament %d: %w", p.PoolNumber, p.TournamentID, err)
	}
	return nil
}

func (r *postgresPoolRepository) DeleteByTournament(ctx context.Context, tournamentID int) error {
	query := `DELETE FROM pools WHERE tournament_id = $1`
	if _, err := r.db.ExecContext(ctx, query, tournamentID); err != nil {
		return fmt.Errorf("failed to delete pools for tournament %d: %w", tournamentID, err)
	}
	return nil
}

func (r *postgresPoolRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Pool, error) {
	query := `
		SELECT id, tournament_id, pool_number, pool_type, num_teams, format, status
		FROM pools
		WHERE tournament_id = $1
		ORDER BY pool_number ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	pools := make([]models.Pool, 0)
	for rows.Next() {
		var p models.Pool
		if err := rows.Scan(&p.ID, &p.TournamentID, &p.PoolNumber, &p.PoolType, &p.NumTeams, &p.Format, &p.Status); err != nil {
			return nil, fmt.Errorf("failed to scan pool row: %w", err)
		}
		pools = append(pools, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pool rows: %w", err)
	}
	return pools, nil
}
