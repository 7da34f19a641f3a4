package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/padelpoint/pairing-engine/models"
)

var (
	ErrMatchNotFound            = errors.New("match not found")
	ErrMatchRegistrationInvalid = errors.New("match references an unknown registration")
)

type MatchRepository interface {
	Create(ctx context.Context, m *models.Match) error
	DeleteByTournament(ctx context.Context, tournamentID int) error
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error)
	// ListUnscheduledByTournament returns matches without a scheduled time,
	// ordered by (round_number, match_order) so earlier rounds schedule first.
	ListUnscheduledByTournament(ctx context.Context, tournamentID int) ([]models.Match, error)
	UpdateNextMatchInfo(ctx context.Context, id int, nextMatchID, nextMatchSlot int) error
	UpdateSchedule(ctx context.Context, id int, courtNumber int, scheduledTime time.Time) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	id, tournament_id, pool_id, round_type, round_number, match_order,
	team1_registration_id, team2_registration_id, is_bye, status,
	winner_registration_id, court_number, scheduled_time,
	next_match_id, next_match_slot`

func (r *postgresMatchRepository) Create(ctx context.Context, m *models.Match) error {
	query := `
		INSERT INTO matches (
			tournament_id, pool_id, round_type, round_number, match_order,
			team1_registration_id, team2_registration_id, is_bye, status,
			winner_registration_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		m.TournamentID,
		m.PoolID,
		m.RoundType,
		m.RoundNumber,
		m.MatchOrder,
		m.Team1RegistrationID,
		m.Team2RegistrationID,
		m.IsBye,
		m.Status,
		m.WinnerRegistrationID,
	).Scan(&m.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrMatchRegistrationInvalid
		}
		return fmt.Errorf("failed to create match (tournament %d, round %d, order %d): %w",
			m.TournamentID, m.RoundNumber, m.MatchOrder, err)
	}
	return nil
}

func (r *postgresMatchRepository) DeleteByTournament(ctx context.Context, tournamentID int) error {
	query := `DELETE FROM matches WHERE tournament_id = $1`
	if _, err := r.db.ExecContext(ctx, query, tournamentID); err != nil {
		return fmt.Errorf("failed to delete matches for tournament %d: %w", tournamentID, err)
	}
	return nil
}

func (r *postgresMatchRepository) scanMatches(rows *sql.Rows) ([]models.Match, error) {
	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(
			&m.ID,
			&m.TournamentID,
			&m.PoolID,
			&m.RoundType,
			&m.RoundNumber,
			&m.MatchOrder,
			&m.Team1RegistrationID,
			&m.Team2RegistrationID,
			&m.IsBye,
			&m.Status,
			&m.WinnerRegistrationID,
			&m.CourtNumber,
			&m.ScheduledTime,
			&m.NextMatchID,
			&m.NextMatchSlot,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate match rows: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	query := `SELECT` + matchColumns + `
		FROM matches
		WHERE tournament_id = $1
		ORDER BY round_number ASC, match_order ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()
	return r.scanMatches(rows)
}

func (r *postgresMatchRepository) ListUnscheduledByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	query := `SELECT` + matchColumns + `
		FROM matches
		WHERE tournament_id = $1 AND scheduled_time IS NULL
		ORDER BY round_number ASC, match_order ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unscheduled matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()
	return r.scanMatches(rows)
}

func (r *postgresMatchRepository) UpdateNextMatchInfo(ctx context.Context, id int, nextMatchID, nextMatchSlot int) error {
	query := `UPDATE matches SET next_match_id = $1, next_match_slot = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, nextMatchID, nextMatchSlot, id)
	if err != nil {
		return fmt.Errorf("failed to update next match info for match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateSchedule(ctx context.Context, id int, courtNumber int, scheduledTime time.Time) error {
	query := `UPDATE matches SET court_number = $1, scheduled_time = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, courtNumber, scheduledTime, id)
	if err != nil {
		return fmt.Errorf("failed to update schedule for match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
