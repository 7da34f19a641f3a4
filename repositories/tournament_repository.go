package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/padelpoint/pairing-engine/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	FindByID(ctx context.Context, id int) (*models.Tournament, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) FindByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT id, club_id, name, tournament_type, pool_size, pool_format,
		       available_courts, match_duration_minutes, start_date, created_at
		FROM tournaments
		WHERE id = $1`

	t := &models.Tournament{}
	var courts pq.Int64Array
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID,
		&t.ClubID,
		&t.Name,
		&t.Type,
		&t.PoolSize,
		&t.PoolFormat,
		&courts,
		&t.MatchDuration,
		&t.StartDate,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to find tournament %d: %w", id, err)
	}

	t.AvailableCourts = make([]int, len(courts))
	for i, c := range courts {
		t.AvailableCourts[i] = int(c)
	}
	return t, nil
}
