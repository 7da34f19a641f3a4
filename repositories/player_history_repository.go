package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/padelpoint/pairing-engine/models"
)

type PlayerHistoryRepository interface {
	// GetPlayerHistory loads the match results and review flag strength
	// scoring needs. clubID, when set, restricts which matches count.
	// An unknown player has an empty history, not an error.
	GetPlayerHistory(ctx context.Context, playerID int, clubID *int) (models.PlayerHistory, error)
}

type postgresPlayerHistoryRepository struct {
	db *sql.DB
}

func NewPostgresPlayerHistoryRepository(db *sql.DB) PlayerHistoryRepository {
	return &postgresPlayerHistoryRepository{db: db}
}

func (r *postgresPlayerHistoryRepository) GetPlayerHistory(ctx context.Context, playerID int, clubID *int) (models.PlayerHistory, error) {
	history := models.PlayerHistory{PlayerID: playerID}

	query := `
		SELECT mp.match_id, mp.team,
		       COALESCE(m.winner_team, ''), m.winner_team IS NOT NULL
		FROM match_participants mp
		JOIN matches_history m ON m.id = mp.match_id
		WHERE mp.player_id = $1 AND mp.participant_type = 'user'
		  AND ($2::int IS NULL OR m.club_id = $2)
		ORDER BY mp.match_id ASC`

	rows, err := r.db.QueryContext(ctx, query, playerID, clubID)
	if err != nil {
		return history, fmt.Errorf("failed to load match history for player %d: %w", playerID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var result models.PlayerMatchResult
		if err := rows.Scan(&result.MatchID, &result.Team, &result.WinnerTeam, &result.HasWinner); err != nil {
			return history, fmt.Errorf("failed to scan match history row: %w", err)
		}
		history.Results = append(history.Results, result)
	}
	if err := rows.Err(); err != nil {
		return history, fmt.Errorf("failed to iterate match history rows: %w", err)
	}

	reviewQuery := `SELECT EXISTS (SELECT 1 FROM reviews WHERE player_id = $1 AND qualifying = TRUE)`
	if err := r.db.QueryRowContext(ctx, reviewQuery, playerID).Scan(&history.HasReview); err != nil {
		return history, fmt.Errorf("failed to check reviews for player %d: %w", playerID, err)
	}

	return history, nil
}
