package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/padelpoint/pairing-engine/repositories"
	"github.com/padelpoint/pairing-engine/scheduling"
)

// ScheduleResult reports one scheduling pass over a tournament's
// unscheduled matches.
type ScheduleResult struct {
	Assignments []scheduling.Assignment `json:"assignments"`
	Batch       *BatchResult            `json:"batch"`
}

type ScheduleService interface {
	// ScheduleMatches assigns a court and start time to every unscheduled
	// match of the tournament, earlier rounds first. No unscheduled matches
	// is a no-op; unscheduled matches with no configured courts is a
	// configuration error.
	ScheduleMatches(ctx context.Context, tournamentID int) (*ScheduleResult, error)
}

type scheduleService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	hub            Broadcaster
	logger         *slog.Logger
}

func NewScheduleService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	hub Broadcaster,
	logger *slog.Logger,
) ScheduleService {
	return &scheduleService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		hub:            hub,
		logger:         logger,
	}
}

func (s *scheduleService) ScheduleMatches(ctx context.Context, tournamentID int) (*ScheduleResult, error) {
	tournament, err := s.tournamentRepo.FindByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	matches, err := s.matchRepo.ListUnscheduledByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unscheduled matches for tournament %d: %w", tournamentID, err)
	}

	result := &ScheduleResult{Batch: &BatchResult{}}
	if len(matches) == 0 {
		return result, nil
	}

	assignments, err := scheduling.BuildSchedule(
		matches,
		tournament.AvailableCourts,
		tournament.StartDate,
		tournament.MatchDurationAsTime(),
	)
	if err != nil {
		return nil, err
	}

	for _, a := range assignments {
		if err := s.matchRepo.UpdateSchedule(ctx, a.MatchID, a.CourtNumber, a.ScheduledTime); err != nil {
			s.logger.Warn("skipping schedule update",
				slog.Int("match_id", a.MatchID),
				slog.Int("court", a.CourtNumber),
				slog.Any("error", err))
			result.Batch.fail(a.MatchID, err)
			continue
		}
		result.Assignments = append(result.Assignments, a)
		result.Batch.ok(a.MatchID)
	}

	s.logger.Info("matches scheduled",
		slog.Int("tournament_id", tournamentID),
		slog.Int("scheduled", len(result.Assignments)),
		slog.Int("skipped", result.Batch.FailedCount()))

	if s.hub != nil {
		s.hub.BroadcastToRoom(tournamentRoom(tournamentID), map[string]interface{}{
			"type":    "SCHEDULE_UPDATED",
			"payload": result,
		})
	}
	return result, nil
}
