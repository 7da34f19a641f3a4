package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/padelpoint/pairing-engine/models"
	"github.com/padelpoint/pairing-engine/ranking"
	"github.com/padelpoint/pairing-engine/repositories"
	"golang.org/x/sync/errgroup"
)

// weightWorkers caps the parallel pair-weight recomputation. Pairs touch
// disjoint rows, so they can run concurrently.
const weightWorkers = 8

// Broadcaster pushes engine events into tournament rooms. Satisfied by
// live.Hub; nil-able for callers that run without a websocket surface.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type SeedingResult struct {
	NumSeeds int          `json:"num_seeds"`
	Batch    *BatchResult `json:"batch"`
}

type RankingService interface {
	// PlayerStrength computes one player's strength from match history.
	// Unknown players score 0.
	PlayerStrength(ctx context.Context, playerID int, clubID *int) (int, error)

	// RecalculateWeights recomputes and persists pair_weight for every
	// confirmed registration of the tournament.
	RecalculateWeights(ctx context.Context, tournamentID int) (*BatchResult, error)

	// BuildRanking orders the tournament's confirmed registrations by pair
	// weight descending with dense positions. Empty when nothing is
	// confirmed.
	BuildRanking(ctx context.Context, tournamentID int) ([]models.PairRanking, error)

	// AssignSeeds flags the top pairs of the current ranking as seeds and
	// persists the flags, best-effort per pair.
	AssignSeeds(ctx context.Context, tournamentID int) (*SeedingResult, error)
}

type rankingService struct {
	registrationRepo repositories.RegistrationRepository
	historyRepo      repositories.PlayerHistoryRepository
	hub              Broadcaster
	logger           *slog.Logger
}

func NewRankingService(
	registrationRepo repositories.RegistrationRepository,
	historyRepo repositories.PlayerHistoryRepository,
	hub Broadcaster,
	logger *slog.Logger,
) RankingService {
	return &rankingService{
		registrationRepo: registrationRepo,
		historyRepo:      historyRepo,
		hub:              hub,
		logger:           logger,
	}
}

func (s *rankingService) PlayerStrength(ctx context.Context, playerID int, clubID *int) (int, error) {
	history, err := s.historyRepo.GetPlayerHistory(ctx, playerID, clubID)
	if err != nil {
		return 0, fmt.Errorf("failed to load history for player %d: %w", playerID, err)
	}
	return ranking.Strength(history), nil
}

func (s *rankingService) pairWeight(ctx context.Context, reg models.Registration, clubID *int) (int, error) {
	p1, err := s.historyRepo.GetPlayerHistory(ctx, reg.Player1ID, clubID)
	if err != nil {
		return 0, err
	}
	p2, err := s.historyRepo.GetPlayerHistory(ctx, reg.Player2ID, clubID)
	if err != nil {
		return 0, err
	}
	return ranking.PairWeight(p1, p2), nil
}

func (s *rankingService) RecalculateWeights(ctx context.Context, tournamentID int) (*BatchResult, error) {
	registrations, err := s.registrationRepo.ListConfirmedByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for tournament %d: %w", tournamentID, err)
	}

	batch := &BatchResult{}
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(weightWorkers)

	for _, reg := range registrations {
		reg := reg
		g.Go(func() error {
			weight, err := s.pairWeight(gCtx, reg, nil)
			if err == nil {
				err = s.registrationRepo.UpdatePairWeight(gCtx, reg.ID, weight)
			}
			if err != nil {
				s.logger.Warn("skipping pair weight update",
					slog.Int("registration_id", reg.ID),
					slog.Any("error", err))
				batch.fail(reg.ID, err)
				return nil
			}
			batch.ok(reg.ID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return batch, err
	}

	s.logger.Info("pair weights recalculated",
		slog.Int("tournament_id", tournamentID),
		slog.Int("updated", len(batch.Succeeded)),
		slog.Int("skipped", batch.FailedCount()))
	return batch, nil
}

func (s *rankingService) BuildRanking(ctx context.Context, tournamentID int) ([]models.PairRanking, error) {
	registrations, err := s.registrationRepo.ListConfirmedByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for tournament %d: %w", tournamentID, err)
	}
	return ranking.Rank(registrations), nil
}

func (s *rankingService) AssignSeeds(ctx context.Context, tournamentID int) (*SeedingResult, error) {
	rankings, err := s.BuildRanking(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	result := &SeedingResult{Batch: &BatchResult{}}
	if len(rankings) == 0 {
		return result, nil
	}

	// Reset before flagging so a shrunken field cannot keep stale seeds.
	if err := s.registrationRepo.ClearSeeds(ctx, tournamentID); err != nil {
		return nil, fmt.Errorf("failed to clear existing seeds for tournament %d: %w", tournamentID, err)
	}

	result.NumSeeds = ranking.ApplySeeds(rankings)
	for _, r := range rankings[:result.NumSeeds] {
		if err := s.registrationRepo.UpdateSeed(ctx, r.RegistrationID, *r.SeedNumber); err != nil {
			s.logger.Warn("skipping seed flag",
				slog.Int("registration_id", r.RegistrationID),
				slog.Int("seed_number", *r.SeedNumber),
				slog.Any("error", err))
			result.Batch.fail(r.RegistrationID, err)
			continue
		}
		result.Batch.ok(r.RegistrationID)
	}

	s.logger.Info("seeds assigned",
		slog.Int("tournament_id", tournamentID),
		slog.Int("num_seeds", result.NumSeeds),
		slog.Int("skipped", result.Batch.FailedCount()))

	if s.hub != nil {
		s.hub.BroadcastToRoom(tournamentRoom(tournamentID), map[string]interface{}{
			"type":    "SEEDS_ASSIGNED",
			"payload": result,
		})
	}
	return result, nil
}

func tournamentRoom(tournamentID int) string {
	return fmt.Sprintf("tournament_%d", tournamentID)
}
