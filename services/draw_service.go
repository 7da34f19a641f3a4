package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/padelpoint/pairing-engine/brackets"
	"github.com/padelpoint/pairing-engine/models"
	"github.com/padelpoint/pairing-engine/repositories"
	"github.com/padelpoint/pairing-engine/storage"
)

// phasePool is written onto registrations linked into a round-robin pool.
const phasePool = "pool"

// DrawResult reports one generation pass: everything that was persisted and
// everything that had to be skipped.
type DrawResult struct {
	Generator   string         `json:"generator"`
	Matches     []models.Match `json:"matches"`
	Pools       []models.Pool  `json:"pools,omitempty"`
	Batch       *BatchResult   `json:"batch"`
	SnapshotURL string         `json:"snapshot_url,omitempty"`
}

type DrawService interface {
	// GenerateDraw builds and persists the draw for a tournament: a
	// single-elimination bracket for knockout tournaments, round-robin
	// pools otherwise. Any previously generated matches and pools for the
	// tournament are discarded first, so re-running is safe and never
	// duplicates matches.
	GenerateDraw(ctx context.Context, tournamentID int) (*DrawResult, error)

	// GetDraw reads back the persisted matches and pools of a tournament.
	GetDraw(ctx context.Context, tournamentID int) (*DrawResult, error)
}

type drawService struct {
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	matchRepo        repositories.MatchRepository
	poolRepo         repositories.PoolRepository
	rankingService   RankingService
	hub              Broadcaster
	snapshots        storage.SnapshotUploader
	logger           *slog.Logger
}

func NewDrawService(
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	matchRepo repositories.MatchRepository,
	poolRepo repositories.PoolRepository,
	rankingService RankingService,
	hub Broadcaster,
	snapshots storage.SnapshotUploader,
	logger *slog.Logger,
) DrawService {
	return &drawService{
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		matchRepo:        matchRepo,
		poolRepo:         poolRepo,
		rankingService:   rankingService,
		hub:              hub,
		snapshots:        snapshots,
		logger:           logger,
	}
}

func (s *drawService) generatorFor(tournamentType models.TournamentType) (brackets.DrawGenerator, error) {
	switch tournamentType {
	case models.TournamentKnockout:
		return brackets.NewSingleEliminationGenerator(), nil
	case models.TournamentRoundRobin:
		return brackets.NewRoundRobinGenerator(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTournamentType, tournamentType)
	}
}

func (s *drawService) GenerateDraw(ctx context.Context, tournamentID int) (*DrawResult, error) {
	tournament, err := s.tournamentRepo.FindByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	generator, err := s.generatorFor(tournament.Type)
	if err != nil {
		return nil, err
	}

	rankings, err := s.rankingService.BuildRanking(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	result := &DrawResult{Generator: generator.Name(), Batch: &BatchResult{}}
	if len(rankings) == 0 {
		s.logger.Info("no confirmed registrations, nothing to generate",
			slog.Int("tournament_id", tournamentID))
		return result, nil
	}

	draw, err := generator.GenerateDraw(ctx, brackets.GenerateDrawParams{
		Tournament: tournament,
		Rankings:   rankings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s draw for tournament %d: %w",
			generator.Name(), tournamentID, err)
	}

	// Regeneration contract: discard whatever a previous pass produced
	// before writing anything, and fail fast if the clear itself fails.
	if err := s.clearExistingDraw(ctx, tournamentID); err != nil {
		return nil, err
	}

	poolIDs := s.persistPools(ctx, tournament, draw, result)
	s.persistMatches(ctx, tournament, draw, poolIDs, result)

	s.logger.Info("draw generated",
		slog.Int("tournament_id", tournamentID),
		slog.String("generator", generator.Name()),
		slog.Int("matches", len(result.Matches)),
		slog.Int("pools", len(result.Pools)),
		slog.Int("skipped", result.Batch.FailedCount()))

	s.exportSnapshot(ctx, tournamentID, result)

	if s.hub != nil {
		s.hub.BroadcastToRoom(tournamentRoom(tournamentID), map[string]interface{}{
			"type":    "DRAW_GENERATED",
			"payload": result,
		})
	}
	return result, nil
}

func (s *drawService) clearExistingDraw(ctx context.Context, tournamentID int) error {
	if err := s.matchRepo.DeleteByTournament(ctx, tournamentID); err != nil {
		return fmt.Errorf("failed to clear previous matches for tournament %d: %w", tournamentID, err)
	}
	if err := s.registrationRepo.ClearPoolAssignments(ctx, tournamentID); err != nil {
		return fmt.Errorf("failed to clear pool assignments for tournament %d: %w", tournamentID, err)
	}
	if err := s.poolRepo.DeleteByTournament(ctx, tournamentID); err != nil {
		return fmt.Errorf("failed to clear previous pools for tournament %d: %w", tournamentID, err)
	}
	return nil
}

// persistPools creates pool rows and links member registrations. It returns
// the pool number -> DB id map; pools that failed to persist are absent, and
// their matches get skipped by the match pass.
func (s *drawService) persistPools(ctx context.Context, tournament *models.Tournament, draw *brackets.Draw, result *DrawResult) map[int]int {
	poolIDs := make(map[int]int, len(draw.Pools))

	for _, dp := range draw.Pools {
		pool := models.Pool{
			TournamentID: tournament.ID,
			PoolNumber:   dp.PoolNumber,
			PoolType:     string(models.TournamentRoundRobin),
			NumTeams:     len(dp.MemberRegistrationIDs),
			Format:       dp.Format,
			Status:       models.PoolActive,
		}
		if err := s.poolRepo.Create(ctx, &pool); err != nil {
			s.logger.Warn("skipping pool and its matches",
				slog.Int("tournament_id", tournament.ID),
				slog.Int("pool_number", dp.PoolNumber),
				slog.Any("error", err))
			result.Batch.fail(dp.PoolNumber, err)
			continue
		}
		poolIDs[dp.PoolNumber] = pool.ID
		result.Pools = append(result.Pools, pool)

		for _, regID := range dp.MemberRegistrationIDs {
			if err := s.registrationRepo.UpdatePool(ctx, regID, pool.ID, phasePool); err != nil {
				s.logger.Warn("skipping pool link",
					slog.Int("registration_id", regID),
					slog.Int("pool_id", pool.ID),
					slog.Any("error", err))
				result.Batch.fail(regID, err)
			}
		}
	}
	return poolIDs
}

func (s *drawService) persistMatches(ctx context.Context, tournament *models.Tournament, draw *brackets.Draw, poolIDs map[int]int, result *DrawResult) {
	uidToIndex := make(map[string]int, len(draw.Matches))

	for _, dm := range draw.Matches {
		var poolID *int
		if dm.PoolNumber != nil {
			id, ok := poolIDs[*dm.PoolNumber]
			if !ok {
				// Pool row was skipped; its matches go with it.
				continue
			}
			poolID = &id
		}

		match := models.Match{
			TournamentID:         tournament.ID,
			PoolID:               poolID,
			RoundType:            dm.RoundType,
			RoundNumber:          dm.Round,
			MatchOrder:           dm.OrderInRound,
			Team1RegistrationID:  dm.Team1RegistrationID,
			Team2RegistrationID:  dm.Team2RegistrationID,
			IsBye:                dm.IsBye,
			Status:               dm.Status,
			WinnerRegistrationID: dm.WinnerRegistrationID,
		}
		if err := s.matchRepo.Create(ctx, &match); err != nil {
			s.logger.Warn("skipping match",
				slog.Int("tournament_id", tournament.ID),
				slog.String("uid", dm.UID),
				slog.Any("error", err))
			result.Batch.failRef(dm.UID, err)
			continue
		}
		result.Matches = append(result.Matches, match)
		uidToIndex[dm.UID] = len(result.Matches) - 1
		result.Batch.ok(match.ID)
	}

	// Second pass: resolve the UID linkage into next_match_id references on
	// the feeder matches, now that DB ids exist.
	for _, dm := range draw.Matches {
		targetIdx, ok := uidToIndex[dm.UID]
		if !ok {
			continue
		}
		target := &result.Matches[targetIdx]

		sources := []struct {
			uid  *string
			slot int
		}{
			{dm.SourceMatch1UID, 1},
			{dm.SourceMatch2UID, 2},
		}
		for _, src := range sources {
			if src.uid == nil {
				continue
			}
			feederIdx, ok := uidToIndex[*src.uid]
			if !ok {
				continue
			}
			feeder := &result.Matches[feederIdx]
			if err := s.matchRepo.UpdateNextMatchInfo(ctx, feeder.ID, target.ID, src.slot); err != nil {
				s.logger.Warn("skipping next-match link",
					slog.Int("match_id", feeder.ID),
					slog.Int("next_match_id", target.ID),
					slog.Any("error", err))
				result.Batch.fail(feeder.ID, err)
				continue
			}
			nextID, slot := target.ID, src.slot
			feeder.NextMatchID = &nextID
			feeder.NextMatchSlot = &slot
		}
	}
}

func (s *drawService) exportSnapshot(ctx context.Context, tournamentID int, result *DrawResult) {
	if s.snapshots == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("failed to encode draw snapshot", slog.Any("error", err))
		return
	}
	key := fmt.Sprintf("tournaments/%d/draw.json", tournamentID)
	url, err := s.snapshots.Upload(ctx, key, "application/json", bytes.NewReader(payload))
	if err != nil {
		// Snapshot export is auxiliary; the draw itself is already saved.
		s.logger.Warn("failed to upload draw snapshot",
			slog.String("key", key),
			slog.Any("error", err))
		return
	}
	result.SnapshotURL = url
}

func (s *drawService) GetDraw(ctx context.Context, tournamentID int) (*DrawResult, error) {
	tournament, err := s.tournamentRepo.FindByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	pools, err := s.poolRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	generator, err := s.generatorFor(tournament.Type)
	if err != nil {
		return nil, err
	}
	return &DrawResult{
		Generator: generator.Name(),
		Matches:   matches,
		Pools:     pools,
		Batch:     &BatchResult{},
	}, nil
}
