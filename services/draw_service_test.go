package services

import (
	"context"
	"testing"
	"time"

	"github.com/padelpoint/pairing-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func knockoutTournament(id int) models.Tournament {
	return models.Tournament{
		ID:              id,
		Name:            "club open",
		Type:            models.TournamentKnockout,
		AvailableCourts: []int{1, 2},
		MatchDuration:   60,
		StartDate:       time.Date(2026, 9, 12, 9, 0, 0, 0, time.UTC),
	}
}

func confirmedRegs(tournamentID int, weights ...int) []models.Registration {
	regs := make([]models.Registration, len(weights))
	for i, w := range weights {
		regs[i] = models.Registration{
			ID:           i + 1,
			TournamentID: tournamentID,
			Player1ID:    100 + i,
			Player2ID:    200 + i,
			PairWeight:   w,
			Status:       models.RegistrationConfirmed,
			CreatedAt:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute),
		}
	}
	return regs
}

func newDrawFixture(t models.Tournament, regs []models.Registration) (DrawService, *fakeMatchRepo, *fakePoolRepo, *fakeRegistrationRepo) {
	tournamentRepo := &fakeTournamentRepo{tournaments: map[int]models.Tournament{t.ID: t}}
	regRepo := &fakeRegistrationRepo{regs: regs}
	matchRepo := &fakeMatchRepo{}
	poolRepo := &fakePoolRepo{}
	historyRepo := &fakeHistoryRepo{}
	logger := testLogger()

	rankingSvc := NewRankingService(regRepo, historyRepo, nil, logger)
	drawSvc := NewDrawService(tournamentRepo, regRepo, matchRepo, poolRepo, rankingSvc, &fakeBroadcaster{}, nil, logger)
	return drawSvc, matchRepo, poolRepo, regRepo
}

func TestGenerateDraw_KnockoutFivePairs(t *testing.T) {
	tournament := knockoutTournament(1)
	svc, matchRepo, _, _ := newDrawFixture(tournament, confirmedRegs(1, 50, 40, 30, 20, 10))

	result, err := svc.GenerateDraw(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "SingleElimination", result.Generator)
	assert.Zero(t, result.Batch.FailedCount())

	var round1 []models.Match
	for _, m := range matchRepo.matches {
		if m.RoundNumber == 1 {
			round1 = append(round1, m)
		}
	}
	require.Len(t, round1, 3)

	assert.Equal(t, 1, *round1[0].Team1RegistrationID)
	assert.Equal(t, 2, *round1[0].Team2RegistrationID)
	assert.Equal(t, 3, *round1[1].Team1RegistrationID)
	assert.Equal(t, 4, *round1[1].Team2RegistrationID)

	bye := round1[2]
	assert.True(t, bye.IsBye)
	assert.Equal(t, models.MatchCompleted, bye.Status)
	require.NotNil(t, bye.WinnerRegistrationID)
	assert.Equal(t, 5, *bye.WinnerRegistrationID)

	// Non-bye round 1 matches link into round 2.
	require.NotNil(t, round1[0].NextMatchID)
	require.NotNil(t, round1[0].NextMatchSlot)
	assert.Equal(t, 1, *round1[0].NextMatchSlot)
	require.NotNil(t, round1[1].NextMatchID)
	assert.Equal(t, *round1[0].NextMatchID, *round1[1].NextMatchID)
	assert.Equal(t, 2, *round1[1].NextMatchSlot)
}

func TestGenerateDraw_RegenerationDoesNotDuplicate(t *testing.T) {
	tournament := knockoutTournament(1)
	svc, matchRepo, _, _ := newDrawFixture(tournament, confirmedRegs(1, 50, 40, 30, 20))

	_, err := svc.GenerateDraw(context.Background(), 1)
	require.NoError(t, err)
	firstCount := len(matchRepo.matches)

	_, err = svc.GenerateDraw(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, firstCount, len(matchRepo.matches))
}

func TestGenerateDraw_RoundRobinPools(t *testing.T) {
	tournament := knockoutTournament(2)
	tournament.Type = models.TournamentRoundRobin
	tournament.PoolSize = 4
	tournament.PoolFormat = "single"
	svc, matchRepo, poolRepo, regRepo := newDrawFixture(tournament, confirmedRegs(2, 80, 70, 60, 50, 40, 30, 20, 10))

	result, err := svc.GenerateDraw(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "RoundRobinPools", result.Generator)

	require.Len(t, poolRepo.pools, 2)
	assert.Equal(t, 4, poolRepo.pools[0].NumTeams)
	assert.Equal(t, 4, poolRepo.pools[1].NumTeams)

	// 6 round-robin matches per pool of 4.
	assert.Len(t, matchRepo.matches, 12)
	for _, m := range matchRepo.matches {
		assert.Equal(t, models.RoundPool, m.RoundType)
		require.NotNil(t, m.PoolID)
	}

	for _, reg := range regRepo.regs {
		require.NotNil(t, reg.PoolID, "registration %d not linked to a pool", reg.ID)
		require.NotNil(t, reg.Phase)
		assert.Equal(t, "pool", *reg.Phase)
	}
}

func TestGenerateDraw_PoolFailureSkipsItsMatches(t *testing.T) {
	tournament := knockoutTournament(3)
	tournament.Type = models.TournamentRoundRobin
	tournament.PoolSize = 4
	svc, matchRepo, poolRepo, _ := newDrawFixture(tournament, confirmedRegs(3, 80, 70, 60, 50, 40, 30, 20, 10))
	poolRepo.failPoolNumbers = map[int]bool{2: true}

	result, err := svc.GenerateDraw(context.Background(), 3)
	require.NoError(t, err)

	// Pool 1 survives with its 6 matches; pool 2 and its matches are skipped.
	require.Len(t, poolRepo.pools, 1)
	assert.Len(t, matchRepo.matches, 6)
	require.NotZero(t, result.Batch.FailedCount())
	assert.Equal(t, 2, result.Batch.Failed[0].ID)
}

func TestGenerateDraw_SkippedMatchReportedByDrawReference(t *testing.T) {
	tournament := knockoutTournament(7)
	svc, matchRepo, _, _ := newDrawFixture(tournament, confirmedRegs(7, 50, 40, 30, 20))
	matchRepo.createFailRound = 1
	matchRepo.createFailOrder = 2

	result, err := svc.GenerateDraw(context.Background(), 7)
	require.NoError(t, err)

	// The failed insert is reported by its draw reference, not a bare order
	// number that round 2 match 2 would collide with.
	require.Len(t, result.Batch.Failed, 1)
	assert.Equal(t, "R1M2", result.Batch.Failed[0].Ref)
	assert.Zero(t, result.Batch.Failed[0].ID)

	// The surviving matches still persisted and linked up.
	require.Len(t, result.Matches, 2)
	assert.Equal(t, 1, result.Matches[0].RoundNumber)
	assert.Equal(t, 2, result.Matches[1].RoundNumber)
	require.NotNil(t, result.Matches[0].NextMatchID)
	assert.Equal(t, result.Matches[1].ID, *result.Matches[0].NextMatchID)
}

func TestGenerateDraw_NoConfirmedRegistrations(t *testing.T) {
	tournament := knockoutTournament(4)
	svc, matchRepo, _, _ := newDrawFixture(tournament, nil)

	result, err := svc.GenerateDraw(context.Background(), 4)
	require.NoError(t, err)
	assert.Empty(t, result.Matches)
	assert.Empty(t, matchRepo.matches)
}

func TestGenerateDraw_UnknownTournamentType(t *testing.T) {
	tournament := knockoutTournament(5)
	tournament.Type = "swiss"
	svc, _, _, _ := newDrawFixture(tournament, confirmedRegs(5, 10, 20))

	_, err := svc.GenerateDraw(context.Background(), 5)
	assert.ErrorIs(t, err, ErrUnsupportedTournamentType)
}

func TestGenerateDraw_TournamentNotFound(t *testing.T) {
	svc, _, _, _ := newDrawFixture(knockoutTournament(6), nil)

	_, err := svc.GenerateDraw(context.Background(), 99)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
