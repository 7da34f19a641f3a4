package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/padelpoint/pairing-engine/models"
	"github.com/padelpoint/pairing-engine/repositories"
)

var errFakeStore = errors.New("fake store failure")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeTournamentRepo struct {
	tournaments map[int]models.Tournament
}

func (f *fakeTournamentRepo) FindByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, ok := f.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return &t, nil
}

type fakeRegistrationRepo struct {
	mu   sync.Mutex
	regs []models.Registration

	weightFailID   int
	seedFailID     int
	poolLinkFailID int

	clearSeedsCalls int
}

func (f *fakeRegistrationRepo) ListConfirmedByTournament(ctx context.Context, tournamentID int) ([]models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Registration, 0)
	for _, r := range f.regs {
		if r.TournamentID == tournamentID && r.Status == models.RegistrationConfirmed {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRegistrationRepo) find(id int) *models.Registration {
	for i := range f.regs {
		if f.regs[i].ID == id {
			return &f.regs[i]
		}
	}
	return nil
}

func (f *fakeRegistrationRepo) UpdatePairWeight(ctx context.Context, id int, weight int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == f.weightFailID {
		return errFakeStore
	}
	reg := f.find(id)
	if reg == nil {
		return repositories.ErrRegistrationNotFound
	}
	reg.PairWeight = weight
	return nil
}

func (f *fakeRegistrationRepo) UpdateSeed(ctx context.Context, id int, seedNumber int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == f.seedFailID {
		return errFakeStore
	}
	reg := f.find(id)
	if reg == nil {
		return repositories.ErrRegistrationNotFound
	}
	seed := seedNumber
	reg.IsSeed = true
	reg.SeedNumber = &seed
	return nil
}

func (f *fakeRegistrationRepo) ClearSeeds(ctx context.Context, tournamentID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearSeedsCalls++
	for i := range f.regs {
		if f.regs[i].TournamentID == tournamentID {
			f.regs[i].IsSeed = false
			f.regs[i].SeedNumber = nil
		}
	}
	return nil
}

func (f *fakeRegistrationRepo) UpdatePool(ctx context.Context, id int, poolID int, phase string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == f.poolLinkFailID {
		return errFakeStore
	}
	reg := f.find(id)
	if reg == nil {
		return repositories.ErrRegistrationNotFound
	}
	p, ph := poolID, phase
	reg.PoolID = &p
	reg.Phase = &ph
	return nil
}

func (f *fakeRegistrationRepo) ClearPoolAssignments(ctx context.Context, tournamentID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.regs {
		if f.regs[i].TournamentID == tournamentID {
			f.regs[i].PoolID = nil
			f.regs[i].Phase = nil
		}
	}
	return nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	nextID  int
	matches []models.Match

	scheduleFailID  int
	createFailRound int
	createFailOrder int
}

func (f *fakeMatchRepo) Create(ctx context.Context, m *models.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createFailRound != 0 && m.RoundNumber == f.createFailRound && m.MatchOrder == f.createFailOrder {
		return errFakeStore
	}
	f.nextID++
	m.ID = f.nextID
	f.matches = append(f.matches, *m)
	return nil
}

func (f *fakeMatchRepo) DeleteByTournament(ctx context.Context, tournamentID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.matches[:0]
	for _, m := range f.matches {
		if m.TournamentID != tournamentID {
			kept = append(kept, m)
		}
	}
	f.matches = kept
	return nil
}

func (f *fakeMatchRepo) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Match, 0)
	for _, m := range f.matches {
		if m.TournamentID == tournamentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) ListUnscheduledByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Match, 0)
	for _, m := range f.matches {
		if m.TournamentID == tournamentID && m.ScheduledTime == nil {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) findLocked(id int) *models.Match {
	for i := range f.matches {
		if f.matches[i].ID == id {
			return &f.matches[i]
		}
	}
	return nil
}

func (f *fakeMatchRepo) UpdateNextMatchInfo(ctx context.Context, id int, nextMatchID, nextMatchSlot int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.findLocked(id)
	if m == nil {
		return repositories.ErrMatchNotFound
	}
	next, slot := nextMatchID, nextMatchSlot
	m.NextMatchID = &next
	m.NextMatchSlot = &slot
	return nil
}

func (f *fakeMatchRepo) UpdateSchedule(ctx context.Context, id int, courtNumber int, scheduledTime time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == f.scheduleFailID {
		return errFakeStore
	}
	m := f.findLocked(id)
	if m == nil {
		return repositories.ErrMatchNotFound
	}
	court, at := courtNumber, scheduledTime
	m.CourtNumber = &court
	m.ScheduledTime = &at
	return nil
}

type fakePoolRepo struct {
	mu     sync.Mutex
	nextID int
	pools  []models.Pool

	failPoolNumbers map[int]bool
}

func (f *fakePoolRepo) Create(ctx context.Context, p *models.Pool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPoolNumbers[p.PoolNumber] {
		return errFakeStore
	}
	f.nextID++
	p.ID = f.nextID
	f.pools = append(f.pools, *p)
	return nil
}

func (f *fakePoolRepo) DeleteByTournament(ctx context.Context, tournamentID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.pools[:0]
	for _, p := range f.pools {
		if p.TournamentID != tournamentID {
			kept = append(kept, p)
		}
	}
	f.pools = kept
	return nil
}

func (f *fakePoolRepo) ListByTournament(ctx context.Context, tournamentID int) ([]models.Pool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Pool, 0)
	for _, p := range f.pools {
		if p.TournamentID == tournamentID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeHistoryRepo struct {
	histories map[int]models.PlayerHistory
}

func (f *fakeHistoryRepo) GetPlayerHistory(ctx context.Context, playerID int, clubID *int) (models.PlayerHistory, error) {
	if h, ok := f.histories[playerID]; ok {
		return h, nil
	}
	return models.PlayerHistory{PlayerID: playerID}, nil
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, roomID)
}
