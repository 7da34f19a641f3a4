package brackets

import (
	"context"

	"github.com/padelpoint/pairing-engine/models"
)

type GenerateDrawParams struct {
	Tournament *models.Tournament
	Rankings   []models.PairRanking
}

// DrawMatch is the in-memory form of a match between generation and
// persistence. UIDs tie matches to their next-round targets before DB ids
// exist; the service resolves them into next_match_id during the save pass.
type DrawMatch struct {
	UID          string
	Round        int
	RoundType    string
	OrderInRound int
	PoolNumber   *int

	Team1RegistrationID *int
	Team2RegistrationID *int

	SourceMatch1UID *string
	SourceMatch2UID *string

	IsBye                bool
	Status               models.MatchStatus
	WinnerRegistrationID *int
}

// DrawPool is a generated round-robin group plus its members, in ranking
// order of assignment.
type DrawPool struct {
	PoolNumber            int
	Format                string
	MemberRegistrationIDs []int
}

// Draw is the full output of one generation pass: every match of the draw
// and, for pool tournaments, the pools they belong to.
type Draw struct {
	Matches []*DrawMatch
	Pools   []*DrawPool
}

type DrawGenerator interface {
	GenerateDraw(ctx context.Context, params GenerateDrawParams) (*Draw, error)

	Name() string
}

// RoundName labels a knockout round by its distance from the final.
func RoundName(distanceFromFinal int) string {
	switch distanceFromFinal {
	case 0:
		return models.RoundFinal
	case 1:
		return models.RoundSemis
	case 2:
		return models.RoundQuarters
	case 3:
		return models.RoundOf16
	case 4:
		return models.RoundOf32
	case 5:
		return models.RoundOf64
	default:
		return models.RoundQualifications
	}
}
