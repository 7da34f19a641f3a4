package brackets

import (
	"context"
	"fmt"
	"math"

	"github.com/padelpoint/pairing-engine/models"
)

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() DrawGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) Name() string {
	return "SingleElimination"
}

// GenerateDraw builds a single-elimination draw from a ranking.
//
// Round 1 pairs consecutive ranking entries: (rank 1, rank 2), (rank 3,
// rank 4), and so on. An odd field leaves the last pair alone — that match
// is a bye, created completed with its occupant as winner. Rounds after the
// first are empty placeholder matches wired to their feeders through source
// UIDs, so the advancement linkage can be persisted at generation time;
// winners known already (byes) are propagated into their next slot.
func (g *SingleEliminationGenerator) GenerateDraw(ctx context.Context, params GenerateDrawParams) (*Draw, error) {
	rankings := params.Rankings
	n := len(rankings)

	if n == 0 {
		return &Draw{}, nil
	}

	numRounds := 1
	if n > 1 {
		numRounds = int(math.Ceil(math.Log2(float64(n))))
	}

	current := make([]*DrawMatch, 0, (n+1)/2)
	for i := 0; i < n; i += 2 {
		order := len(current) + 1
		m := &DrawMatch{
			UID:          fmt.Sprintf("R1M%d", order),
			Round:        1,
			RoundType:    RoundName(numRounds - 1),
			OrderInRound: order,
			Status:       models.MatchScheduled,
		}

		team1 := rankings[i].RegistrationID
		m.Team1RegistrationID = &team1
		if i+1 < n {
			team2 := rankings[i+1].RegistrationID
			m.Team2RegistrationID = &team2
		} else {
			// Odd field: the last pair advances without playing.
			m.IsBye = true
			m.Status = models.MatchCompleted
			m.WinnerRegistrationID = &team1
		}
		current = append(current, m)
	}

	allMatches := make([]*DrawMatch, 0, 2*len(current))
	allMatches = append(allMatches, current...)

	for r := 2; r <= numRounds; r++ {
		count := (len(current) + 1) / 2
		next := make([]*DrawMatch, 0, count)
		for i := 0; i < count; i++ {
			next = append(next, &DrawMatch{
				UID:          fmt.Sprintf("R%dM%d", r, i+1),
				Round:        r,
				RoundType:    RoundName(numRounds - r),
				OrderInRound: i + 1,
				Status:       models.MatchScheduled,
			})
		}

		for i, m := range current {
			target := next[i/2]
			uid := m.UID
			if i%2 == 0 {
				target.SourceMatch1UID = &uid
			} else {
				target.SourceMatch2UID = &uid
			}
			if m.IsBye && m.WinnerRegistrationID != nil {
				if i%2 == 0 {
					target.Team1RegistrationID = m.WinnerRegistrationID
				} else {
					target.Team2RegistrationID = m.WinnerRegistrationID
				}
			}
		}

		allMatches = append(allMatches, next...)
		current = next
	}

	return &Draw{Matches: allMatches}, nil
}
