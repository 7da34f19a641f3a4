package brackets

import (
	"context"
	"errors"
	"fmt"

	"github.com/padelpoint/pairing-engine/models"
)

var ErrInvalidPoolSize = errors.New("pool size must be at least 1")

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() DrawGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobinPools"
}

// GenerateDraw partitions the ranking into round-robin pools and enumerates
// every pairing inside each pool.
//
// Members are distributed by ranking index modulo the pool count, not in
// contiguous blocks, so the strongest pairs land in different pools instead
// of stacking up in pool 1. Within a pool every unordered pair of members
// (i < j) becomes one match, match_order counting up in enumeration order.
func (g *RoundRobinGenerator) GenerateDraw(ctx context.Context, params GenerateDrawParams) (*Draw, error) {
	rankings := params.Rankings
	n := len(rankings)

	if n == 0 {
		return &Draw{}, nil
	}

	poolSize := params.Tournament.PoolSize
	if poolSize < 1 {
		return nil, ErrInvalidPoolSize
	}

	numPools := (n + poolSize - 1) / poolSize
	pools := make([]*DrawPool, numPools)
	for p := range pools {
		pools[p] = &DrawPool{
			PoolNumber: p + 1,
			Format:     params.Tournament.PoolFormat,
		}
	}

	for i, r := range rankings {
		pool := pools[i%numPools]
		pool.MemberRegistrationIDs = append(pool.MemberRegistrationIDs, r.RegistrationID)
	}

	matches := make([]*DrawMatch, 0)
	for _, pool := range pools {
		members := pool.MemberRegistrationIDs
		poolNumber := pool.PoolNumber
		matchOrder := 0

		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				matchOrder++
				team1 := members[i]
				team2 := members[j]
				matches = append(matches, &DrawMatch{
					UID:                 fmt.Sprintf("P%dM%d", poolNumber, matchOrder),
					Round:               1,
					RoundType:           models.RoundPool,
					OrderInRound:        matchOrder,
					PoolNumber:          &poolNumber,
					Team1RegistrationID: &team1,
					Team2RegistrationID: &team2,
					Status:              models.MatchScheduled,
				})
			}
		}
	}

	return &Draw{Matches: matches, Pools: pools}, nil
}
