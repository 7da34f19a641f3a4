package ranking

import (
	"sort"

	"github.com/padelpoint/pairing-engine/models"
)

// Rank orders confirmed registrations by pair weight descending and assigns
// dense 1..N positions. The sort is stable: pairs with equal weight keep the
// relative order they arrived in (registration insertion order). Callers must
// pass registrations in that order.
//
// An empty input produces an empty ranking, not an error; downstream stages
// treat the empty case as "nothing to generate".
func Rank(registrations []models.Registration) []models.PairRanking {
	ranked := make([]models.Registration, len(registrations))
	copy(ranked, registrations)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PairWeight > ranked[j].PairWeight
	})

	rankings := make([]models.PairRanking, len(ranked))
	for i, reg := range ranked {
		rankings[i] = models.PairRanking{
			RegistrationID:  reg.ID,
			Player1ID:       reg.Player1ID,
			Player2ID:       reg.Player2ID,
			PairWeight:      reg.PairWeight,
			RankingPosition: i + 1,
			IsSeed:          reg.IsSeed,
			SeedNumber:      reg.SeedNumber,
		}
	}
	return rankings
}
