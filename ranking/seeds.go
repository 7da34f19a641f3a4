package ranking

import "github.com/padelpoint/pairing-engine/models"

// SeedCount returns how many of the top-ranked pairs become seeds for a
// field of n pairs: the default of n/4 clamped into [max(1, n/8), n/2].
// Zero pairs means zero seeds.
func SeedCount(n int) int {
	if n <= 0 {
		return 0
	}

	minSeeds := n / 8
	if minSeeds < 1 {
		minSeeds = 1
	}
	maxSeeds := n / 2
	numSeeds := n / 4

	if numSeeds < minSeeds {
		numSeeds = minSeeds
	}
	if numSeeds > maxSeeds {
		numSeeds = maxSeeds
	}
	return numSeeds
}

// ApplySeeds marks the top SeedCount pairs of a ranking as seeds, with a
// 1-based seed number equal to their rank. The slice is modified in place;
// the number of seeds applied is returned. Entries beyond the seed cutoff
// get their seed fields cleared so re-running after a field change is safe.
func ApplySeeds(rankings []models.PairRanking) int {
	numSeeds := SeedCount(len(rankings))
	for i := range rankings {
		if i < numSeeds {
			seed := rankings[i].RankingPosition
			rankings[i].IsSeed = true
			rankings[i].SeedNumber = &seed
		} else {
			rankings[i].IsSeed = false
			rankings[i].SeedNumber = nil
		}
	}
	return numSeeds
}
