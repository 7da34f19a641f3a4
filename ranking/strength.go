// Package ranking holds the pure computation behind pair ranking: strength
// scoring, pair weights, the stable ranker and the seed/bye arithmetic.
// Nothing in this package touches the database; services feed it values and
// persist what comes back.
package ranking

import "github.com/padelpoint/pairing-engine/models"

const (
	winPoints   = 10
	lossPoints  = 3
	reviewBonus = 10
)

// Strength computes a player's strength from their match history:
// wins*10 + losses*3, plus a flat bonus when the player has at least one
// qualifying review. Matches without a recorded winner are excluded from
// both counts. A player with no history scores 0.
func Strength(history models.PlayerHistory) int {
	wins, losses := 0, 0
	for _, r := range history.Results {
		if !r.HasWinner {
			continue
		}
		if r.Team == r.WinnerTeam {
			wins++
		} else {
			losses++
		}
	}

	points := wins*winPoints + losses*lossPoints
	if history.HasReview {
		points += reviewBonus
	}
	return points
}

// PairWeight combines two players' strength into a single pair weight.
// Commutative: the registration order of the two players does not matter.
func PairWeight(p1, p2 models.PlayerHistory) int {
	return Strength(p1) + Strength(p2)
}
