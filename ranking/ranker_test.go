package ranking

import (
	"testing"

	"github.com/padelpoint/pairing-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regs(weights ...int) []models.Registration {
	out := make([]models.Registration, len(weights))
	for i, w := range weights {
		out[i] = models.Registration{
			ID:         i + 1,
			Player1ID:  100 + i,
			Player2ID:  200 + i,
			PairWeight: w,
			Status:     models.RegistrationConfirmed,
		}
	}
	return out
}

func TestRank_DescendingDensePositions(t *testing.T) {
	rankings := Rank(regs(50, 40, 30, 20, 10))

	require.Len(t, rankings, 5)
	for i, r := range rankings {
		assert.Equal(t, i+1, r.RankingPosition)
		assert.Equal(t, i+1, r.RegistrationID)
	}
	assert.Equal(t, 50, rankings[0].PairWeight)
	assert.Equal(t, 10, rankings[4].PairWeight)
}

func TestRank_StableTieBreak(t *testing.T) {
	// Registrations 2, 3 and 4 share a weight; their insertion order must
	// survive the sort.
	rankings := Rank(regs(10, 30, 30, 30, 50))

	require.Len(t, rankings, 5)
	assert.Equal(t, 5, rankings[0].RegistrationID)
	assert.Equal(t, 2, rankings[1].RegistrationID)
	assert.Equal(t, 3, rankings[2].RegistrationID)
	assert.Equal(t, 4, rankings[3].RegistrationID)
	assert.Equal(t, 1, rankings[4].RegistrationID)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	input := regs(10, 50)
	Rank(input)
	assert.Equal(t, 1, input[0].ID)
	assert.Equal(t, 10, input[0].PairWeight)
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}
