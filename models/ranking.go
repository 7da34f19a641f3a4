package models

// PairRanking is the engine-internal view of a registration inside a
// computed ranking. It is derived, never persisted as its own row.
//
// RankingPosition is a dense 1..N sequence consistent with descending
// PairWeight; pairs with equal weight keep their registration insertion
// order (no secondary ranking signal exists).
type PairRanking struct {
	RegistrationID  int  `json:"registration_id"`
	Player1ID       int  `json:"player1_id"`
	Player2ID       int  `json:"player2_id"`
	PairWeight      int  `json:"pair_weight"`
	RankingPosition int  `json:"ranking_position"`
	IsSeed          bool `json:"is_seed"`
	SeedNumber      *int `json:"seed_number,omitempty"`
}
