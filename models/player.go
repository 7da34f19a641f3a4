package models

// PlayerMatchResult is one historical match from a player's record, reduced
// to what strength scoring needs. HasWinner is false for matches that were
// never decided (walkovers, abandoned) — those count neither as a win nor
// as a loss.
type PlayerMatchResult struct {
	MatchID    int    `json:"match_id"`
	Team       string `json:"team"`
	WinnerTeam string `json:"winner_team"`
	HasWinner  bool   `json:"has_winner"`
}

// PlayerHistory bundles everything the strength scorer reads for one player.
type PlayerHistory struct {
	PlayerID  int                 `json:"player_id"`
	Results   []PlayerMatchResult `json:"results"`
	HasReview bool                `json:"has_review"`
}
