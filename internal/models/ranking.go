package models

// RankingEntry is one member of a game's sorted ranking set. The score is
// the user's current standing: a later submission replaces it
// (last-write-wins, not best-of).
type RankingEntry struct {
	Username string  `json:"username"`
	Score    float64 `json:"score"`
}
