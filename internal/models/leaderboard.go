package models

// Leaderboard row sources.
const (
	SourceLive    = "live"    // current standing from the ranking store
	SourceHistory = "history" // historical record from the score ledger
)

// LeaderboardRow is one row of a merged leaderboard. A user can appear
// several times: once for their ranking-store entry plus once per ledger
// record. The merge deliberately does not deduplicate across sources.
type LeaderboardRow struct {
	Username string  `json:"username"`
	Score    float64 `json:"score"`
	Source   string  `json:"source"`
}
