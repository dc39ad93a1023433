package services

import (
	"context"
	"sort"

	"github.com/sbilibin2017/gw-leaderboard/internal/logger"
	"github.com/sbilibin2017/gw-leaderboard/internal/models"
)

// RankingReader reads and replaces a game's live ranking set.
type RankingReader interface {
	RangeDesc(ctx context.Context, game string) ([]models.RankingEntry, error)
	Rebuild(ctx context.Context, game string, entries []models.RankingEntry) error
}

// ScoreReader lists historical ledger rows.
type ScoreReader interface {
	ListByGame(ctx context.Context, game string) ([]models.ScoreDB, error)
}

// LeaderboardService merges the live ranking store with the durable score
// ledger into one ordered view per game.
type LeaderboardService struct {
	ranking RankingReader
	ledger  ScoreReader
	users   UserReader
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(ranking RankingReader, ledger ScoreReader, users UserReader) *LeaderboardService {
	return &LeaderboardService{
		ranking: ranking,
		ledger:  ledger,
		users:   users,
	}
}

// GetLeaderboard returns the merged leaderboard for a game. Live ranking
// entries and historical ledger rows are listed as separate rows without
// deduplication, so a user appears once per ranking entry plus once per
// ledger record. Ledger rows whose user id no longer resolves are skipped.
// The result is sorted by score descending with a stable sort, so rows of
// equal score keep their live-before-history concatenation order.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, game string) ([]models.LeaderboardRow, error) {
	live, err := s.ranking.RangeDesc(ctx, game)
	if err != nil {
		logger.Log.Errorw("failed to read ranking store", "game", game, "err", err)
		return nil, err
	}

	history, err := s.ledger.ListByGame(ctx, game)
	if err != nil {
		logger.Log.Errorw("failed to read score ledger", "game", game, "err", err)
		return nil, err
	}

	rows := make([]models.LeaderboardRow, 0, len(live)+len(history))
	for _, e := range live {
		rows = append(rows, models.LeaderboardRow{
			Username: e.Username,
			Score:    e.Score,
			Source:   models.SourceLive,
		})
	}

	for _, rec := range history {
		user, err := s.users.GetByID(ctx, rec.UserID)
		if err != nil {
			logger.Log.Errorw("failed to resolve ledger user", "user_id", rec.UserID, "err", err)
			return nil, err
		}
		if user == nil {
			// Dangling reference, tolerated: skip the row, keep the merge.
			logger.Log.Warnw("skipping ledger row with unknown user", "user_id", rec.UserID, "game", game)
			continue
		}
		rows = append(rows, models.LeaderboardRow{
			Username: user.Username,
			Score:    rec.Score,
			Source:   models.SourceHistory,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})

	return rows, nil
}

// Rebuild reconstructs a game's live ranking set from the ledger. Ledger
// rows are replayed in submission order and the latest score per user wins,
// matching what the ranking store would hold had every upsert succeeded.
func (s *LeaderboardService) Rebuild(ctx context.Context, game string) error {
	history, err := s.ledger.ListByGame(ctx, game)
	if err != nil {
		logger.Log.Errorw("failed to read score ledger for rebuild", "game", game, "err", err)
		return err
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].CreatedAt.Before(history[j].CreatedAt)
	})

	latest := make(map[string]float64)
	for _, rec := range history {
		user, err := s.users.GetByID(ctx, rec.UserID)
		if err != nil {
			logger.Log.Errorw("failed to resolve ledger user", "user_id", rec.UserID, "err", err)
			return err
		}
		if user == nil {
			logger.Log.Warnw("skipping ledger row with unknown user", "user_id", rec.UserID, "game", game)
			continue
		}
		latest[user.Username] = rec.Score
	}

	entries := make([]models.RankingEntry, 0, len(latest))
	for username, score := range latest {
		entries = append(entries, models.RankingEntry{Username: username, Score: score})
	}

	if err := s.ranking.Rebuild(ctx, game, entries); err != nil {
		logger.Log.Errorw("failed to rebuild ranking store", "game", game, "err", err)
		return err
	}

	logger.Log.Infow("ranking store rebuilt from ledger", "game", game, "entries", len(entries))
	return nil
}
