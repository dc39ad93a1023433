package repositories

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-leaderboard/internal/logger"
	"github.com/sbilibin2017/gw-leaderboard/internal/models"
)

// RankingRepository keeps one Redis sorted set per game with the current
// standing of every user who submitted a score. The set is ephemeral and
// can be rebuilt from the ledger at any time.
type RankingRepository struct {
	client *redis.Client
}

func NewRankingRepository(client *redis.Client) *RankingRepository {
	return &RankingRepository{client: client}
}

func rankingKey(game string) string {
	return fmt.Sprintf("leaderboard:%s", game)
}

// Upsert sets the user's score in the game's sorted set. An existing
// member's score is replaced (last-write-wins, not a max).
func (r *RankingRepository) Upsert(ctx context.Context, game, username string, score float64) error {
	key := rankingKey(game)
	err := r.client.ZAdd(ctx, key, redis.Z{Score: score, Member: username}).Err()

	logger.Log.Infow(
		"key", key,
		"member", username,
		"score", score,
		"error", err,
	)

	return err
}

// RangeDesc returns the full sorted set for a game, highest score first.
// Redis orders equal scores lexicographically by member, so ties come back
// in reverse-lexical username order.
func (r *RankingRepository) RangeDesc(ctx context.Context, game string) ([]models.RankingEntry, error) {
	key := rankingKey(game)

	zs, err := r.client.ZRevRangeWithScores(ctx, key, 0, -1).Result()

	logger.Log.Infow(
		"key", key,
		"result", len(zs),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	entries := make([]models.RankingEntry, 0, len(zs))
	for _, z := range zs {
		username, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, models.RankingEntry{Username: username, Score: z.Score})
	}
	return entries, nil
}

// Rebuild atomically replaces a game's sorted set with the given entries.
// Used to recover the live view from the ledger after a crash left the two
// stores out of step.
func (r *RankingRepository) Rebuild(ctx context.Context, game string, entries []models.RankingEntry) error {
	key := rankingKey(game)

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(entries) > 0 {
		members := make([]redis.Z, 0, len(entries))
		for _, e := range entries {
			members = append(members, redis.Z{Score: e.Score, Member: e.Username})
		}
		pipe.ZAdd(ctx, key, members...)
	}
	_, err := pipe.Exec(ctx)

	logger.Log.Infow(
		"key", key,
		"entries", len(entries),
		"error", err,
	)

	return err
}
