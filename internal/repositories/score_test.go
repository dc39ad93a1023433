package repositories

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func TestScoreWriteRepository_SaveAndList(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	userRepo := NewUserWriteRepository(db)
	writeRepo := NewScoreWriteRepository(db, nil)
	readRepo := NewScoreReadRepository(db)
	ctx := context.Background()

	aliceID, err := userRepo.Save(ctx, "alice", "hash1")
	assert.NoError(t, err)
	bobID, err := userRepo.Save(ctx, "bob", "hash2")
	assert.NoError(t, err)

	rec1, err := writeRepo.Save(ctx, aliceID, "pong", 3)
	assert.NoError(t, err)
	assert.Equal(t, aliceID, rec1.UserID)
	assert.Equal(t, "pong", rec1.Game)
	assert.Equal(t, float64(3), rec1.Score)
	assert.False(t, rec1.CreatedAt.IsZero())

	// A second submission by the same user appends, it does not replace.
	rec2, err := writeRepo.Save(ctx, aliceID, "pong", 8)
	assert.NoError(t, err)
	assert.NotEqual(t, rec1.ScoreID, rec2.ScoreID)

	_, err = writeRepo.Save(ctx, bobID, "pong", 9)
	assert.NoError(t, err)
	_, err = writeRepo.Save(ctx, bobID, "tetris", 5)
	assert.NoError(t, err)

	records, err := readRepo.ListByGame(ctx, "pong")
	assert.NoError(t, err)
	assert.Len(t, records, 3)

	scores := make(map[float64]bool)
	for _, r := range records {
		assert.Equal(t, "pong", r.Game)
		scores[r.Score] = true
	}
	assert.True(t, scores[3])
	assert.True(t, scores[8])
	assert.True(t, scores[9])

	records, err = readRepo.ListByGame(ctx, "tetris")
	assert.NoError(t, err)
	assert.Len(t, records, 1)

	records, err = readRepo.ListByGame(ctx, "unknown")
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestScoreWriteRepository_UsesTxFromContext(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	userRepo := NewUserWriteRepository(db)
	ctx := context.Background()

	aliceID, err := userRepo.Save(ctx, "alice", "hash1")
	assert.NoError(t, err)

	tx, err := db.Beginx()
	assert.NoError(t, err)

	writeRepo := NewScoreWriteRepository(db, func(ctx context.Context) *sqlx.Tx {
		return tx
	})

	_, err = writeRepo.Save(ctx, aliceID, "pong", 7)
	assert.NoError(t, err)

	// The write rides on the transaction: rolling back discards it.
	assert.NoError(t, tx.Rollback())

	readRepo := NewScoreReadRepository(db)
	records, err := readRepo.ListByGame(ctx, "pong")
	assert.NoError(t, err)
	assert.Empty(t, records)
}
