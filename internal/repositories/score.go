package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-leaderboard/internal/logger"
	"github.com/sbilibin2017/gw-leaderboard/internal/models"
)

// ScoreWriteRepository appends rows to the score ledger. The ledger is
// append-only: no update or delete statements exist for the scores table.
type ScoreWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewScoreWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ScoreWriteRepository {
	return &ScoreWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts one ledger row and returns the created record with its
// server-assigned id and timestamp.
func (r *ScoreWriteRepository) Save(ctx context.Context, userID uuid.UUID, game string, score float64) (*models.ScoreDB, error) {
	query := `
		INSERT INTO scores (score_id, user_id, game, score, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING score_id, user_id, game, score, created_at
	`

	var executor sqlx.ExtContext = r.db
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			executor = tx
		}
	}

	args := []any{uuid.New(), userID, game, score}

	var record models.ScoreDB
	err := sqlx.GetContext(ctx, executor, &record, query, args...)

	// Log query, args, result, error
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, game, score},
		"result", record,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ScoreReadRepository reads historical ledger rows.
type ScoreReadRepository struct {
	db *sqlx.DB
}

func NewScoreReadRepository(db *sqlx.DB) *ScoreReadRepository {
	return &ScoreReadRepository{db: db}
}

// ListByGame returns every ledger row for a game. Order is whatever the
// database yields; callers sort.
func (r *ScoreReadRepository) ListByGame(ctx context.Context, game string) ([]models.ScoreDB, error) {
	const query = `
		SELECT score_id, user_id, game, score, created_at
		FROM scores
		WHERE game = $1
	`

	var records []models.ScoreDB
	err := r.db.SelectContext(ctx, &records, query, game)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{game},
		"result", len(records),
		"error", err,
	)

	return records, err
}
