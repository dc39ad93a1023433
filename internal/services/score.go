package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-leaderboard/internal/logger"
	"github.com/sbilibin2017/gw-leaderboard/internal/models"
	"github.com/segmentio/kafka-go"
)

var (
	// ErrScoreOutOfRange is returned when a submitted score is outside [0, 9].
	ErrScoreOutOfRange = errors.New("score must be between 0 and 9")
	// ErrInvalidToken is returned when a submission carries no token or a token
	// that fails validation.
	ErrInvalidToken = errors.New("missing or invalid token")
	// ErrUserNotFound is returned when a valid token resolves to no known user.
	ErrUserNotFound = errors.New("user not found")
)

// TokenParser extracts the subject username from a session token.
type TokenParser interface {
	GetUsername(ctx context.Context, tokenString string) (string, error)
}

// ScoreWriter appends rows to the score ledger.
type ScoreWriter interface {
	Save(ctx context.Context, userID uuid.UUID, game string, score float64) (*models.ScoreDB, error)
}

// RankingUpserter updates the live ranking for a game.
type RankingUpserter interface {
	Upsert(ctx context.Context, game, username string, score float64) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// ScoreService orchestrates score submissions: validate, authenticate,
// append to the ledger, update the live ranking, publish the event.
type ScoreService struct {
	tokens      TokenParser
	users       UserReader
	ledger      ScoreWriter
	ranking     RankingUpserter
	kafkaWriter KafkaWriter
}

// NewScoreService creates a new ScoreService.
func NewScoreService(
	tokens TokenParser,
	users UserReader,
	ledger ScoreWriter,
	ranking RankingUpserter,
	kafkaWriter KafkaWriter,
) *ScoreService {
	return &ScoreService{
		tokens:      tokens,
		users:       users,
		ledger:      ledger,
		ranking:     ranking,
		kafkaWriter: kafkaWriter,
	}
}

// Submit validates and persists one score submission. The ledger write is
// the source of truth: if it fails the submission fails and the ranking
// store is not touched. A ranking-store failure after a successful ledger
// write is logged and swallowed; the live view self-heals on the next
// submission or on a rebuild.
func (s *ScoreService) Submit(ctx context.Context, token, game string, score float64) (*models.ScoreDB, error) {
	if score < models.MinScore || score > models.MaxScore {
		logger.Log.Errorw("score out of range", "game", game, "score", score)
		return nil, ErrScoreOutOfRange
	}

	if token == "" {
		logger.Log.Errorw("submission without token", "game", game)
		return nil, ErrInvalidToken
	}

	username, err := s.tokens.GetUsername(ctx, token)
	if err != nil {
		logger.Log.Errorw("token validation failed", "err", err)
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to resolve user", "username", username, "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Errorw("token subject unknown", "username", username)
		return nil, ErrUserNotFound
	}

	record, err := s.ledger.Save(ctx, user.UserID, game, score)
	if err != nil {
		logger.Log.Errorw("ledger write failed", "username", username, "game", game, "err", err)
		return nil, err
	}

	if err := s.ranking.Upsert(ctx, game, user.Username, score); err != nil {
		logger.Log.Errorw("ranking update failed, leaderboard stale until rebuild",
			"username", username, "game", game, "err", err)
	}

	event := models.ScoreEvent{
		EventID:   uuid.NewString(),
		Timestamp: record.CreatedAt.Unix(),
		UserID:    user.UserID.String(),
		Username:  user.Username,
		Game:      game,
		Score:     score,
	}
	s.publishScore(ctx, event)

	return record, nil
}

// publishScore publishes a submission event to Kafka.
func (s *ScoreService) publishScore(ctx context.Context, event models.ScoreEvent) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal score event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
		Time:  time.Unix(event.Timestamp, 0),
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish score event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Score event published to Kafka", "event_id", event.EventID, "game", event.Game)
	}
}
