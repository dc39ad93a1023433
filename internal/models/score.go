package models

import (
	"time"

	"github.com/google/uuid"
)

// ScoreDB represents one submitted score in the ledger. Rows are
// append-only: they are never updated or deleted after insertion.
type ScoreDB struct {
	ScoreID   uuid.UUID `json:"score_id" db:"score_id"`     // Primary key
	UserID    uuid.UUID `json:"user_id" db:"user_id"`       // References users.user_id
	Game      string    `json:"game" db:"game"`             // Game identifier
	Score     float64   `json:"score" db:"score"`           // Submitted score, in [0, 9]
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Server-assigned submission time
}

// Score bounds enforced on submission. Boundary values are valid.
const (
	MinScore float64 = 0
	MaxScore float64 = 9
)
