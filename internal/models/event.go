package models

// ScoreEvent is published to Kafka for every accepted score submission.
type ScoreEvent struct {
	EventID   string  `json:"event_id"`  // EventID is a unique identifier for the event.
	Timestamp int64   `json:"timestamp"` // Timestamp is the Unix timestamp (in seconds) of the submission.
	UserID    string  `json:"user_id"`   // UserID is the identifier of the submitting user.
	Username  string  `json:"username"`  // Username is the submitting user's name.
	Game      string  `json:"game"`      // Game is the game the score was submitted for.
	Score     float64 `json:"score"`     // Score is the submitted value.
}
