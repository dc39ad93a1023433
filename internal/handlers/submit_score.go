package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-leaderboard/internal/logger"
	"github.com/sbilibin2017/gw-leaderboard/internal/models"
	"github.com/sbilibin2017/gw-leaderboard/internal/services"
)

// Submitter defines the interface that the submission service must implement.
type Submitter interface {
	Submit(ctx context.Context, token, game string, score float64) (*models.ScoreDB, error)
}

// SubmitScoreRequest represents the JSON body for a score submission
// swagger:model SubmitScoreRequest
type SubmitScoreRequest struct {
	// Game identifier
	// required: true
	// default: pong
	Game string `json:"game"`

	// Score, between 0 and 9 inclusive
	// required: true
	// default: 7
	Score float64 `json:"score"`
}

// SubmitScoreResponse represents a successful submission response
// swagger:model SubmitScoreResponse
type SubmitScoreResponse struct {
	Record models.ScoreDB `json:"record"`
}

// SubmitScoreErrorResponse represents an error response for score submission
// swagger:model SubmitScoreErrorResponse
type SubmitScoreErrorResponse struct {
	// Error message
	// default: Score must be between 0 and 9
	Error string `json:"error"`
}

// NewSubmitScoreHandler returns an HTTP handler for score submission.
// The token is taken from the request context, where the auth middleware
// stashed it; the submission service validates it again as part of its own
// pipeline.
// @Summary Submit a score
// @Description Validates the score, appends it to the durable ledger, and updates the live ranking for the game.
// @Tags scores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param submitScoreRequest body handlers.SubmitScoreRequest true "Score submission request"
// @Success 201 {object} handlers.SubmitScoreResponse "Score recorded"
// @Failure 400 {object} handlers.SubmitScoreErrorResponse "Score out of range / invalid request"
// @Failure 401 {object} handlers.SubmitScoreErrorResponse "Missing or invalid token"
// @Failure 404 {object} handlers.SubmitScoreErrorResponse "Token subject unknown"
// @Router /score [post]
func NewSubmitScoreHandler(svc Submitter, tokenGetter func(ctx context.Context) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubmitScoreRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SubmitScoreErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		var token string
		if tokenGetter != nil {
			token = tokenGetter(r.Context())
		}

		record, err := svc.Submit(r.Context(), token, req.Game, req.Score)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrScoreOutOfRange):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(SubmitScoreErrorResponse{
					Error: "Score must be between 0 and 9",
				})
			case errors.Is(err, services.ErrInvalidToken):
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(SubmitScoreErrorResponse{
					Error: "Not authenticated",
				})
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(SubmitScoreErrorResponse{
					Error: "User not found",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(SubmitScoreErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SubmitScoreResponse{
			Record: *record,
		})
	}
}
