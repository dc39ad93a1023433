package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-leaderboard/internal/logger"
)

// Rebuilder defines the interface for rebuilding a game's live ranking.
type Rebuilder interface {
	Rebuild(ctx context.Context, game string) error
}

// RebuildResponse represents a successful rebuild response
// swagger:model RebuildResponse
type RebuildResponse struct {
	// Success message
	// default: Ranking rebuilt from ledger
	Message string `json:"message"`
}

// RebuildErrorResponse represents an error response for rebuild requests
// swagger:model RebuildErrorResponse
type RebuildErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewRebuildHandler returns an HTTP handler that rebuilds a game's live
// ranking set from the score ledger.
// @Summary Rebuild a game's live ranking
// @Description Replays the score ledger in submission order, applying last-write-wins per user, and replaces the game's ranking set. Recovery path for when a crash left the ranking store behind the ledger.
// @Tags leaderboard
// @Produce json
// @Security BearerAuth
// @Param game path string true "Game identifier"
// @Success 200 {object} handlers.RebuildResponse "Ranking rebuilt"
// @Failure 500 {object} handlers.RebuildErrorResponse "Internal server error"
// @Router /leaderboard/{game}/rebuild [post]
func NewRebuildHandler(svc Rebuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game := chi.URLParam(r, "game")

		if err := svc.Rebuild(r.Context(), game); err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(RebuildErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(RebuildResponse{
			Message: "Ranking rebuilt from ledger",
		})
	}
}
