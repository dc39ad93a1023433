package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-leaderboard/internal/logger"
	"github.com/sbilibin2017/gw-leaderboard/internal/models"
)

// Leaderboarder defines the interface that the leaderboard service must implement.
type Leaderboarder interface {
	GetLeaderboard(ctx context.Context, game string) ([]models.LeaderboardRow, error)
}

// LeaderboardResponse represents the merged leaderboard for a game
// swagger:model LeaderboardResponse
type LeaderboardResponse struct {
	// Game identifier
	// default: pong
	Game string `json:"game"`

	// Ordered rows, highest score first
	Leaderboard []models.LeaderboardRow `json:"leaderboard"`
}

// LeaderboardErrorResponse represents an error response for leaderboard reads
// swagger:model LeaderboardErrorResponse
type LeaderboardErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewLeaderboardHandler returns an HTTP handler for leaderboard reads.
// @Summary Get a game's leaderboard
// @Description Merges the live ranking store with the historical score ledger into one list sorted by score descending. A user may appear once per live entry plus once per historical record.
// @Tags leaderboard
// @Produce json
// @Param game path string true "Game identifier"
// @Success 200 {object} handlers.LeaderboardResponse "Merged leaderboard"
// @Failure 500 {object} handlers.LeaderboardErrorResponse "Internal server error"
// @Router /leaderboard/{game} [get]
func NewLeaderboardHandler(svc Leaderboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game := chi.URLParam(r, "game")

		rows, err := svc.GetLeaderboard(r.Context(), game)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(LeaderboardErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		if rows == nil {
			rows = []models.LeaderboardRow{}
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(LeaderboardResponse{
			Game:        game,
			Leaderboard: rows,
		})
	}
}
