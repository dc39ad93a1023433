package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-leaderboard/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestLeaderboardHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		game         string
		mockSetup    func(m *MockLeaderboarder)
		expectedCode int
		expectedRows int
	}{
		{
			name: "merged rows returned in order",
			game: "pong",
			mockSetup: func(m *MockLeaderboarder) {
				m.EXPECT().
					GetLeaderboard(gomock.Any(), "pong").
					Return([]models.LeaderboardRow{
						{Username: "bob", Score: 9, Source: models.SourceLive},
						{Username: "bob", Score: 9, Source: models.SourceHistory},
						{Username: "alice", Score: 7, Source: models.SourceLive},
					}, nil)
			},
			expectedCode: 200,
			expectedRows: 3,
		},
		{
			name: "empty leaderboard",
			game: "tetris",
			mockSetup: func(m *MockLeaderboarder) {
				m.EXPECT().
					GetLeaderboard(gomock.Any(), "tetris").
					Return(nil, nil)
			},
			expectedCode: 200,
			expectedRows: 0,
		},
		{
			name: "internal server error",
			game: "pong",
			mockSetup: func(m *MockLeaderboarder) {
				m.EXPECT().
					GetLeaderboard(gomock.Any(), "pong").
					Return(nil, errors.New("redis down"))
			},
			expectedCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLeaderboarder(ctrl)
			tt.mockSetup(mockSvc)

			r := chi.NewRouter()
			r.Get("/leaderboard/{game}", NewLeaderboardHandler(mockSvc))

			req := httptest.NewRequest(http.MethodGet, "/leaderboard/"+tt.game, nil)
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == 200 {
				var got LeaderboardResponse
				err := json.Unmarshal(rr.Body.Bytes(), &got)
				assert.NoError(t, err)
				assert.Equal(t, tt.game, got.Game)
				assert.Len(t, got.Leaderboard, tt.expectedRows)
			}
		})
	}
}
