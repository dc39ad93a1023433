package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-leaderboard/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		username     string
		password     string
		mockSetup    func(m *MockLoginer)
		expectedCode int
		expectedBody map[string]string
		rawBody      bool
		expectCookie bool
	}{
		{
			name:     "success",
			username: "john",
			password: "secret",
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "john", "secret").
					Return("token123", nil)
			},
			expectedCode: 200,
			expectedBody: map[string]string{"token": "token123"},
			expectCookie: true,
		},
		{
			name:     "invalid credentials",
			username: "john",
			password: "wrong",
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "john", "wrong").
					Return("", services.ErrInvalidCredentials)
			},
			expectedCode: 401,
			expectedBody: map[string]string{"error": "Invalid username or password"},
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "pw",
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "ghost", "pw").
					Return("", services.ErrUserDoesNotExist)
			},
			expectedCode: 401,
			expectedBody: map[string]string{"error": "Invalid username or password"},
		},
		{
			name:     "internal server error",
			username: "john",
			password: "secret",
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "john", "secret").
					Return("", errors.New("database failure"))
			},
			expectedCode: 500,
			expectedBody: map[string]string{"error": "Internal server error"},
		},
		{
			name:         "invalid json",
			mockSetup:    func(m *MockLoginer) {},
			expectedCode: 400,
			expectedBody: map[string]string{"error": "invalid request body"},
			rawBody:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLoginer(ctrl)
			tt.mockSetup(mockSvc)

			handler := NewLoginHandler(mockSvc, "access_token")

			var body *bytes.Buffer
			if tt.rawBody {
				body = bytes.NewBufferString("{not json")
			} else {
				b, _ := json.Marshal(map[string]string{
					"username": tt.username,
					"password": tt.password,
				})
				body = bytes.NewBuffer(b)
			}

			req := httptest.NewRequest(http.MethodPost, "/login", body)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var got map[string]string
			err := json.Unmarshal(rr.Body.Bytes(), &got)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, got)

			cookies := rr.Result().Cookies()
			if tt.expectCookie {
				assert.Len(t, cookies, 1)
				assert.Equal(t, "access_token", cookies[0].Name)
				assert.Equal(t, "token123", cookies[0].Value)
			} else {
				assert.Empty(t, cookies)
			}
		})
	}
}
