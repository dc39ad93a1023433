package jwt

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := New("test-secret", time.Minute)
	ctx := context.Background()

	token, err := j.Generate(ctx, "alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Valid token should pass validation
	err = j.Validate(ctx, token)
	assert.NoError(t, err)

	// Subject comes back out
	username, err := j.GetUsername(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New("test-secret", -time.Minute) // already expired
	ctx := context.Background()

	token, err := j.Generate(ctx, "alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Validation should fail
	err = j.Validate(ctx, token)
	assert.Error(t, err)

	username, err := j.GetUsername(ctx, token)
	assert.Error(t, err)
	assert.Empty(t, username)
}

func TestJWT_InvalidToken(t *testing.T) {
	j := New("secret", time.Minute)
	ctx := context.Background()

	// Totally invalid string
	err := j.Validate(ctx, "invalid.token.string")
	assert.Error(t, err)

	// Token signed with another key
	other := New("other-secret", time.Minute)
	token, err := other.Generate(ctx, "alice")
	assert.NoError(t, err)

	err = j.Validate(ctx, token)
	assert.Error(t, err)
}

func TestJWT_GetTokenFromRequest_Header(t *testing.T) {
	j := New("secret", time.Minute)
	ctx := context.Background()

	req, _ := http.NewRequest(http.MethodPost, "/score", nil)
	req.Header.Set("Authorization", "Bearer sometoken")

	token, err := j.GetTokenFromRequest(ctx, req)
	assert.NoError(t, err)
	assert.Equal(t, "sometoken", token)
}

func TestJWT_GetTokenFromRequest_Cookie(t *testing.T) {
	j := New("secret", time.Minute)
	ctx := context.Background()

	req, _ := http.NewRequest(http.MethodPost, "/score", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookietoken"})

	token, err := j.GetTokenFromRequest(ctx, req)
	assert.NoError(t, err)
	assert.Equal(t, "cookietoken", token)
}

func TestJWT_GetTokenFromRequest_Errors(t *testing.T) {
	j := New("secret", time.Minute)
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/score", nil)
		_, err := j.GetTokenFromRequest(ctx, req)
		assert.Error(t, err)
	})

	t.Run("malformed header", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/score", nil)
		req.Header.Set("Authorization", "NotBearer")
		_, err := j.GetTokenFromRequest(ctx, req)
		assert.Error(t, err)
	})
}
