package auth

import (
	"testing"
	"time"

	"github.com/hari2128-cell/CureVox/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	u := &models.User{
		Name:  "Test Patient",
		Email: "patient@example.com",
	}
	u.ID = "11111111-1111-1111-1111-111111111111"
	return u
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, 7*24*time.Hour)

	token, err := m.GenerateAccessToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", claims.UserID())
	assert.Equal(t, "patient@example.com", claims.Email)
	assert.Equal(t, "access", claims.TokenType)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	m := NewTokenManager("secret-a", time.Hour, time.Hour)
	other := NewTokenManager("secret-b", time.Hour, time.Hour)

	token, err := m.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute, time.Hour)

	token, err := m.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_Malformed(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, time.Hour)

	_, err := m.ParseToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestTokenManager_RefreshToken(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, 7*24*time.Hour)

	token, err := m.GenerateRefreshToken("user-123")
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID())
	assert.Equal(t, "refresh", claims.TokenType)
	assert.Empty(t, claims.Email)
}
