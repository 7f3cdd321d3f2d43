package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticVerifier(t *testing.T) {
	v := NewStaticVerifier()
	v.Register("good-token", &Claims{
		UID:           "uid-1",
		Email:         "a@example.com",
		EmailVerified: true,
	})

	claims, err := v.VerifyIDToken(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UID)
	assert.True(t, claims.EmailVerified)

	_, err = v.VerifyIDToken(context.Background(), "unknown-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestStaticVerifier_Down(t *testing.T) {
	v := NewStaticVerifier()
	v.Register("good-token", &Claims{UID: "uid-1"})
	v.SetDown(true)

	_, err := v.VerifyIDToken(context.Background(), "good-token")
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.False(t, v.Healthy(context.Background()))

	v.SetDown(false)
	assert.True(t, v.Healthy(context.Background()))
}

func TestCacheTTL(t *testing.T) {
	assert.Equal(t, int64(3600), int64(cacheTTL("public, max-age=3600").Seconds()))
	assert.Equal(t, int64(300), int64(cacheTTL("").Seconds()))
}
