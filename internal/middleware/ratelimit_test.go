package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_BurstThenDeny(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("user-1"), "request %d inside burst", i)
	}
	assert.False(t, rl.Allow("user-1"))
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour, 1)

	assert.True(t, rl.Allow("user-1"))
	assert.False(t, rl.Allow("user-1"))
	assert.True(t, rl.Allow("user-2"))
}

func TestRateLimiter_Refills(t *testing.T) {
	rl := NewRateLimiter(50, time.Second, 1)

	assert.True(t, rl.Allow("user-1"))
	assert.False(t, rl.Allow("user-1"))
	time.Sleep(40 * time.Millisecond)
	assert.True(t, rl.Allow("user-1"))
}
