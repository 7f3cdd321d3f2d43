package identity

import (
	"context"
	"sync"
)

// StaticVerifier resolves tokens from an in-memory table. It backs local
// development and tests, where calling the real provider is not an option.
type StaticVerifier struct {
	mu     sync.RWMutex
	tokens map[string]*Claims
	down   bool
}

func NewStaticVerifier() *StaticVerifier {
	return &StaticVerifier{tokens: make(map[string]*Claims)}
}

// Register makes idToken verifiable, yielding the given claims.
func (v *StaticVerifier) Register(idToken string, claims *Claims) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tokens[idToken] = claims
}

// SetDown toggles simulated provider outage.
func (v *StaticVerifier) SetDown(down bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.down = down
}

func (v *StaticVerifier) VerifyIDToken(_ context.Context, idToken string) (*Claims, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.down {
		return nil, ErrServiceUnavailable
	}
	claims, ok := v.tokens[idToken]
	if !ok {
		return nil, ErrTokenInvalid
	}
	c := *claims
	return &c, nil
}

func (v *StaticVerifier) Healthy(_ context.Context) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return !v.down
}
