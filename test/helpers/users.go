package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/hari2128-cell/CureVox/internal/identity"
)

// TestUser is the result of a test sign-in.
type TestUser struct {
	ID           string
	AccessToken  string
	RefreshToken string
	Email        string
}

type authEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Tokens struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"tokens"`
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	} `json:"data"`
}

// SignInTestUser registers a fake identity token and completes the profile,
// returning usable bearer tokens. The seq value keeps emails and phone
// numbers unique across users in one test.
func (ts *TestServer) SignInTestUser(t *testing.T, seq int) *TestUser {
	t.Helper()

	idToken := fmt.Sprintf("test-id-token-%d", seq)
	email := fmt.Sprintf("patient%d@example.com", seq)
	ts.Verifier.Register(idToken, &identity.Claims{
		UID:           fmt.Sprintf("ext-uid-%d", seq),
		Email:         email,
		EmailVerified: true,
	})

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/complete-profile", "", map[string]interface{}{
		"id_token":     idToken,
		"name":         fmt.Sprintf("Patient %d", seq),
		"email":        email,
		"phone_number": fmt.Sprintf("+1202555%04d", seq),
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("sign-in failed with status %d: %s", res.StatusCode, body)
	}

	var envelope authEnvelope
	if err := json.Unmarshal([]byte(body), &envelope); err != nil {
		t.Fatalf("failed to decode sign-in response: %v", err)
	}

	return &TestUser{
		ID:           envelope.Data.User.ID,
		AccessToken:  envelope.Data.Tokens.AccessToken,
		RefreshToken: envelope.Data.Tokens.RefreshToken,
		Email:        envelope.Data.User.Email,
	}
}
