package dto

import "time"

// CompleteProfileRequest is the body of the profile completion call. The
// client has already signed in with the identity provider; IDToken is the
// provider's token and the rest is the locally collected profile.
type CompleteProfileRequest struct {
	// Field presence is checked in the service so the response carries the
	// MISSING_FIELDS code with the list of absent fields.
	IDToken     string `json:"id_token" validate:"required"`
	Name        string `json:"name" validate:"omitempty,max=120"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,phone"`
}

// RefreshRequest optionally carries a refresh token. An empty body means
// header-only refresh: the pair is minted for the authenticated user.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ClientMeta is request-level context recorded into the session row.
type ClientMeta struct {
	IPAddress  string
	UserAgent  string
	DeviceInfo string
}

// AuthTokens is the issued token pair.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

// AuthResponse is returned from profile completion and refresh.
type AuthResponse struct {
	Tokens AuthTokens   `json:"tokens"`
	User   *UserPayload `json:"user"`
}

// LogoutResult reports whether the call actually closed a session.
type LogoutResult struct {
	Revoked bool `json:"revoked"`
}

// LogoutAllResult reports how many sessions a logout-all closed.
type LogoutAllResult struct {
	RevokedCount int64 `json:"revoked_count"`
}

// UserPayload is the client-facing projection of a user.
type UserPayload struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phone_number"`
	IsVerified  bool       `json:"is_verified"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
