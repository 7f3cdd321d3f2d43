package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/hari2128-cell/CureVox/internal/identity"
	"github.com/hari2128-cell/CureVox/internal/models"
	"github.com/hari2128-cell/CureVox/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteProfile_IsIdempotent(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	ts.Verifier.Register("repeat-token", &identity.Claims{
		UID:           "ext-repeat",
		Email:         "repeat@example.com",
		EmailVerified: true,
	})

	payload := map[string]interface{}{
		"id_token":     "repeat-token",
		"name":         "Repeat Patient",
		"email":        "repeat@example.com",
		"phone_number": "+12025550100",
	}

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/complete-profile", "", payload)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/auth/complete-profile", "", payload)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var count int64
	require.NoError(t, ts.DB.Model(&models.User{}).Where("email = ?", "repeat@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCompleteProfile_RejectsBadEmail(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	ts.Verifier.Register("bad-email-token", &identity.Claims{UID: "ext-bad-email"})

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/complete-profile", "", map[string]interface{}{
		"id_token":     "bad-email-token",
		"name":         "Bad Email",
		"email":        "not-an-email",
		"phone_number": "+12025550101",
	})
	require.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	var resp struct {
		Success bool   `json:"success"`
		Code    string `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "INVALID_EMAIL", resp.Code)
}

func TestCompleteProfile_ReportsMissingFields(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	ts.Verifier.Register("missing-token", &identity.Claims{UID: "ext-missing"})

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/complete-profile", "", map[string]interface{}{
		"id_token": "missing-token",
		"name":     "Only Name",
	})
	require.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	assert.Contains(t, body, "MISSING_FIELDS")
	assert.Contains(t, body, "email")
	assert.Contains(t, body, "phone_number")
}

func TestCompleteProfile_PhoneMismatch(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	ts.Verifier.Register("phone-token", &identity.Claims{
		UID:         "ext-phone",
		PhoneNumber: "+12025550199",
	})

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/complete-profile", "", map[string]interface{}{
		"id_token":     "phone-token",
		"name":         "Phone Patient",
		"email":        "phone@example.com",
		"phone_number": "+12025550111",
	})
	require.Equal(t, http.StatusUnauthorized, res.StatusCode, body)
	assert.Contains(t, body, "PHONE_MISMATCH")
}

func TestCompleteProfile_ConflictingIdentity(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	first := ts.SignInTestUser(t, 30)

	// A different provider account claiming the first user's email.
	ts.Verifier.Register("intruder-token", &identity.Claims{
		UID:           "ext-intruder",
		Email:         first.Email,
		EmailVerified: true,
	})

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/complete-profile", "", map[string]interface{}{
		"id_token":     "intruder-token",
		"name":         "Intruder",
		"email":        first.Email,
		"phone_number": "+12025559999",
	})
	require.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	assert.Contains(t, body, "CONFLICTING_IDENTITY")
}

func TestCompleteProfile_UnknownToken(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/complete-profile", "", map[string]interface{}{
		"id_token":     "never-registered",
		"name":         "Nobody",
		"email":        "nobody@example.com",
		"phone_number": "+12025550102",
	})
	require.Equal(t, http.StatusUnauthorized, res.StatusCode, body)
	assert.Contains(t, body, "INVALID_TOKEN")
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, res.StatusCode, body)
	assert.Contains(t, body, "MISSING_TOKEN")

	res, body = ts.SendRequest(t, http.MethodGet, "/api/auth/me", "garbage.token.here", nil)
	require.Equal(t, http.StatusUnauthorized, res.StatusCode, body)
}

func TestLogout_IsIdempotent(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	user := ts.SignInTestUser(t, 1)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/logout", user.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"revoked":true`)

	// Second logout with the same token: still 200, nothing left to revoke.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/auth/logout", user.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"revoked":false`)
}

func TestRefresh_RotatesTokens(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	user := ts.SignInTestUser(t, 2)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/refresh", user.AccessToken, map[string]interface{}{
		"refresh_token": user.RefreshToken,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "access_token")
}

func TestRefresh_HeaderOnly(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	user := ts.SignInTestUser(t, 5)

	// No body at all: the pair is minted for the bearer of the access token.
	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/refresh", user.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "access_token")

	// An empty JSON object behaves the same way.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/auth/refresh", user.AccessToken, map[string]interface{}{})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "access_token")
}

func TestRefresh_RejectsAccessTokenAsRefresh(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	user := ts.SignInTestUser(t, 3)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/refresh", user.AccessToken, map[string]interface{}{
		"refresh_token": user.AccessToken,
	})
	require.Equal(t, http.StatusUnauthorized, res.StatusCode, body)
	assert.Contains(t, body, "INVALID_TOKEN")
}

func TestUpdateProfile(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	user := ts.SignInTestUser(t, 4)

	res, body := ts.SendRequest(t, http.MethodPut, "/api/auth/profile", user.AccessToken, map[string]interface{}{
		"gender":      "female",
		"blood_group": "O+",
		"height":      170.5,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/auth/profile", user.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"blood_group":"O+"`)
}

func TestHealthEndpoint(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"status":"healthy"`)
	assert.Contains(t, body, `"database":"healthy"`)
}
