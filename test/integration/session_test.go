package integration_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/hari2128-cell/CureVox/internal/metrics"
	"github.com/hari2128-cell/CureVox/internal/models"
	"github.com/hari2128-cell/CureVox/internal/repositories"
	"github.com/hari2128-cell/CureVox/internal/services"
	"github.com/hari2128-cell/CureVox/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogoutAll_ClosesEverySession(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	// Signing in twice with the same external identity creates two sessions
	// for one user.
	first := ts.SignInTestUser(t, 40)
	second := ts.SignInTestUser(t, 40)
	require.Equal(t, first.ID, second.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/logout/all", second.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"revoked_count":2`)

	var active int64
	require.NoError(t, ts.DB.Model(&models.Session{}).
		Where("user_id = ? AND is_active = ?", first.ID, true).
		Count(&active).Error)
	assert.Equal(t, int64(0), active)
}

func TestSessionJanitor_ClosesStaleSessions(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	user := ts.SignInTestUser(t, 41)

	stale := &models.Session{
		UserID:    user.ID,
		Token:     "stale-session-token",
		LoginTime: time.Now().Add(-48 * time.Hour),
		IsActive:  true,
	}
	require.NoError(t, ts.DB.Create(stale).Error)

	janitor := services.NewSessionJanitor(repositories.NewSessionRepository(), metrics.NewCollector(), 24*time.Hour)
	closed, err := janitor.CleanOnce(context.Background(), ts.DB)
	require.NoError(t, err)
	assert.Equal(t, int64(1), closed)

	// The sign-in session is recent and stays open.
	var active int64
	require.NoError(t, ts.DB.Model(&models.Session{}).
		Where("user_id = ? AND is_active = ?", user.ID, true).
		Count(&active).Error)
	assert.Equal(t, int64(1), active)

	// Repeat sweeps have nothing left to close.
	closed, err = janitor.CleanOnce(context.Background(), ts.DB)
	require.NoError(t, err)
	assert.Equal(t, int64(0), closed)
}
