package repositories

import (
	"time"

	"github.com/hari2128-cell/CureVox/internal/models"

	"gorm.io/gorm"
)

// SessionRepository covers persistence for login sessions.
type SessionRepository interface {
	// Create inserts a new session row.
	Create(db *gorm.DB, session *models.Session) error

	// IsActive reports whether the token belongs to an active session.
	IsActive(db *gorm.DB, token string) (bool, error)

	// Invalidate deactivates the session with the given token and stamps
	// its logout time. The bool reports whether a row actually flipped
	// from active to inactive, so repeated calls are idempotent.
	Invalidate(db *gorm.DB, token string) (bool, error)

	// InvalidateAllForUser deactivates every active session of a user and
	// returns how many were flipped.
	InvalidateAllForUser(db *gorm.DB, userID string) (int64, error)

	// CountActive returns the number of active sessions across all users.
	CountActive(db *gorm.DB) (int64, error)

	// CleanStale deactivates active sessions whose login predates cutoff.
	CleanStale(db *gorm.DB, cutoff time.Time) (int64, error)
}

type sessionRepository struct{}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Create(db *gorm.DB, session *models.Session) error {
	return db.Create(session).Error
}

func (r *sessionRepository) IsActive(db *gorm.DB, token string) (bool, error) {
	var count int64
	err := db.Model(&models.Session{}).
		Where("token = ? AND is_active = ?", token, true).
		Count(&count).Error
	return count > 0, err
}

func (r *sessionRepository) Invalidate(db *gorm.DB, token string) (bool, error) {
	// Single conditional UPDATE; concurrent calls race benignly and at
	// most one observes RowsAffected == 1.
	result := db.Model(&models.Session{}).
		Where("token = ? AND is_active = ?", token, true).
		Updates(map[string]interface{}{
			"is_active":   false,
			"logout_time": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *sessionRepository) InvalidateAllForUser(db *gorm.DB, userID string) (int64, error) {
	result := db.Model(&models.Session{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Updates(map[string]interface{}{
			"is_active":   false,
			"logout_time": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *sessionRepository) CountActive(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Session{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *sessionRepository) CleanStale(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Model(&models.Session{}).
		Where("is_active = ? AND login_time < ?", true, cutoff).
		Updates(map[string]interface{}{
			"is_active":   false,
			"logout_time": time.Now(),
		})
	return result.RowsAffected, result.Error
}
