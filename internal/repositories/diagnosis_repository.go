package repositories

import (
	"errors"

	"github.com/hari2128-cell/CureVox/internal/models"

	"gorm.io/gorm"
)

// ErrDiagnosisNotFound is returned when no diagnosis matches the lookup.
var ErrDiagnosisNotFound = errors.New("diagnosis not found")

// DiagnosisRepository covers persistence for diagnosis records.
type DiagnosisRepository interface {
	// Create inserts a new diagnosis.
	Create(db *gorm.DB, diagnosis *models.Diagnosis) error

	// FindByID looks a diagnosis up by primary key, scoped to the owner.
	FindByID(db *gorm.DB, id, userID string) (*models.Diagnosis, error)

	// FindByUserPaginated lists a user's diagnoses newest first, returning
	// the page slice and the total row count. Page numbers start at 1.
	FindByUserPaginated(db *gorm.DB, userID string, page, perPage int) ([]models.Diagnosis, int64, error)

	// UpdateStatus moves a diagnosis to a new review status.
	UpdateStatus(db *gorm.DB, id string, status models.DiagnosisStatus) error

	// CountByUser returns how many diagnoses the user has.
	CountByUser(db *gorm.DB, userID string) (int64, error)
}

type diagnosisRepository struct{}

func NewDiagnosisRepository() DiagnosisRepository {
	return &diagnosisRepository{}
}

func (r *diagnosisRepository) Create(db *gorm.DB, diagnosis *models.Diagnosis) error {
	return db.Create(diagnosis).Error
}

func (r *diagnosisRepository) FindByID(db *gorm.DB, id, userID string) (*models.Diagnosis, error) {
	var diagnosis models.Diagnosis
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&diagnosis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiagnosisNotFound
		}
		return nil, err
	}
	return &diagnosis, nil
}

func (r *diagnosisRepository) FindByUserPaginated(db *gorm.DB, userID string, page, perPage int) ([]models.Diagnosis, int64, error) {
	var total int64
	if err := db.Model(&models.Diagnosis{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var diagnoses []models.Diagnosis
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&diagnoses).Error
	if err != nil {
		return nil, 0, err
	}
	return diagnoses, total, nil
}

func (r *diagnosisRepository) UpdateStatus(db *gorm.DB, id string, status models.DiagnosisStatus) error {
	result := db.Model(&models.Diagnosis{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDiagnosisNotFound
	}
	return nil
}

func (r *diagnosisRepository) CountByUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Diagnosis{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
