package repositories

import (
	"errors"

	"github.com/hari2128-cell/CureVox/internal/models"

	"gorm.io/gorm"
)

// ErrReportNotFound is returned when no report matches the lookup.
var ErrReportNotFound = errors.New("report not found")

// ReportRepository covers persistence for generated health reports.
type ReportRepository interface {
	Create(db *gorm.DB, report *models.HealthReport) error

	// FindByFileName resolves a report by file name, scoped to the owner
	// so one user cannot download another's report.
	FindByFileName(db *gorm.DB, fileName, userID string) (*models.HealthReport, error)

	// FindByUser lists a user's reports newest first.
	FindByUser(db *gorm.DB, userID string) ([]models.HealthReport, error)
}

type reportRepository struct{}

func NewReportRepository() ReportRepository {
	return &reportRepository{}
}

func (r *reportRepository) Create(db *gorm.DB, report *models.HealthReport) error {
	return db.Create(report).Error
}

func (r *reportRepository) FindByFileName(db *gorm.DB, fileName, userID string) (*models.HealthReport, error) {
	var report models.HealthReport
	err := db.Where("file_name = ? AND user_id = ?", fileName, userID).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindByUser(db *gorm.DB, userID string) ([]models.HealthReport, error) {
	var reports []models.HealthReport
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}
