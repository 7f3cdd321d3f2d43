package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hari2128-cell/CureVox/internal/logger"
	"github.com/hari2128-cell/CureVox/internal/models"
	"github.com/hari2128-cell/CureVox/internal/report"
	"github.com/hari2128-cell/CureVox/internal/repositories"
	"github.com/hari2128-cell/CureVox/internal/services/dto"
	"github.com/hari2128-cell/CureVox/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// reportHistoryLimit caps how many diagnoses go into one report.
const reportHistoryLimit = 200

type ReportService interface {
	// Generate renders the user's health report, stores the PDF and
	// records it for later download.
	Generate(ctx context.Context, db *gorm.DB, userID string) (*dto.ReportPayload, error)

	// Open streams a previously generated report, scoped to its owner.
	Open(ctx context.Context, db *gorm.DB, userID, fileName string) (io.ReadCloser, error)
}

type ReportServiceImpl struct {
	userService   UserService
	diagnosisRepo repositories.DiagnosisRepository
	reportRepo    repositories.ReportRepository
	generator     *report.Generator
	store         storageSaver
}

// storageSaver is the slice of the storage interface reports need.
type storageSaver interface {
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
}

func NewReportService(
	userService UserService,
	diagnosisRepo repositories.DiagnosisRepository,
	reportRepo repositories.ReportRepository,
	generator *report.Generator,
	store storageSaver,
) ReportService {
	return &ReportServiceImpl{
		userService:   userService,
		diagnosisRepo: diagnosisRepo,
		reportRepo:    reportRepo,
		generator:     generator,
		store:         store,
	}
}

func (s *ReportServiceImpl) Generate(ctx context.Context, db *gorm.DB, userID string) (*dto.ReportPayload, error) {
	user, err := s.userService.GetByID(ctx, db, userID)
	if err != nil {
		return nil, err
	}

	diagnoses, _, err := s.diagnosisRepo.FindByUserPaginated(db, userID, 1, reportHistoryLimit)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	pdfBytes, err := s.generator.Generate(user, diagnoses)
	if err != nil {
		return nil, apperrors.ErrProcessing(err)
	}

	fileName := fmt.Sprintf("health_report_%s.pdf", uuid.New().String())
	key := fmt.Sprintf("%s/reports/%s", userID, fileName)
	if err := s.store.Save(ctx, key, bytes.NewReader(pdfBytes), "application/pdf"); err != nil {
		return nil, apperrors.ErrProcessing(err)
	}

	rec := &models.HealthReport{
		UserID:   userID,
		FileName: fileName,
		FilePath: key,
	}
	if err := s.reportRepo.Create(db, rec); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	logger.FromContext(ctx).Info("health report generated", "file_name", fileName)
	return &dto.ReportPayload{
		FileName:    fileName,
		DownloadURL: "/api/report/download/" + fileName,
		GeneratedAt: rec.CreatedAt,
	}, nil
}

func (s *ReportServiceImpl) Open(ctx context.Context, db *gorm.DB, userID, fileName string) (io.ReadCloser, error) {
	rec, err := s.reportRepo.FindByFileName(db, fileName, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrReportNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrDatabase(err)
	}

	rc, err := s.store.Get(ctx, rec.FilePath)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return rc, nil
}
