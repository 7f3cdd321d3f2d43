package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/hari2128-cell/CureVox/internal/analyzer"
	"github.com/hari2128-cell/CureVox/internal/logger"
	"github.com/hari2128-cell/CureVox/internal/metrics"
	"github.com/hari2128-cell/CureVox/internal/models"
	"github.com/hari2128-cell/CureVox/internal/repositories"
	"github.com/hari2128-cell/CureVox/internal/services/dto"
	"github.com/hari2128-cell/CureVox/internal/storage"
	"github.com/hari2128-cell/CureVox/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	defaultHistoryPerPage = 10
	maxHistoryPerPage     = 100
)

type DiagnosisService interface {
	// AnalyzeRash runs the skin analyzer over an uploaded image, stores
	// the file and records a diagnosis.
	AnalyzeRash(ctx context.Context, db *gorm.DB, userID, fileName string, data []byte) (*dto.AnalysisResponse, error)

	// AnalyzeAudio does the same for respiratory recordings.
	AnalyzeAudio(ctx context.Context, db *gorm.DB, userID, fileName string, data []byte) (*dto.AnalysisResponse, error)

	// CheckSymptoms triages a free-text symptom description.
	CheckSymptoms(ctx context.Context, db *gorm.DB, userID, symptoms string) (*dto.AnalysisResponse, error)

	// History returns one page of the user's diagnoses, newest first.
	History(ctx context.Context, db *gorm.DB, userID string, query dto.HistoryQuery) (*dto.HistoryResponse, error)
}

type DiagnosisServiceImpl struct {
	diagnosisRepo repositories.DiagnosisRepository
	store         storage.Storage
	rash          analyzer.FileAnalyzer
	audio         analyzer.FileAnalyzer
	symptoms      analyzer.TextAnalyzer
	collector     *metrics.Collector
}

func NewDiagnosisService(
	diagnosisRepo repositories.DiagnosisRepository,
	store storage.Storage,
	rash analyzer.FileAnalyzer,
	audio analyzer.FileAnalyzer,
	symptoms analyzer.TextAnalyzer,
	collector *metrics.Collector,
) DiagnosisService {
	return &DiagnosisServiceImpl{
		diagnosisRepo: diagnosisRepo,
		store:         store,
		rash:          rash,
		audio:         audio,
		symptoms:      symptoms,
		collector:     collector,
	}
}

func (s *DiagnosisServiceImpl) AnalyzeRash(ctx context.Context, db *gorm.DB, userID, fileName string, data []byte) (*dto.AnalysisResponse, error) {
	result, err := s.rash.Analyze(ctx, data)
	if err != nil {
		s.collector.AnalysisFailed(string(models.DiagnosisTypeRash))
		return nil, err
	}

	path, url, err := s.storeUpload(ctx, userID, "images", fileName, data)
	if err != nil {
		s.collector.AnalysisFailed(string(models.DiagnosisTypeRash))
		return nil, err
	}

	return s.record(ctx, db, userID, models.DiagnosisTypeRash, "Skin Rash Analysis", result, path, url)
}

func (s *DiagnosisServiceImpl) AnalyzeAudio(ctx context.Context, db *gorm.DB, userID, fileName string, data []byte) (*dto.AnalysisResponse, error) {
	result, err := s.audio.Analyze(ctx, data)
	if err != nil {
		s.collector.AnalysisFailed(string(models.DiagnosisTypeAudio))
		return nil, err
	}

	path, url, err := s.storeUpload(ctx, userID, "audio", fileName, data)
	if err != nil {
		s.collector.AnalysisFailed(string(models.DiagnosisTypeAudio))
		return nil, err
	}

	return s.record(ctx, db, userID, models.DiagnosisTypeAudio, "Respiratory Audio Analysis", result, path, url)
}

func (s *DiagnosisServiceImpl) CheckSymptoms(ctx context.Context, db *gorm.DB, userID, symptoms string) (*dto.AnalysisResponse, error) {
	result, err := s.symptoms.AnalyzeText(ctx, symptoms)
	if err != nil {
		s.collector.AnalysisFailed(string(models.DiagnosisTypeChat))
		return nil, err
	}
	resp, err := s.record(ctx, db, userID, models.DiagnosisTypeChat, "Symptom Check", result, "", "")
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// storeUpload writes the raw upload under <userID>/<kind>/<uuid><ext> and
// returns the storage key and public URL.
func (s *DiagnosisServiceImpl) storeUpload(ctx context.Context, userID, kind, fileName string, data []byte) (string, string, error) {
	ext := filepath.Ext(fileName)
	key := fmt.Sprintf("%s/%s/%s%s", userID, kind, uuid.New().String(), ext)

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.store.Save(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return "", "", apperrors.ErrProcessing(err)
	}
	url, err := s.store.GetURL(ctx, key)
	if err != nil {
		logger.CtxWarn(ctx, "failed to resolve upload url", "error", err, "key", key)
		url = ""
	}
	return key, url, nil
}

// record persists the analysis outcome as a diagnosis row. Confidence is
// clamped to 0..100 and severity normalized before anything is stored.
func (s *DiagnosisServiceImpl) record(ctx context.Context, db *gorm.DB, userID string, diagType models.DiagnosisType, title string, result *analyzer.Result, filePath, fileURL string) (*dto.AnalysisResponse, error) {
	confidence := result.Confidence
	if confidence < 0 {
		confidence = 0
	} else if confidence > 100 {
		confidence = 100
	}

	severity := result.Severity
	if !severity.Valid() {
		severity = models.SeverityLow
	}

	details, err := json.Marshal(result.Details)
	if err != nil {
		details = nil
	}

	diagnosis := &models.Diagnosis{
		UserID:          userID,
		DiagnosisType:   diagType,
		Title:           title,
		Description:     result.Description,
		Symptoms:        result.Condition,
		Severity:        severity,
		ConfidenceScore: confidence,
		Recommendations: pq.StringArray(result.Recommendations),
		AnalysisResult:  details,
		FilePath:        filePath,
		FileURL:         fileURL,
		Status:          models.DiagnosisStatusPending,
	}
	if err := s.diagnosisRepo.Create(db, diagnosis); err != nil {
		s.collector.AnalysisFailed(string(diagType))
		return nil, apperrors.ErrDatabase(err)
	}

	s.collector.AnalysisCompleted(string(diagType))
	logger.FromContext(ctx).Info("diagnosis recorded",
		"diagnosis_id", diagnosis.ID, "type", diagType, "severity", severity)

	return &dto.AnalysisResponse{
		DiagnosisID: diagnosis.ID,
		Condition:   result.Condition,
		Description: result.Description,
		Severity:    severity,
		Confidence:  confidence,
		Recommends:  result.Recommendations,
		FileURL:     fileURL,
		Details:     result.Details,
	}, nil
}

func (s *DiagnosisServiceImpl) History(_ context.Context, db *gorm.DB, userID string, query dto.HistoryQuery) (*dto.HistoryResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = defaultHistoryPerPage
	} else if perPage > maxHistoryPerPage {
		perPage = maxHistoryPerPage
	}

	diagnoses, total, err := s.diagnosisRepo.FindByUserPaginated(db, userID, page, perPage)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	if diagnoses == nil {
		diagnoses = []models.Diagnosis{}
	}

	return &dto.HistoryResponse{
		Diagnoses:  diagnoses,
		Pagination: dto.NewPagination(page, perPage, total),
	}, nil
}
