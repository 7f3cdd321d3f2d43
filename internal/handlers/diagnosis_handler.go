package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/hari2128-cell/CureVox/internal/services"
	"github.com/hari2128-cell/CureVox/internal/services/dto"
	"github.com/hari2128-cell/CureVox/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type DiagnosisHandler struct {
	*BaseHandler
	diagnosisService services.DiagnosisService
	imageExtensions  []string
	audioExtensions  []string
	maxUploadSize    int64
}

func NewDiagnosisHandler(base *BaseHandler, diagnosisService services.DiagnosisService, imageExts, audioExts []string, maxUploadSize int64) *DiagnosisHandler {
	return &DiagnosisHandler{
		BaseHandler:      base,
		diagnosisService: diagnosisService,
		imageExtensions:  imageExts,
		audioExtensions:  audioExts,
		maxUploadSize:    maxUploadSize,
	}
}

// RegisterRoutes mounts the diagnosis endpoints. uploadGuard is the stricter
// rate limit applied only to the file upload routes.
func (h *DiagnosisHandler) RegisterRoutes(rg *gin.RouterGroup, uploadGuard gin.HandlerFunc) {
	diagnosis := rg.Group("/diagnosis")
	{
		diagnosis.POST("/rash/upload", uploadGuard, h.UploadRash)
		diagnosis.POST("/audio/upload", uploadGuard, h.UploadAudio)
		diagnosis.POST("/symptoms", h.CheckSymptoms)
		diagnosis.GET("/history", h.History)
	}
}

// readUpload pulls one multipart file out of the request, enforcing the
// size cap and extension whitelist.
func (h *DiagnosisHandler) readUpload(c *gin.Context, field string, allowed []string) (string, []byte, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrNoFile(field))
		return "", nil, false
	}
	if fileHeader.Filename == "" {
		apperrors.HandleError(c, apperrors.ErrNoFile(field))
		return "", nil, false
	}
	if fileHeader.Size > h.maxUploadSize {
		apperrors.HandleError(c, apperrors.NewBadRequestError("File exceeds the maximum upload size"))
		return "", nil, false
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
	if !contains(allowed, ext) {
		apperrors.HandleError(c, apperrors.ErrInvalidFileType(allowed))
		return "", nil, false
	}

	data, ok := h.readAll(c, fileHeader)
	if !ok {
		return "", nil, false
	}
	return fileHeader.Filename, data, true
}

func (h *DiagnosisHandler) readAll(c *gin.Context, fh *multipart.FileHeader) ([]byte, bool) {
	f, err := fh.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.ErrProcessing(err))
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadSize+1))
	if err != nil {
		h.HandleServiceError(c, apperrors.ErrProcessing(err))
		return nil, false
	}
	if int64(len(data)) > h.maxUploadSize {
		apperrors.HandleError(c, apperrors.NewBadRequestError("File exceeds the maximum upload size"))
		return nil, false
	}
	return data, true
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// UploadRash accepts a skin photo in the "image" field and returns the
// analysis outcome.
func (h *DiagnosisHandler) UploadRash(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileName, data, ok := h.readUpload(c, "image", h.imageExtensions)
	if !ok {
		return
	}

	db := h.GetDB(c)

	resp, err := h.diagnosisService.AnalyzeRash(c.Request.Context(), db, userID, fileName, data)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Image uploaded and analyzed successfully",
		"diagnosis_id": resp.DiagnosisID,
		"file_url":     resp.FileURL,
		"analysis":     resp,
	})
}

// UploadAudio accepts a recording in the "audio" field.
func (h *DiagnosisHandler) UploadAudio(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileName, data, ok := h.readUpload(c, "audio", h.audioExtensions)
	if !ok {
		return
	}

	db := h.GetDB(c)

	resp, err := h.diagnosisService.AnalyzeAudio(c.Request.Context(), db, userID, fileName, data)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Audio uploaded and analyzed successfully",
		"diagnosis_id": resp.DiagnosisID,
		"file_url":     resp.FileURL,
		"analysis":     resp,
	})
}

func (h *DiagnosisHandler) CheckSymptoms(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SymptomCheckRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.diagnosisService.CheckSymptoms(c.Request.Context(), db, userID, req.Symptoms)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"diagnosis_id": resp.DiagnosisID,
		"analysis":     resp,
	})
}

func (h *DiagnosisHandler) History(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.HistoryQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.diagnosisService.History(c.Request.Context(), db, userID, query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    resp,
	})
}
