package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/hari2128-cell/CureVox/internal/logger"
	"github.com/hari2128-cell/CureVox/internal/services"
	"github.com/hari2128-cell/CureVox/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	*BaseHandler
	reportService services.ReportService
}

func NewReportHandler(base *BaseHandler, reportService services.ReportService) *ReportHandler {
	return &ReportHandler{BaseHandler: base, reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	report := rg.Group("/report")
	{
		report.POST("/generate", h.Generate)
		report.GET("/download/:name", h.Download)
	}
}

func (h *ReportHandler) Generate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	payload, err := h.reportService.Generate(c.Request.Context(), db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Report generated successfully",
		"data":    payload,
	})
}

func (h *ReportHandler) Download(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	name := c.Param("name")
	// Report names are server-generated; anything with path characters is
	// not one of ours.
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid report name"))
		return
	}

	db := h.GetDB(c)

	rc, err := h.reportService.Open(c.Request.Context(), db, userID, name)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to stream report", err, "name", name)
	}
}
