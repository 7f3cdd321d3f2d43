package handlers

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/hari2128-cell/CureVox/internal/identity"
	"github.com/hari2128-cell/CureVox/internal/storage"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	*BaseHandler
	store    storage.Storage
	verifier identity.Verifier
}

func NewHealthHandler(base *BaseHandler, store storage.Storage, verifier identity.Verifier) *HealthHandler {
	return &HealthHandler{BaseHandler: base, store: store, verifier: verifier}
}

func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Check)
}

// Check probes each dependency and reports per-service status. Any failing
// dependency turns the whole response into a 503.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	services := gin.H{
		"database": h.checkDatabase(c),
		"storage":  h.checkStorage(ctx),
		"identity": h.checkIdentity(ctx),
	}

	status := "healthy"
	code := http.StatusOK
	for _, v := range services {
		if v != "healthy" {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services":  services,
	})
}

func (h *HealthHandler) checkDatabase(c *gin.Context) string {
	db := h.GetDB(c)
	if err := db.Exec("SELECT 1").Error; err != nil {
		return "unhealthy: " + err.Error()
	}
	return "healthy"
}

// checkStorage does a write-read-delete round trip with a throwaway object.
func (h *HealthHandler) checkStorage(ctx context.Context) string {
	const probe = ".healthcheck"
	if err := h.store.Save(ctx, probe, bytes.NewReader([]byte("ok")), "text/plain"); err != nil {
		return "unhealthy: " + err.Error()
	}
	defer h.store.Delete(ctx, probe)

	if _, err := h.store.GetSize(ctx, probe); err != nil {
		return "unhealthy: " + err.Error()
	}
	return "healthy"
}

func (h *HealthHandler) checkIdentity(ctx context.Context) string {
	if !h.verifier.Healthy(ctx) {
		return "unhealthy: verifier unavailable"
	}
	return "healthy"
}
