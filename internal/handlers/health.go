// internal/handlers/health.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javajoker/farmfresh/internal/i18n"
	"github.com/javajoker/farmfresh/internal/utils"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	status := http.StatusOK
	database := "ok"

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status = http.StatusServiceUnavailable
			database = "unavailable"
		}
	}

	c.JSON(status, gin.H{
		"status":   http.StatusText(status),
		"message":  i18n.T(lang, i18n.KeyHealthy),
		"database": database,
		"time":     time.Now().UTC(),
	})
}
