// internal/middleware/logging.go
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/farmfresh/internal/models"
)

var redactedFields = []string{"password"}

// AuditLogMiddleware stores one AuditLog row per mutating request.
func AuditLogMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip logging for GET requests and health checks
		if c.Request.Method == "GET" || c.Request.Method == "OPTIONS" || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		// Read request body
		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		c.Next()

		auditLog := newAuditLog(c, requestBody)

		// Save audit log asynchronously
		go func() {
			if err := db.Create(auditLog).Error; err != nil {
				logrus.WithError(err).Error("Failed to create audit log")
			}
		}()
	}
}

func newAuditLog(c *gin.Context, requestBody []byte) *models.AuditLog {
	auditLog := &models.AuditLog{
		Action:       c.Request.Method + " " + c.FullPath(),
		ResourceType: extractResourceType(c.Request.URL.Path),
		StatusCode:   c.Writer.Status(),
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	}
	if c.FullPath() == "" {
		auditLog.Action = c.Request.Method + " " + c.Request.URL.Path
	}

	if userID, ok := c.Get("user_id"); ok {
		if uid, ok := userID.(string); ok && uid != "" {
			auditLog.UserID = &uid
		}
	}

	// Extract resource ID from URL if present
	if resourceID := extractResourceID(c.Request.URL.Path); resourceID != "" {
		auditLog.ResourceID = &resourceID
	}

	var requestData map[string]interface{}
	if len(requestBody) > 0 && json.Unmarshal(requestBody, &requestData) == nil {
		for _, field := range redactedFields {
			if _, ok := requestData[field]; ok {
				requestData[field] = "[REDACTED]"
			}
		}
		auditLog.NewValues = models.JSONB(requestData)
	}
	return auditLog
}

func extractResourceType(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "api" {
		return parts[1]
	}
	if len(parts) >= 1 && parts[0] != "" {
		return parts[0]
	}
	return "unknown"
}

func extractResourceID(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for _, part := range parts {
		if _, err := uuid.Parse(part); err == nil {
			return part
		}
	}
	return ""
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		userID, _ := c.Get("user_id")
		entry := logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
			"user_id":    userID,
		})

		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("Request processed")
		case status >= 400:
			entry.Warn("Request processed")
		default:
			entry.Info("Request processed")
		}
	}
}
