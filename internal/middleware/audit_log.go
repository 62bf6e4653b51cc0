// Package middleware provides audit logging utilities.
package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/model"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/service"
)

// AuditLog logs a user action for audit purposes.
// Use for critical actions like login, accepting a cost result, or deleting a product.
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType string, message string, fields map[string]interface{}) {
	writeAuditEntry(loggingService, c, "info", actionType, message, nil, fields)
}

// AuditLogError logs a failed user action for audit purposes.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, actionType string, message string, err error, fields map[string]interface{}) {
	writeAuditEntry(loggingService, c, "error", actionType, message, err, fields)
}

func writeAuditEntry(loggingService service.LoggingService, c *gin.Context, level, actionType, message string, err error, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}

	entry := &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		ActionType: actionType,
		Fields:     fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	attachUserInfo(c, entry)

	// Stored asynchronously so audit writes never block the request.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}
