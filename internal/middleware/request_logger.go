package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/model"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/logger"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/service"
)

// RequestLogger emits one structured log line per request and, when a
// logging service is available, persists a matching audit entry. Persistence
// goes through the shared async logger pool; a per-request goroutine is the
// fallback when the pool was never initialized.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := &model.LogEntry{
			Timestamp:  time.Now(),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: c.Writer.Status(),
			Duration:   time.Since(start).Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		}
		entry.Level = levelForStatus(entry.StatusCode)
		attachUserInfo(c, entry)

		emitRequestLog(entry)

		if loggingService == nil {
			return
		}
		if pool := GetAsyncLogger(); pool != nil {
			pool.Log(entry)
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = loggingService.CreateLog(ctx, entry)
		}()
	}
}

// emitRequestLog writes the entry to the structured logger at a severity
// matching the response status.
func emitRequestLog(entry *model.LogEntry) {
	log := logger.Logger().With().
		Str("request_id", entry.RequestID).
		Str("method", entry.Method).
		Str("path", entry.Path).
		Int("status_code", entry.StatusCode).
		Int64("duration_ms", entry.Duration).
		Str("ip", entry.IP).
		Str("user_agent", entry.UserAgent).
		Logger()

	switch entry.Level {
	case "error":
		log.Error().Msg(entry.Message)
	case "warn":
		log.Warn().Msg(entry.Message)
	default:
		log.Info().Msg(entry.Message)
	}
}

func levelForStatus(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}

// attachUserInfo copies authenticated user details from the gin context, when
// present, onto the log entry.
func attachUserInfo(c *gin.Context, entry *model.LogEntry) {
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(primitive.ObjectID); ok {
			entry.UserID = id.Hex()
		}
	}
	if userEmail, exists := c.Get("user_email"); exists {
		if email, ok := userEmail.(string); ok {
			entry.UserEmail = email
		}
	}
}
