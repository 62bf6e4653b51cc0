package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/dto"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/i18n"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/logger"
)

// ErrorHandler logs errors attached to the gin context after the handler
// chain finishes and writes a translated 500 envelope when no handler has
// responded yet.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := GetRequestID(c)
		evt := logger.Logger().Error().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status())
		if len(c.Errors) > 1 {
			evt = evt.Int("error_count", len(c.Errors))
		}
		evt.Str("error", c.Errors.Last().Error()).Msg("Request finished with errors")

		if c.Writer.Written() {
			return
		}

		message := i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, i18n.GetLocale(c))
		c.JSON(http.StatusInternalServerError,
			dto.NewError(dto.ErrCodeInternal, message).WithRequestID(requestID))
	}
}
