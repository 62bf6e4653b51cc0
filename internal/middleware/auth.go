package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/dto"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/i18n"
)

const (
	// APIKeyHeader is the header checked first for an API key.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the fallback query parameter, for clients that cannot
	// set headers (webhook testers, browser bookmarks).
	APIKeyQuery = "api_key"
)

// APIKeyAuth rejects requests that do not present a known API key. A nil or
// empty key set disables the check entirely.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(validKeys) == 0 {
			c.Next()
			return
		}

		key := extractAPIKey(c)
		switch {
		case key == "":
			rejectAPIKey(c, i18n.ErrKeyAPIKeyRequired)
		case !validKeys[key]:
			rejectAPIKey(c, i18n.ErrKeyInvalidAPIKey)
		default:
			c.Next()
		}
	}
}

func extractAPIKey(c *gin.Context) string {
	if key := c.GetHeader(APIKeyHeader); key != "" {
		return key
	}
	return c.Query(APIKeyQuery)
}

func rejectAPIKey(c *gin.Context, messageKey string) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(c))
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(GetRequestID(c)))
}
