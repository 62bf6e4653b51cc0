package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/dto"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/i18n"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/service"
)

const bearerScheme = "Bearer "

// bearerToken extracts the token from the Authorization header. The second
// return distinguishes an absent token from a malformed header.
func bearerToken(c *gin.Context) (token string, present bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	if !strings.HasPrefix(header, bearerScheme) {
		return "", true
	}
	return strings.TrimPrefix(header, bearerScheme), true
}

// JWTAuth validates the bearer access token and stores the caller's identity
// on the context for downstream handlers and the audit log.
func JWTAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		unauthorized := func(key string) {
			message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(GetRequestID(c)))
		}

		token, present := bearerToken(c)
		switch {
		case !present:
			unauthorized(i18n.ErrKeyTokenRequired)
			return
		case token == "":
			unauthorized(i18n.ErrKeyInvalidToken)
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			unauthorized(i18n.ErrKeyInvalidToken)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_name", claims.Name)
		c.Set("user_role", claims.Role)
		c.Set("user_claims", claims)

		c.Next()
	}
}
