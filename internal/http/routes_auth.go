package http

import (
	"github.com/gin-gonic/gin"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/middleware"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/service"
)

// AuthRoutes wires the authentication endpoints. Login, register and refresh
// stay public; logout needs a valid access token and therefore lives on the
// protected group.
type AuthRoutes struct {
	handler     *AuthHandler
	authService service.AuthService
}

// NewAuthRoutes creates a new AuthRoutes instance.
func NewAuthRoutes(authService service.AuthService) *AuthRoutes {
	return &AuthRoutes{
		handler:     NewAuthHandler(authService),
		authService: authService,
	}
}

// RegisterPublicRoutes registers the endpoints reachable without a token.
func (r *AuthRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/login", r.handler.Login)
	auth.POST("/register", r.handler.Register)
	auth.POST("/refresh", r.handler.RefreshToken)
}

// ProtectedGroup derives a group guarded by JWT validation and, when the
// router has a rate limit configured, per-user rate limiting. Logout is
// registered here since it revokes the caller's own tokens.
func (r *AuthRoutes) ProtectedGroup(rg *gin.RouterGroup, cfg *RouterConfig) *gin.RouterGroup {
	protected := rg.Group("")
	protected.Use(middleware.JWTAuth(r.authService))

	if cfg.RateLimit > 0 {
		userLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		protected.Use(userLimiter.UserRateLimit())
	}

	protected.POST("/auth/logout", r.handler.Logout)
	return protected
}
