package http

import (
	"github.com/gin-gonic/gin"
)

// PublicRouteGroup is implemented by route bundles that attach endpoints
// reachable without a JWT, such as login and registration.
type PublicRouteGroup interface {
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// ProtectedRouteGroup is implemented by route bundles whose endpoints sit
// behind JWT auth and the per-user rate limit.
type ProtectedRouteGroup interface {
	RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}
