// Package app provides application initialization and dependency injection.
package app

import (
	"github.com/gin-gonic/gin"

	"github.com/conektaolatam-netizen/conektao-sub003/config"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/http"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/middleware"
)

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all components.
func InitializeApp(cfg config.Config) *gin.Engine {
	// Logger first, everything else logs through it.
	InitializeLogger()

	dbComponents := InitializeDatabase(cfg.Database)
	serviceComponents := InitializeServices(cfg.Costing, dbComponents)

	// Buffered async log writes when MongoDB logging is available.
	if dbComponents != nil && dbComponents.LoggingService != nil {
		middleware.InitAsyncLogger(dbComponents.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	return http.NewRouter(routerComponents.HealthHandler, routerComponents.Config)
}
