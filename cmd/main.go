// Package main is the entry point for the costing-service application.
//
// @title           Costing Service API
// @version         1.0.0
// @description     API for guided ingredient cost calculation of restaurant products.
//
//	The service walks an operator through costing every ingredient of a product,
//	aggregates margins, and suggests tiered sale prices.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  soporte@conektao.com
// @contact.url    https://github.com/conektaolatam-netizen/conektao-sub003
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 JWT access token, prefixed with "Bearer ".
//
// @tag.name        Costing
// @tag.description Guided costing session operations
//
// @tag.name        Products
// @tag.description Accepted product cost records
//
// @tag.name        Auth
// @tag.description Authentication endpoints
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"github.com/rs/zerolog/log"

	_ "github.com/conektaolatam-netizen/conektao-sub003/docs" // swagger docs

	"github.com/conektaolatam-netizen/conektao-sub003/config"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/app"
)

func main() {
	cfg := config.Load()

	router := app.InitializeApp(cfg)
	server := app.NewServer(router, cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
