// Package app provides database initialization and setup.
package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/conektaolatam-netizen/conektao-sub003/config"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/circuitbreaker"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/repository"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/service"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                     *repository.MongoDB
	ProductRepo            repository.ProductRepositoryInterface
	LoggingService         service.LoggingService
	ProductsCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker     *circuitbreaker.CircuitBreaker
	UserRepo               repository.UserRepositoryInterface
	TokenRepo              repository.TokenRepositoryInterface
}

// InitializeDatabase initializes the MongoDB connection and creates the
// repositories and services built on it.
// Returns nil if the database is disabled or the connection fails; the
// costing workflow itself never needs a database.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Msg("Connected to MongoDB")

	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetLogsTTL(context.Background(), ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
	}

	productsCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "mongodb-products",
	})

	logsCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "mongodb-logs",
	})

	logsRepo := repository.NewLogsRepository(db)
	logsRepoWithCB := repository.NewLogsRepositoryWithCircuitBreaker(logsRepo, logsCB)
	loggingService := service.NewLoggingService(logsRepoWithCB)

	productRepo := repository.NewProductRepository(db)
	productRepoWithCB := repository.NewProductRepositoryWithCircuitBreaker(productRepo, productsCB)

	userRepo := repository.NewUserRepository(db.Database)
	tokenRepo := repository.NewTokenRepository(db.Database)

	return &DatabaseComponents{
		DB:                     db,
		ProductRepo:            productRepoWithCB,
		LoggingService:         loggingService,
		ProductsCircuitBreaker: productsCB,
		LogsCircuitBreaker:     logsCB,
		UserRepo:               userRepo,
		TokenRepo:              tokenRepo,
	}
}
