// Package repository provides circuit breaker wrappers for MongoDB operations.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/circuitbreaker"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/model"
)

// guarded runs fn through the breaker and carries its value out of the
// closure.
func guarded[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func() error {
		var innerErr error
		result, innerErr = fn()
		return innerErr
	})
	return result, err
}

// ProductRepositoryWithCircuitBreaker wraps ProductRepository so a failing
// database trips the breaker instead of stalling every request.
type ProductRepositoryWithCircuitBreaker struct {
	repo           *ProductRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewProductRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewProductRepositoryWithCircuitBreaker(repo *ProductRepository, cb *circuitbreaker.CircuitBreaker) *ProductRepositoryWithCircuitBreaker {
	return &ProductRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Upsert stores a product with circuit breaker protection.
func (r *ProductRepositoryWithCircuitBreaker) Upsert(ctx context.Context, product *model.Product) (*model.Product, error) {
	return guarded(ctx, r.circuitBreaker, func() (*model.Product, error) {
		return r.repo.Upsert(ctx, product)
	})
}

// FindByID returns a product by ID with circuit breaker protection.
func (r *ProductRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	return guarded(ctx, r.circuitBreaker, func() (*model.Product, error) {
		return r.repo.FindByID(ctx, id)
	})
}

// FindByName returns a product by name with circuit breaker protection.
// If the circuit is open, the product is reported as not found so a costing
// session can still proceed from scratch.
func (r *ProductRepositoryWithCircuitBreaker) FindByName(ctx context.Context, name string) (*model.Product, error) {
	result, err := guarded(ctx, r.circuitBreaker, func() (*model.Product, error) {
		return r.repo.FindByName(ctx, name)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		return nil, nil
	}
	return result, err
}

// List returns products with circuit breaker protection.
func (r *ProductRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]model.Product, error) {
	return guarded(ctx, r.circuitBreaker, func() ([]model.Product, error) {
		return r.repo.List(ctx, limit)
	})
}

// Delete removes a product with circuit breaker protection.
func (r *ProductRepositoryWithCircuitBreaker) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Delete(ctx, id)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *ProductRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps LogsRepository. Writes are treated
// as best effort: an open circuit swallows them rather than surfacing errors
// for what is auxiliary audit data.
type LogsRepositoryWithCircuitBreaker struct {
	repo           *LogsRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo *LogsRepository, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry, dropping it when the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	return r.write(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
}

// CreateMany stores multiple log entries, dropping them when the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	return r.write(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
}

func (r *LogsRepositoryWithCircuitBreaker) write(ctx context.Context, fn func() error) error {
	err := r.circuitBreaker.Execute(ctx, fn)
	if err == circuitbreaker.ErrCircuitOpen {
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return guarded(ctx, r.circuitBreaker, func() ([]*LogEntryDocument, error) {
		return r.repo.Query(ctx, opts)
	})
}

// Count returns the count of log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return guarded(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
