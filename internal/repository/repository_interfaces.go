// Package repository provides interfaces for repository operations.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/model"
)

// ProductRepositoryInterface defines the interface for product repository operations.
type ProductRepositoryInterface interface {
	Upsert(ctx context.Context, product *model.Product) (*model.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	FindByName(ctx context.Context, name string) (*model.Product, error)
	List(ctx context.Context, limit int) ([]model.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
