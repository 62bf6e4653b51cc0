// Package repository provides data access for costed products.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/model"
)

// ProductRepository provides methods for product operations.
type ProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *MongoDB) *ProductRepository {
	return &ProductRepository{
		collection: db.Products,
	}
}

// Upsert stores a product keyed by name. Accepting a new costing session for
// an existing product replaces its unit cost and suggested prices.
func (r *ProductRepository) Upsert(ctx context.Context, product *model.Product) (*model.Product, error) {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"ingredients":      product.Ingredients,
			"unit_cost":        product.UnitCost,
			"suggested_prices": product.SuggestedPrices,
			"updated_at":       now,
		},
		"$setOnInsert": bson.M{
			"name":       product.Name,
			"created_by": product.CreatedBy,
			"created_at": now,
		},
	}

	var stored model.Product
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"name": product.Name},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&stored)
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// FindByID returns a product by its ID.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	var product model.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByName returns a product by its name.
func (r *ProductRepository) FindByName(ctx context.Context, name string) (*model.Product, error) {
	var product model.Product
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns products ordered by most recently updated.
func (r *ProductRepository) List(ctx context.Context, limit int) ([]model.Product, error) {
	opts := options.Find().SetSort(bson.M{"updated_at": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var products []model.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	return products, nil
}

// Delete removes a product by ID.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
