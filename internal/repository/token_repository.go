// Package repository provides token data access layer.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/model"
)

// TokenRepositoryInterface defines the interface for token repository operations.
type TokenRepositoryInterface interface {
	Create(ctx context.Context, token *model.Token) error
	FindByToken(ctx context.Context, tokenString string) (*model.Token, error)
	DeleteByToken(ctx context.Context, tokenString string) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID, tokenType string) error
	IsBlacklisted(ctx context.Context, tokenString string) (bool, error)
	CleanupExpired(ctx context.Context) error
}

// TokenRepository stores refresh and blacklisted tokens in the tokens
// collection. The TTL index on expires_at (see createIndexes) reaps expired
// documents without this repository's involvement; CleanupExpired exists for
// explicit sweeps in tests and admin tooling.
type TokenRepository struct {
	collection *mongo.Collection
}

// NewTokenRepository creates a new token repository.
func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{collection: db.Collection("tokens")}
}

// Create inserts a token, stamping ID and CreatedAt when absent.
func (r *TokenRepository) Create(ctx context.Context, token *model.Token) error {
	if token.ID.IsZero() {
		token.ID = primitive.NewObjectID()
	}
	token.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, token)
	return err
}

// FindByToken looks a token up by its string value. Returns nil without
// error when no document matches.
func (r *TokenRepository) FindByToken(ctx context.Context, tokenString string) (*model.Token, error) {
	var token model.Token
	err := r.collection.FindOne(ctx, bson.D{{Key: "token", Value: tokenString}}).Decode(&token)
	switch {
	case err == mongo.ErrNoDocuments:
		return nil, nil
	case err != nil:
		return nil, err
	}
	return &token, nil
}

// DeleteByToken removes a single token by its string value.
func (r *TokenRepository) DeleteByToken(ctx context.Context, tokenString string) error {
	_, err := r.collection.DeleteOne(ctx, bson.D{{Key: "token", Value: tokenString}})
	return err
}

// DeleteByUserID removes every token of the given type held by a user.
func (r *TokenRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID, tokenType string) error {
	filter := bson.D{
		{Key: "user_id", Value: userID},
		{Key: "type", Value: tokenType},
	}
	_, err := r.collection.DeleteMany(ctx, filter)
	return err
}

// IsBlacklisted reports whether the token string has a blacklist entry.
func (r *TokenRepository) IsBlacklisted(ctx context.Context, tokenString string) (bool, error) {
	filter := bson.D{
		{Key: "token", Value: tokenString},
		{Key: "type", Value: model.TokenTypeBlacklist},
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CleanupExpired deletes every token past its expiry.
func (r *TokenRepository) CleanupExpired(ctx context.Context) error {
	filter := bson.D{{Key: "expires_at", Value: bson.D{{Key: "$lt", Value: time.Now()}}}}
	_, err := r.collection.DeleteMany(ctx, filter)
	return err
}
