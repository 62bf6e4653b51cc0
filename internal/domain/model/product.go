// Package model defines the core domain entities for the costing service.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a menu item whose unit cost has been established
// through a costing session. Only accepted results are persisted.
//
// @Description Menu product with its established unit cost and suggested prices
type Product struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// Name is the product name as entered by the operator.
	Name string `bson:"name" json:"name" example:"Jugo de Mango"`
	// Ingredients is the ordered list of ingredient names used in the
	// accepted costing session.
	Ingredients []string `bson:"ingredients" json:"ingredients"`
	// UnitCost is the accepted per-unit production cost.
	UnitCost float64 `bson:"unit_cost" json:"unit_cost" example:"1745"`
	// SuggestedPrices carries the tiered price ceilings computed from the
	// unit cost.
	SuggestedPrices SuggestedPrices `bson:"suggested_prices" json:"suggested_prices"`
	// CreatedBy is the identifier of the operator who accepted the cost.
	CreatedBy string    `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
} // @name Product
