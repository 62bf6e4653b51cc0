// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"github.com/conektaolatam-netizen/conektao-sub003/internal/wizard"
)

// StartSessionRequest represents the JSON request body for opening a new
// costing session.
//
// The ProductName field is required. Ingredients is optional; names can be
// added interactively once the session is open.
//
// @Description Request to start a guided costing session for a product
// @Example {"product_name": "Jugo de Mango", "ingredients": ["Mango", "Azucar"]}
type StartSessionRequest struct {
	// ProductName is the name of the product being costed.
	ProductName string `json:"product_name" binding:"required" example:"Jugo de Mango"`
	// Ingredients is an optional initial list of ingredient names.
	Ingredients []string `json:"ingredients" example:"Mango,Azucar"`
} // @name StartSessionRequest

// StepRequest represents the JSON request body for driving one wizard step.
//
// @Description A single workflow action applied to an open costing session
// @Example {"type": "add_ingredient", "name": "Mango"}
// @Example {"type": "select_ingredient", "index": 0}
type StepRequest struct {
	wizard.Action
} // @name StepRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrInvalidProductName is returned when product_name is missing.
	ErrInvalidProductName = &ValidationError{
		Field:   "product_name",
		Message: "must not be empty",
	}
)

// Validate performs custom validation on the request.
// Returns an error if validation fails, nil otherwise.
func (r *StartSessionRequest) Validate() error {
	if r.ProductName == "" {
		return ErrInvalidProductName
	}
	return nil
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
