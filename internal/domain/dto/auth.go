// Package dto defines Data Transfer Objects for authentication.
package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginRequest is the body of POST /api/auth/login.
//
// @Description Request to authenticate an operator
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"maria@restaurante.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
} // @name LoginRequest

// RegisterRequest is the body of POST /api/auth/register.
//
// @Description Request to register a new operator account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"maria@restaurante.com"`
	Username string `json:"username" binding:"required,min=3,max=30" example:"maria"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
	// Name is optional; the email local part is shown when absent.
	Name string `json:"name,omitempty" example:"María García"`
} // @name RegisterRequest

// LoginResponse carries the issued token pair and the authenticated user.
//
// @Description Successful authentication response with JWT tokens
type LoginResponse struct {
	Token        string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string       `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User         UserResponse `json:"user"`
} // @name LoginResponse

// UserResponse is the public projection of a user; it never carries the
// password hash or the Mongo ID.
type UserResponse struct {
	Email string `json:"email" example:"maria@restaurante.com"`
	Name  string `json:"name,omitempty" example:"María García"`
} // @name UserResponse

// TokenPair bundles an access token with its refresh token. Lives in dto
// rather than model to keep the service packages import-cycle free.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in"`
}

// Claims is the JWT payload shared by access and refresh tokens.
type Claims struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
	Role   string             `json:"role"`
}

func requireMinLen(field, value string, minLen int) error {
	if value == "" {
		return &ValidationError{Field: field, Message: field + " is required"}
	}
	if len(value) < minLen {
		return &ValidationError{Field: field, Message: field + " is too short"}
	}
	return nil
}

// Validate applies the login rules that binding tags cannot express.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	return requireMinLen("password", r.Password, 6)
}

// Validate applies the registration rules that binding tags cannot express.
func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if err := requireMinLen("username", r.Username, 3); err != nil {
		return err
	}
	if len(r.Username) > 30 {
		return &ValidationError{Field: "username", Message: "username must be at most 30 characters"}
	}
	return requireMinLen("password", r.Password, 6)
}
