// Package dto holds the request and response shapes shared by the HTTP and
// gRPC transports, and the validator that checks requests before they reach
// the CredentialService.
package dto

import "github.com/dmitrijs2005/gophauth/internal/server/models"

type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// AuthResponse is the body of every successful auth call.
type AuthResponse struct {
	User  models.Profile `json:"user"`
	Token string         `json:"token"`
}

// ErrorResponse mirrors the status code in the body.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
