package models

import "github.com/golang-jwt/jwt/v5"

// Authentication strategy names, decided at startup from configuration.
const (
	ProviderCredentials = "credentials"
	ProviderGoogle      = "google"
)

// LoginRequest holds credentials for the credentials strategy.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued session token and user info.
type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresIn int64    `json:"expires_in"`
	User      UserInfo `json:"user"`
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SessionClaims are the JWT claims carried by a session token. The ID
// (jti) keys the revocation list.
type SessionClaims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}
