// Package auth provides token issuance, token validation, and the bearer
// authorization gate. This file defines the request payloads for the auth
// endpoints.
package auth

// LoginRequest is the credential payload for POST /login. The credential is
// ephemeral: it is checked against the configured admin identity and never
// stored.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"admin@gmail.com"`
	Password string `json:"password" validate:"required" example:"admin"`
}
