package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/filmoteca-go/apperror"
	"github.com/user/filmoteca-go/config"
)

const tokenIssuer = "filmoteca"

// Claims is the JWT payload. The email is the only application claim; the
// embedded RegisteredClaims carry expiry and issuance metadata.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService issues and validates bearer tokens and authenticates the single
// configured admin identity. Token validation is stateless and safe to call
// concurrently.
type AuthService struct {
	authConfig config.AuthConfig
	// adminHash is the bcrypt hash of the configured admin password, computed
	// once at startup so plain-text comparison never happens per request.
	adminHash []byte
}

// NewAuthService creates an AuthService. It fails when the signing secret is
// absent; that is a fatal startup condition, not a per-request error.
func NewAuthService(authConfig config.AuthConfig) (*AuthService, error) {
	if authConfig.JWTSecret == "" {
		return nil, apperror.NewConfigError("JWT secret is not configured", nil)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(authConfig.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewConfigError("failed to hash admin password", err)
	}
	return &AuthService{
		authConfig: authConfig,
		adminHash:  hash,
	}, nil
}

// AdminEmail returns the configured admin identity the gate compares against.
func (s *AuthService) AdminEmail() string {
	return s.authConfig.AdminEmail
}

// Login authenticates the credential against the configured admin identity and
// returns a signed token. Any mismatch yields the same generic error; the
// response never reveals which part of the credential was wrong.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, error) {
	if req.Email != s.authConfig.AdminEmail {
		return "", apperror.NewAuthError("invalid credentials", nil)
	}
	if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(req.Password)); err != nil {
		return "", apperror.NewAuthError("invalid credentials", nil)
	}
	return s.IssueToken(req.Email)
}

// IssueToken produces a signed HS256 token embedding the email claim plus
// expiry metadata from the configured access-token duration.
func (s *AuthService) IssueToken(email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.authConfig.AccessTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.authConfig.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken verifies the signature and expiry of a token string and returns
// its decoded claims. Every failure mode (malformed token, bad signature,
// expiry, missing email claim) surfaces as an authorization error, never as a
// silent default.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.authConfig.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, apperror.NewUnauthorizedError("invalid token signature", err)
		}
		return nil, apperror.NewUnauthorizedError("invalid token", err)
	}
	if !token.Valid {
		return nil, apperror.NewUnauthorizedError("invalid token", nil)
	}
	if claims.Email == "" {
		return nil, apperror.NewUnauthorizedError("invalid token: email claim is missing", nil)
	}
	return claims, nil
}
