package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/filmoteca-go/apperror"
	"github.com/user/filmoteca-go/config"
)

const (
	testSecret     = "test-secret-that-is-long-enough-for-testing"
	testAdminEmail = "admin@gmail.com"
	testAdminPass  = "admin"
)

func newTestAuthService(t *testing.T, tokenLifetime time.Duration) *AuthService {
	t.Helper()
	svc, err := NewAuthService(config.AuthConfig{
		JWTSecret:           testSecret,
		AccessTokenDuration: tokenLifetime,
		AdminEmail:          testAdminEmail,
		AdminPassword:       testAdminPass,
	})
	require.NoError(t, err)
	return svc
}

func TestNewAuthService(t *testing.T) {
	t.Run("fails without signing secret", func(t *testing.T) {
		_, err := NewAuthService(config.AuthConfig{
			AccessTokenDuration: time.Hour,
			AdminEmail:          testAdminEmail,
			AdminPassword:       testAdminPass,
		})
		require.Error(t, err)
	})

	t.Run("succeeds with full configuration", func(t *testing.T) {
		svc := newTestAuthService(t, time.Hour)
		assert.Equal(t, testAdminEmail, svc.AdminEmail())
	})
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	token, err := svc.IssueToken(testAdminEmail)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, testAdminEmail, claims.Email)
	assert.Equal(t, testAdminEmail, claims.Subject)
	assert.Equal(t, "filmoteca", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateToken_Failures(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "malformed token",
			token: func(t *testing.T) string {
				return "not.a.jwt"
			},
		},
		{
			name: "token signed with a different secret",
			token: func(t *testing.T) string {
				other, err := NewAuthService(config.AuthConfig{
					JWTSecret:           "another-secret-entirely",
					AccessTokenDuration: time.Hour,
					AdminEmail:          testAdminEmail,
					AdminPassword:       testAdminPass,
				})
				require.NoError(t, err)
				token, err := other.IssueToken(testAdminEmail)
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				expired := newTestAuthService(t, -time.Minute)
				token, err := expired.IssueToken(testAdminEmail)
				require.NoError(t, err)
				return token
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tc.token(t))
			require.Error(t, err)
			assert.True(t, apperror.IsUnauthorizedError(err), "expected an authorization error, got %v", err)
		})
	}
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)
	ctx := context.Background()

	t.Run("valid credentials yield a verifiable token", func(t *testing.T) {
		token, err := svc.Login(ctx, LoginRequest{Email: testAdminEmail, Password: testAdminPass})
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, testAdminEmail, claims.Email)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Email: testAdminEmail, Password: "nope"})
		require.Error(t, err)
		assert.True(t, apperror.IsAuthError(err))
	})

	t.Run("wrong email is rejected with the same generic error", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Email: "intruder@gmail.com", Password: testAdminPass})
		require.Error(t, err)
		assert.True(t, apperror.IsAuthError(err))
		assert.EqualError(t, err, "invalid credentials")
	})
}
