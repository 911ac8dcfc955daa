package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ArowuTest/lottery-insights/internal/models"
	"github.com/ArowuTest/lottery-insights/pkg/jwt"
)

func newTestAuthService(t *testing.T, email, password string) (*AuthServiceImpl, *jwt.TokenService) {
	t.Helper()
	var hash string
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		hash = string(h)
	}
	tokens, err := jwt.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)
	return NewAuthService(models.AdminUser{Email: email, PasswordHash: hash}, tokens), tokens
}

func TestAuthService_Login(t *testing.T) {
	svc, tokens := newTestAuthService(t, "admin@example.com", "s3cret")

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Email: "Admin@Example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, 3600, resp.ExpiresIn)

	claims, err := tokens.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestAuthService_LoginRejected(t *testing.T) {
	svc, _ := newTestAuthService(t, "admin@example.com", "s3cret")
	ctx := context.Background()

	_, err := svc.Login(ctx, &models.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "other@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_NoAdminConfigured(t *testing.T) {
	svc, _ := newTestAuthService(t, "", "")

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "admin@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct horse")))
}
