package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ArowuTest/lottery-insights/internal/models"
	"github.com/ArowuTest/lottery-insights/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when the email or password does not match
var ErrInvalidCredentials = errors.New("invalid credentials")

// RoleAdmin is the role carried by administrator tokens
const RoleAdmin = "admin"

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl authenticates the configured administrator
type AuthServiceImpl struct {
	admin  models.AdminUser
	tokens *jwt.TokenService
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(admin models.AdminUser, tokens *jwt.TokenService) *AuthServiceImpl {
	if admin.Role == "" {
		admin.Role = RoleAdmin
	}
	return &AuthServiceImpl{
		admin:  admin,
		tokens: tokens,
	}
}

// Login checks the credentials and issues a token
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if s.admin.Email == "" || s.admin.PasswordHash == "" {
		slog.Warn("Login attempted but no administrator is configured")
		return nil, ErrInvalidCredentials
	}
	if !strings.EqualFold(strings.TrimSpace(req.Email), s.admin.Email) {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(s.admin.Email, s.admin.Email, s.admin.Role)
	if err != nil {
		return nil, err
	}
	slog.Info("Administrator logged in", "email", s.admin.Email)
	return &models.LoginResponse{
		Token:     token,
		ExpiresIn: int(s.tokens.ExpiresIn().Seconds()),
	}, nil
}

// HashPassword returns the bcrypt hash stored in admin.password_hash
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
