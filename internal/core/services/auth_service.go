package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hr-selfservice/internal/adapters/persistence/repositories"
	"hr-selfservice/internal/config"
	"hr-selfservice/internal/core/domain"
	"hr-selfservice/internal/pkg/jwt"
	"hr-selfservice/internal/pkg/password"

	"github.com/sirupsen/logrus"
)

// AuthService handles admin login
type AuthService struct {
	adminRepo repositories.AdminRepository
	cfg       *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(adminRepo repositories.AdminRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		cfg:       cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents a successful login
type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Admin     *domain.Admin `json:"admin"`
}

// Login verifies the admin's password and issues an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, domain.NewValidationError("", "Username and password are required")
	}

	// 1. Find admin by username
	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password
	if !password.Verify(input.Password, admin.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Generate token
	token, expiresAt, err := jwt.GenerateAccessToken(admin.ID, admin.Username, jwt.RoleAdmin, s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins)
	if err != nil {
		return nil, err
	}

	logrus.WithField("username", admin.Username).Info("✅ Admin logged in")

	return &AuthResponse{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

// Me returns the admin behind a token. A token whose admin no longer exists is unauthorized.
func (s *AuthService) Me(ctx context.Context, adminID string) (*domain.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("admin %s: %w", adminID, domain.ErrUnauthorized)
	}
	return admin, err
}
