package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sjperalta/lumina-api/internal/config"
	"github.com/sjperalta/lumina-api/internal/models"
	"github.com/sjperalta/lumina-api/internal/repository"
	"github.com/sjperalta/lumina-api/pkg/logger"
)

// AuthService handles the single-operator login
type AuthService struct {
	sessionRepo  repository.SessionRepository
	passwordHash []byte
	cfg          *config.Config
}

// NewAuthService creates a new auth service. A plaintext development password is
// hashed once here so both paths compare against bcrypt.
func NewAuthService(sessionRepo repository.SessionRepository, cfg *config.Config) (*AuthService, error) {
	hash := cfg.AdminPasswordHash
	if hash == "" && cfg.AdminPassword != "" {
		h, err := HashPassword(cfg.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		hash = h
	}
	if hash == "" {
		return nil, fmt.Errorf("no admin password configured")
	}

	return &AuthService{
		sessionRepo:  sessionRepo,
		passwordHash: []byte(hash),
		cfg:          cfg,
	}, nil
}

// LoginResult represents the result of a login attempt
type LoginResult struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
	User      models.SessionUser `json:"user"`
}

// Login checks the shared secret, stores the session user and returns a token
func (s *AuthService) Login(ctx context.Context, password string) (*LoginResult, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		logger.Log.WarnContext(ctx, "login rejected")
		return nil, ErrUnauthorized
	}

	user := models.AdminUser()
	if err := s.sessionRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour)
	token, err := s.generateJWT(user, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Logout removes the stored session user
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessionRepo.Clear(ctx)
}

// CurrentUser returns the stored session user, or ErrUnauthorized when there is none
func (s *AuthService) CurrentUser(ctx context.Context) (*models.SessionUser, error) {
	user, found, err := s.sessionRepo.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// generateJWT creates a new JWT token for the session user
func (s *AuthService) generateJWT(user models.SessionUser, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      expiresAt.Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// VerifyPassword compares a password with a hash
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
