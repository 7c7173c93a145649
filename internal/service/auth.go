package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/rhinowatch/rhino-watch-sa/internal/auth"
	"github.com/rhinowatch/rhino-watch-sa/internal/config"
	"github.com/rhinowatch/rhino-watch-sa/internal/models"
	"github.com/rhinowatch/rhino-watch-sa/internal/repository"
)

//go:generate mockgen -source=auth.go -destination=mocks/auth_mock.go -package=mocks

// UserRepository defines the store contract for credential lookups.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService authenticates users and mints bearer tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

// LoginResult is a signed access token plus the identity it represents.
type LoginResult struct {
	AccessToken string
	User        *models.User
}

type authService struct {
	repo      UserRepository
	logger    *logrus.Logger
	jwtSecret []byte
}

func NewAuthService(repo UserRepository, logger *logrus.Logger, cfg *config.Config) AuthService {
	return &authService{
		repo:      repo,
		logger:    logger,
		jwtSecret: []byte(cfg.JWTSecret),
	}
}

// Login verifies a username/password pair and returns a signed token with a
// fixed 24h expiry. Unknown usernames and wrong passwords both yield
// ErrInvalidCredentials; the password is never logged.
func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "auth",
		"method":   "Login",
		"username": username,
	})

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("Login rejected")
			return nil, ErrInvalidCredentials
		}
		log.WithError(err).Error("Failed to look up user")
		return nil, fmt.Errorf("service: could not look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Info("Login rejected")
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role, s.jwtSecret, auth.TokenValidity)
	if err != nil {
		log.WithError(err).Error("Failed to sign access token")
		return nil, fmt.Errorf("service: could not sign token: %w", err)
	}

	log.Info("Login succeeded")
	return &LoginResult{AccessToken: token, User: user}, nil
}
