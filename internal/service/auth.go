package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hongminglow/driveops-be/internal/auth"
	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/models"
	"github.com/hongminglow/driveops-be/internal/storage"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, models.User, error)
	// ValidateToken exposes token verification as a query for client-side routing.
	ValidateToken(token string) (auth.Identity, bool)
	// EnsureAdmin creates the bootstrap admin account unless the email is already taken.
	EnsureAdmin(ctx context.Context, email, password string) (models.User, error)
}

type authService struct {
	stg    storage.UserStore
	tokens *auth.TokenManager
	log    logger.ILogger
}

func NewAuthService(stg storage.Store, tokens *auth.TokenManager, log logger.ILogger) AuthService {
	return &authService{stg: stg, tokens: tokens, log: log}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	email = normalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return "", models.User{}, validation("email and password are required")
	}

	user, err := s.stg.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", models.User{}, ErrInvalidCredentials
		}
		return "", models.User{}, storeErr("user", err)
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", models.User{}, err
	}
	s.log.Info("user logged in", logger.Int64("user_id", user.ID), logger.String("role", string(user.Role)))
	return token, user, nil
}

func (s *authService) ValidateToken(token string) (auth.Identity, bool) {
	id, err := s.tokens.Verify(strings.TrimSpace(token))
	if err != nil {
		return auth.Identity{}, false
	}
	return id, true
}

func (s *authService) EnsureAdmin(ctx context.Context, email, password string) (models.User, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return models.User{}, err
	}
	if err := validatePassword(password); err != nil {
		return models.User{}, err
	}

	existing, err := s.stg.FindUserByEmail(ctx, email)
	if err == nil {
		if existing.Role != models.RoleAdmin {
			s.log.Warning("bootstrap admin email belongs to a non-admin account", logger.Int64("user_id", existing.ID))
		}
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, storeErr("user", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	created, err := s.stg.CreateUser(ctx, models.User{Email: email, PasswordHash: hash, Role: models.RoleAdmin})
	if errors.Is(err, storage.ErrAlreadyExists) {
		// lost a race with another instance
		return s.stg.FindUserByEmail(ctx, email)
	}
	if err != nil {
		return models.User{}, storeErr("user", err)
	}
	s.log.Info("bootstrap admin created", logger.Int64("user_id", created.ID))
	return created, nil
}
