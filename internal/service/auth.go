package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkravets/storefront/internal/hash"
	"github.com/mkravets/storefront/internal/logging"
	"github.com/mkravets/storefront/internal/models"
	"github.com/mkravets/storefront/internal/repo"
)

const maxUsernameLen = 100

type AuthService struct {
	Repo *repo.GormRepo
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if username == "" || len(username) > maxUsernameLen {
		return nil, fmt.Errorf("username must be 1..%d characters: %w", maxUsernameLen, ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("password required: %w", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         "user",
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("register_conflict", "username", username)
			return nil, err
		}
		l.Error("register_error", "error", err)
		return nil, err
	}

	l.Info("user registered", "user_id", user.ID)
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.UserByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) {
			l.Warn("login failed", "reason", "invalid username or password")
			return nil, err
		}
		l.Error("login failed", "error", err)
		return nil, err
	}

	l.Info("user logged in", "user_id", user.ID)
	return user, nil
}
