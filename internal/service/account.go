// Package service contains the business logic layer of the application.
//
// The layering follows the usual three-tier shape: handlers parse HTTP and
// write responses, services validate and enforce the booking rules,
// repositories read and write the store. Services accept primitives and
// return domain models plus apperror-tagged errors; they know nothing about
// HTTP, so the same logic serves the router and the tests identically.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/campus-bookings/internal/apperror"
	"github.com/sakif/campus-bookings/internal/auth"
	"github.com/sakif/campus-bookings/internal/model"
	"github.com/sakif/campus-bookings/internal/repository"
)

const (
	MaxUsernameLength = 64

	// invalidCredentials is the single message for every login failure.
	// Unknown username and wrong password must be indistinguishable.
	invalidCredentials = "invalid username or password"
)

// AccountService handles registration and login.
type AccountService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(users repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *AccountService {
	return &AccountService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new account with a bcrypt-hashed password.
//
// The username is trimmed and must be non-empty and unique; the password is
// stored verbatim into the hash (no trimming, since whitespace is part of the
// credential). Duplicate usernames return Conflict rather than silently
// creating a second account that would shadow the first at login.
func (s *AccountService) Register(ctx context.Context, username, password string, isProfessor bool) (*model.User, error) {
	username = strings.TrimSpace(username)

	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if len(username) > MaxUsernameLength {
		return nil, apperror.ValidationFailed("username",
			fmt.Sprintf("username must be %d characters or less", MaxUsernameLength))
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		IsProfessor:  isProfessor,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("registering user %q: %w", username, err)
	}

	s.logger.Info("user registered",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
		slog.Bool("isProfessor", user.IsProfessor),
	)

	return user, nil
}

// Login verifies credentials and returns the account.
//
// Every failure, unknown username or wrong password, comes back as the same
// Unauthorized error with the same message. When the username does not exist
// we still burn a bcrypt comparison so the two failure paths take comparable
// time and response latency does not confirm which usernames exist.
func (s *AccountService) Login(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		s.passwords.DummyVerify()
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		s.logger.Info("login rejected", slog.String("username", username))
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	s.logger.Info("user logged in",
		slog.String("id", user.ID),
		slog.String("role", user.Role()),
	)

	return user, nil
}

// GetUserByID returns the account for an internal ID. Used by the /me
// endpoint after the auth middleware validates the session token.
func (s *AccountService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return user, nil
}
