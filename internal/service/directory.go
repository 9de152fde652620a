package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/campus-bookings/internal/apperror"
	"github.com/sakif/campus-bookings/internal/model"
	"github.com/sakif/campus-bookings/internal/repository"
)

// DirectoryService exposes the public professor directory students browse
// before booking.
type DirectoryService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewDirectoryService creates a DirectoryService.
func NewDirectoryService(users repository.UserRepository, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{users: users, logger: logger}
}

// ListProfessors returns every professor account. Password hashes never
// serialize (json:"-" on the model), so returning the full records is safe.
func (s *DirectoryService) ListProfessors(ctx context.Context) ([]model.User, error) {
	professors, err := s.users.ListProfessors(ctx)
	if err != nil {
		s.logger.Error("failed to list professors", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing professors: %w", err)
	}

	return professors, nil
}

// GetProfessor returns a single professor's public profile.
//
// A user that exists but is not a professor is reported as NotFound, the same
// as a missing ID, so the directory does not confirm the existence of student
// accounts.
func (s *DirectoryService) GetProfessor(ctx context.Context, id string) (*model.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "professor ID is required")
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !user.IsProfessor {
		return nil, apperror.NotFound("professor", id)
	}

	return user, nil
}
