package services

import (
	"context"
	"errors"
	"strings"

	"github.com/promedhq/promed/internal/apperrors"
	"github.com/promedhq/promed/internal/auth"
	"github.com/promedhq/promed/internal/domain"
	"github.com/promedhq/promed/internal/repository"
)

// UserService handles signup and credential verification.
type UserService struct {
	users *repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register creates a new account. Emails are normalized to lower case so
// the uniqueness constraint and later lookups are case-insensitive.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		return nil, apperrors.NewValidationError("Username, email and password are required")
	}
	if !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("Email address is not valid")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks credentials against a username or email identifier.
// Lookups and hash mismatches both come back as ErrInvalidCredentials so
// the login form cannot be used to probe for accounts.
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}
