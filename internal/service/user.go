package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/AnthonysMotion/mappr/backend/internal/auth"
	"github.com/AnthonysMotion/mappr/backend/internal/domain"
	"github.com/AnthonysMotion/mappr/backend/internal/repo"
)

// UserService implements account signup, login, and profile updates.
type UserService struct {
	users  repo.UserRepo
	tokens *auth.TokenService
}

// NewUserService constructs a UserService backed by the provided repo and
// token service.
func NewUserService(users repo.UserRepo, tokens *auth.TokenService) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// Signup registers a new account and returns the user plus a signed access
// token. Returns domain.ErrConflict when the email is already registered.
func (s *UserService) Signup(ctx context.Context, email, password, displayName string) (domain.User, string, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.User{}, "", fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	user, err := s.users.Create(ctx, domain.User{
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: hash,
	})
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.Signup: %w", err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.Signup: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and returns the user plus a signed access token.
// A wrong password and an unknown email both report domain.ErrNotFound, so
// login failures do not reveal which emails have accounts.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.Login: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return domain.User{}, "", fmt.Errorf("service.UserService.Login: %w", domain.ErrNotFound)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.Login: %w", err)
	}
	return user, token, nil
}

// GetByID returns a user account by ID.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", err)
	}
	return user, nil
}

// UpdateDisplayName changes the user's display name.
func (s *UserService) UpdateDisplayName(ctx context.Context, userID uuid.UUID, displayName string) (domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.UpdateDisplayName: %w", err)
	}

	user.DisplayName = strings.TrimSpace(displayName)
	updated, err := s.users.UpdateProfile(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.UpdateDisplayName: %w", err)
	}
	return updated, nil
}

// SetAvatarURL stores the public URL of a freshly uploaded avatar and
// returns the previous URL so the caller can delete the old object.
func (s *UserService) SetAvatarURL(ctx context.Context, userID uuid.UUID, url string) (domain.User, string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.SetAvatarURL: %w", err)
	}

	previous := user.AvatarURL
	user.AvatarURL = url
	updated, err := s.users.UpdateProfile(ctx, user)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.SetAvatarURL: %w", err)
	}
	return updated, previous, nil
}
