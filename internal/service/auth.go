package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/mittalpriyanshi/globaltrotter/internal/auth"
	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
	"github.com/mittalpriyanshi/globaltrotter/internal/repo"
)

// minPasswordLength is the shortest password Register accepts.
const minPasswordLength = 8

// AuthService implements account registration and login.
type AuthService struct {
	users  repo.UserRepo
	tokens *auth.TokenManager
}

// NewAuthService constructs an AuthService backed by the provided repo
// and token manager.
func NewAuthService(users repo.UserRepo, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new account and returns it with a signed access token.
// Emails are stored as given but matched case-insensitively, so a duplicate
// differing only in case still fails with ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (domain.User, string, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.User{}, "", fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return domain.User{}, "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
	})
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return user, token, nil
}

// Login verifies the credentials and returns the account with a signed
// access token. An unknown email and a wrong password fail identically
// with ErrAccessDenied so the endpoint does not reveal which was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrAccessDenied)
		}
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrAccessDenied)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return user, token, nil
}

// GetUser returns the account for id.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.GetUser: %w", err)
	}
	return user, nil
}
