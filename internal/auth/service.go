package auth

import (
	"context"
	"fmt"

	"bookreview/internal/user"
)

// TokenIssuer mints a bearer token for a username.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// Service ties the user store to token issuance.
type Service struct {
	users  *user.Service
	tokens TokenIssuer
}

func NewService(users *user.Service, tokens TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, username, password string) (user.User, error) {
	return s.users.Register(ctx, username, password)
}

// Login checks credentials and returns a fresh token with the canonical username.
func (s *Service) Login(ctx context.Context, username, password string) (string, string, error) {
	u, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return "", "", err
	}

	token, err := s.tokens.Issue(u.Username)
	if err != nil {
		return "", "", fmt.Errorf("issue token: %w", err)
	}
	return token, u.Username, nil
}

func (s *Service) ChangePassword(ctx context.Context, username, password string) error {
	return s.users.ChangePassword(ctx, username, password)
}
