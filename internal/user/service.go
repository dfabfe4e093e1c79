package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"bookreview/internal/platform/crypto"
)

type Service struct {
	repo Repository

	dummyOnce sync.Once
	dummyHash string
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register hashes the password and stores a new user. The username is trimmed;
// the password is kept as given.
func (s *Service) Register(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, ErrMissingCredentials
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{Username: username, PasswordHash: hash}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Authenticate returns ErrInvalidCredentials for both an unknown username and a
// wrong password. Unknown users are still compared against a hash so both paths
// take bcrypt time.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, ErrMissingCredentials
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			crypto.VerifyPassword(s.fallbackHash(), password)
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if !crypto.VerifyPassword(u.PasswordHash, password) {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) ChangePassword(ctx context.Context, username, password string) error {
	if password == "" {
		return ErrMissingCredentials
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, username, hash)
}

func (s *Service) fallbackHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = crypto.HashPassword("not-a-real-password")
	})
	return s.dummyHash
}
