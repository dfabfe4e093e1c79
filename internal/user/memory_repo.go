package user

import (
	"context"
	"sync"
)

// MemoryRepo keeps users for the lifetime of the process, in registration order.
type MemoryRepo struct {
	mu    sync.RWMutex
	users []User
	index map[string]int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{index: make(map[string]int)}
}

// Create checks for a duplicate and inserts under one lock, so two concurrent
// registrations of the same name cannot both succeed.
func (r *MemoryRepo) Create(_ context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[u.Username]; ok {
		return ErrAlreadyExists
	}
	r.index[u.Username] = len(r.users)
	r.users = append(r.users, u)
	return nil
}

func (r *MemoryRepo) GetByUsername(_ context.Context, username string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[username]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.users[i], nil
}

func (r *MemoryRepo) UpdatePassword(_ context.Context, username, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[username]
	if !ok {
		return ErrNotFound
	}
	r.users[i].PasswordHash = passwordHash
	return nil
}
