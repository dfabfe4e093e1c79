package book

import (
	"context"
	"fmt"
	"sync"
)

// MemoryRepo keeps the catalog in process memory. A single RWMutex guards the map and
// the insertion-order index, so every read-then-write on a book's reviews is atomic.
type MemoryRepo struct {
	mu    sync.RWMutex
	books map[string]*Book
	order []string
}

// NewMemoryRepo builds a repository from seed books, preserving their order.
func NewMemoryRepo(seed []Book) (*MemoryRepo, error) {
	repo := &MemoryRepo{
		books: make(map[string]*Book, len(seed)),
		order: make([]string, 0, len(seed)),
	}
	for _, b := range seed {
		if b.ISBN == "" {
			return nil, fmt.Errorf("seed book %q: empty isbn", b.Title)
		}
		if _, exists := repo.books[b.ISBN]; exists {
			return nil, fmt.Errorf("seed book %q: duplicate isbn %s", b.Title, b.ISBN)
		}
		stored := b.Clone()
		repo.books[b.ISBN] = &stored
		repo.order = append(repo.order, b.ISBN)
	}
	return repo, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Book, 0, len(r.order))
	for _, isbn := range r.order {
		out = append(out, r.books[isbn].Clone())
	}
	return out, nil
}

func (r *MemoryRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[isbn]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b.Clone(), nil
}

func (r *MemoryRepo) PutReview(ctx context.Context, isbn string, review Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[isbn]
	if !ok {
		return ErrNotFound
	}
	b.Reviews[review.User] = review
	return nil
}

func (r *MemoryRepo) DeleteReview(ctx context.Context, isbn, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[isbn]
	if !ok {
		return ErrNotFound
	}
	if _, ok := b.Reviews[username]; !ok {
		return ErrReviewNotFound
	}
	delete(b.Reviews, username)
	return nil
}
