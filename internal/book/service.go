package book

import (
	"context"
	"strings"
)

// Service provides catalog queries.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every book in catalog order.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

// GetByISBN returns a book by its ISBN.
func (s *Service) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	return s.repo.GetByISBN(ctx, isbn)
}

// ByAuthor returns books whose author equals author, ignoring case.
func (s *Service) ByAuthor(ctx context.Context, author string) ([]Book, error) {
	return s.filter(ctx, func(b Book) bool {
		return strings.EqualFold(b.Author, author)
	})
}

// ByTitle returns books whose title contains title, ignoring case.
func (s *Service) ByTitle(ctx context.Context, title string) ([]Book, error) {
	needle := strings.ToLower(title)
	return s.filter(ctx, func(b Book) bool {
		return strings.Contains(strings.ToLower(b.Title), needle)
	})
}

// Reviews returns all reviews of a book keyed by username. A book without reviews
// yields an empty, non-nil map.
func (s *Service) Reviews(ctx context.Context, isbn string) (map[string]Review, error) {
	b, err := s.repo.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if b.Reviews == nil {
		return map[string]Review{}, nil
	}
	return b.Reviews, nil
}

func (s *Service) filter(ctx context.Context, keep func(Book) bool) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []Book
	for _, b := range books {
		if keep(b) {
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}
