package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for catalog storage. List returns books in catalog
// order; every method returns copies that callers may keep.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	// PutReview creates or replaces the review keyed by review.User.
	PutReview(ctx context.Context, isbn string, review Review) error
	DeleteReview(ctx context.Context, isbn, username string) error
}
