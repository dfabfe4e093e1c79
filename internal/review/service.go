package review

import (
	"context"
	"strings"
	"time"

	"bookreview/internal/book"
)

// Service manages the reviews a signed-in user owns. Reviews live inside the
// catalog, so it works directly on the book repository.
type Service struct {
	books book.Repository
	now   func() time.Time
}

func NewService(books book.Repository) *Service {
	return &Service{books: books, now: time.Now}
}

// Book looks up the book a review targets.
func (s *Service) Book(ctx context.Context, isbn string) (book.Book, error) {
	return s.books.GetByISBN(ctx, isbn)
}

// ListByUser returns every review written by username, in catalog order.
func (s *Service) ListByUser(ctx context.Context, username string) ([]Entry, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := []Entry{}
	for _, b := range books {
		rv, ok := b.Reviews[username]
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			ID:        entryID(b.ISBN, username),
			Book:      BookRef{ID: b.ISBN, Title: b.Title, Author: b.Author},
			Rating:    rv.Rating,
			Comment:   rv.Comment,
			CreatedAt: rv.Date,
		})
	}
	return entries, nil
}

// Upsert writes username's review of isbn, replacing any earlier one. A zero
// rating means DefaultRating. The date is set to today.
func (s *Service) Upsert(ctx context.Context, isbn, username, comment string, rating int) (book.Review, error) {
	if _, err := s.books.GetByISBN(ctx, isbn); err != nil {
		return book.Review{}, err
	}
	if strings.TrimSpace(comment) == "" {
		return book.Review{}, ErrMissingComment
	}
	if rating == 0 {
		rating = DefaultRating
	}
	if rating < MinRating || rating > MaxRating {
		return book.Review{}, ErrInvalidRating
	}

	rv := book.Review{
		User:    username,
		Comment: comment,
		Rating:  rating,
		Date:    s.now().UTC().Format(book.DateLayout),
	}
	if err := s.books.PutReview(ctx, isbn, rv); err != nil {
		return book.Review{}, err
	}
	return rv, nil
}

// Delete removes username's review of isbn. It returns book.ErrNotFound for an
// unknown book and book.ErrReviewNotFound when there is nothing to delete.
func (s *Service) Delete(ctx context.Context, isbn, username string) error {
	return s.books.DeleteReview(ctx, isbn, username)
}
