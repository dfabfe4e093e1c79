package book

import (
	"errors"
	"maps"
)

var (
	// ErrNotFound is returned when no book matches an ISBN, author or title.
	ErrNotFound = errors.New("book not found")
	// ErrReviewNotFound is returned when a user has no review on an existing book.
	ErrReviewNotFound = errors.New("review not found")
)

// DateLayout is the calendar-date format stored on reviews.
const DateLayout = "2006-01-02"

// Book is a catalog entry. Reviews are keyed by the reviewing username, so a user has
// at most one review per book.
type Book struct {
	ISBN    string            `json:"isbn"`
	Title   string            `json:"title"`
	Author  string            `json:"author"`
	Price   *float64          `json:"price,omitempty"`
	Reviews map[string]Review `json:"reviews"`
}

type Review struct {
	User    string `json:"user"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
	Date    string `json:"date"`
}

// Clone returns a copy that shares no mutable state with b.
func (b Book) Clone() Book {
	out := b
	if b.Price != nil {
		price := *b.Price
		out.Price = &price
	}
	out.Reviews = make(map[string]Review, len(b.Reviews))
	maps.Copy(out.Reviews, b.Reviews)
	return out
}
