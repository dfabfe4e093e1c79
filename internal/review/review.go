package review

import "errors"

var (
	ErrMissingComment = errors.New("review comment is required")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
)

const (
	DefaultRating = 5
	MinRating     = 1
	MaxRating     = 5
)

// Entry is one of a user's reviews flattened together with a summary of its book.
type Entry struct {
	ID        string  `json:"_id"`
	Book      BookRef `json:"book"`
	Rating    int     `json:"rating"`
	Comment   string  `json:"comment"`
	CreatedAt string  `json:"createdAt"`
}

type BookRef struct {
	ID     string `json:"_id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

func entryID(isbn, username string) string {
	return isbn + "-" + username
}
