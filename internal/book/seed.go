package book

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

//go:embed seed/books.json
var defaultSeed []byte

// DefaultSeed returns the catalog compiled into the binary.
func DefaultSeed() ([]Book, error) {
	return LoadSeed(bytes.NewReader(defaultSeed))
}

// LoadSeedFile reads a catalog from a JSON file with the same shape as the default seed.
func LoadSeedFile(path string) ([]Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()
	return LoadSeed(f)
}

// LoadSeed decodes a JSON array of books. Reviews present in the input are kept.
func LoadSeed(r io.Reader) ([]Book, error) {
	var books []Book
	if err := json.NewDecoder(r).Decode(&books); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i := range books {
		if books[i].Reviews == nil {
			books[i].Reviews = map[string]Review{}
		}
		for username, review := range books[i].Reviews {
			if review.User == "" {
				review.User = username
				books[i].Reviews[username] = review
			}
		}
	}
	return books, nil
}
