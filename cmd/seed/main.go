// Command seed writes catalog files for CATALOG_FILE: the built-in catalog, a
// synthetic one of any size for load testing, or one looked up on Open Library
// from a list of ISBNs. It can also check an existing file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"bookreview/internal/book"
	"bookreview/internal/platform/openlibrary"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	out := fs.String("out", "-", "output file, - for stdout")
	count := fs.Int("count", 0, "generate this many synthetic books instead of the built-in catalog")
	seed := fs.Uint64("seed", 1, "random seed for synthetic books")
	check := fs.String("check", "", "validate a catalog file and exit")
	lookup := fs.String("lookup", "", "comma-separated ISBNs to fetch from Open Library")
	baseURL := fs.String("openlibrary-url", "https://openlibrary.org", "Open Library base URL")
	rps := fs.Int("rps", 1, "Open Library requests per second")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *check != "" {
		return checkCatalog(*check, stdout)
	}

	var books []book.Book
	var err error
	switch {
	case *lookup != "":
		client := openlibrary.NewClient("bookreview-seed/1.0", *rps, 3, openlibrary.WithBaseURL(*baseURL))
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		books, err = fetch(ctx, client, splitISBNs(*lookup))
	case *count > 0:
		books = generate(*count, *seed)
	default:
		books, err = book.DefaultSeed()
	}
	if err != nil {
		return err
	}

	w := stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(books)
}

func checkCatalog(path string, stdout io.Writer) error {
	books, err := book.LoadSeedFile(path)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		return errors.New("catalog is empty")
	}
	if _, err := book.NewMemoryRepo(books); err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s: %d books OK\n", path, len(books))
	return err
}

// lookupBatch keeps the bibkeys query string at a reasonable length.
const lookupBatch = 50

// fetch builds catalog entries in the order the ISBNs were given. ISBNs Open
// Library does not know are an error so a typo is not silently dropped.
func fetch(ctx context.Context, client *openlibrary.Client, isbns []string) ([]book.Book, error) {
	if len(isbns) == 0 {
		return nil, errors.New("no isbns given")
	}

	books := make([]book.Book, 0, len(isbns))
	for start := 0; start < len(isbns); start += lookupBatch {
		batch := isbns[start:min(start+lookupBatch, len(isbns))]
		details, err := client.GetBooksByISBN(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("open library lookup: %w", err)
		}
		for _, isbn := range batch {
			d, ok := details[isbn]
			if !ok {
				return nil, fmt.Errorf("isbn %s not found on open library", isbn)
			}
			books = append(books, book.Book{
				ISBN:    isbn,
				Title:   d.Title,
				Author:  d.Author(),
				Reviews: map[string]book.Review{},
			})
		}
	}
	return books, nil
}

func splitISBNs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if isbn := strings.TrimSpace(part); isbn != "" {
			out = append(out, isbn)
		}
	}
	return out
}

func generate(count int, seed uint64) []book.Book {
	rng := rand.New(rand.NewPCG(seed, seed))
	authors := []string{"Jane Austen", "Chinua Achebe", "Dante Alighieri", "Samuel Beckett", "Honoré de Balzac", "Unknown"}

	books := make([]book.Book, 0, count)
	for i := 0; i < count; i++ {
		price := float64(500+rng.IntN(2000)) / 100
		books = append(books, book.Book{
			ISBN:    fmt.Sprintf("978%010d", i+1),
			Title:   fmt.Sprintf("The %s of %s", randomWord(rng), randomWord(rng)),
			Author:  authors[rng.IntN(len(authors))],
			Price:   &price,
			Reviews: map[string]book.Review{},
		})
	}
	return books
}

func randomWord(rng *rand.Rand) string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "History", "Future",
		"Reality", "Imagination", "Wisdom", "Life", "Light", "Darkness", "Time", "Mind",
	}
	return words[rng.IntN(len(words))]
}
