package book

import (
	"errors"
	"net/http"

	"bookreview/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type listResponse struct {
	Message    string `json:"message"`
	TotalBooks int    `json:"total_books"`
	Books      []Book `json:"books"`
}

type bookResponse struct {
	Message string `json:"message"`
	Book    Book   `json:"book"`
}

type reviewsResponse struct {
	Message string            `json:"message"`
	ISBN    string            `json:"isbn"`
	Reviews map[string]Review `json:"reviews"`
}

func writeList(w http.ResponseWriter, books []Book) {
	if books == nil {
		books = []Book{}
	}
	httpx.JSON(w, http.StatusOK, listResponse{
		Message:    "Books retrieved successfully",
		TotalBooks: len(books),
		Books:      books,
	})
}

// List handles GET /
// @Summary List books
// @Description Return the whole catalog in catalog order
// @Tags books
// @Produce json
// @Success 200 {object} listResponse
// @Router / [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		httpx.InternalError(w, r, err)
		return
	}
	writeList(w, books)
}

// GetByISBN handles GET /isbn/{isbn}
// @Summary Get book by ISBN
// @Tags books
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} bookResponse
// @Failure 404 {object} httpx.MessageResponse
// @Router /isbn/{isbn} [get]
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.GetByISBN(r.Context(), r.PathValue("isbn"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONMessage(w, r, http.StatusNotFound, "Book not found")
			return
		}
		httpx.InternalError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, bookResponse{
		Message: "Book retrieved successfully",
		Book:    b,
	})
}

// ByAuthor handles GET /author/{author}
// @Summary Find books by author
// @Description Case-insensitive exact match on the author name
// @Tags books
// @Produce json
// @Param author path string true "Author name"
// @Success 200 {object} listResponse
// @Failure 404 {object} httpx.MessageResponse
// @Router /author/{author} [get]
func (h *HTTPHandler) ByAuthor(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ByAuthor(r.Context(), r.PathValue("author"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONMessage(w, r, http.StatusNotFound, "No books found for this author")
			return
		}
		httpx.InternalError(w, r, err)
		return
	}
	writeList(w, books)
}

// ByTitle handles GET /title/{title}
// @Summary Find books by title
// @Description Case-insensitive substring match on the title
// @Tags books
// @Produce json
// @Param title path string true "Title fragment"
// @Success 200 {object} listResponse
// @Failure 404 {object} httpx.MessageResponse
// @Router /title/{title} [get]
func (h *HTTPHandler) ByTitle(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ByTitle(r.Context(), r.PathValue("title"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONMessage(w, r, http.StatusNotFound, "No books found with this title")
			return
		}
		httpx.InternalError(w, r, err)
		return
	}
	writeList(w, books)
}

// Reviews handles GET /review/{isbn}
// @Summary Get book reviews
// @Description Reviews keyed by username; an unreviewed book returns an empty object
// @Tags reviews
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} reviewsResponse
// @Failure 404 {object} httpx.MessageResponse
// @Router /review/{isbn} [get]
func (h *HTTPHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")
	reviews, err := h.service.Reviews(r.Context(), isbn)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONMessage(w, r, http.StatusNotFound, "Book not found")
			return
		}
		httpx.InternalError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, reviewsResponse{
		Message: "Reviews retrieved successfully",
		ISBN:    isbn,
		Reviews: reviews,
	})
}
