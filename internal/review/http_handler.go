package review

import (
	"errors"
	"net/http"

	"bookreview/internal/book"
	"bookreview/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type upsertReq struct {
	Review *reviewBody `json:"review" validate:"required"`
}

type reviewBody struct {
	Comment string `json:"comment" validate:"notblank"`
	Rating  int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

type upsertResponse struct {
	Message string      `json:"message"`
	Review  book.Review `json:"review"`
}

// ListMine handles GET /customer/reviews
// @Summary List my reviews
// @Tags reviews
// @Produce json
// @Security Bearer
// @Success 200 {array} Entry
// @Failure 401 {object} httpx.MessageResponse
// @Router /customer/reviews [get]
func (h *HTTPHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListByUser(r.Context(), httpx.UsernameFrom(r))
	if err != nil {
		httpx.InternalError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entries)
}

// Upsert handles PUT /customer/auth/review/{isbn}
// @Summary Add or modify my review
// @Tags reviews
// @Accept json
// @Produce json
// @Security Bearer
// @Param isbn path string true "Book ISBN"
// @Param request body upsertReq true "Review"
// @Success 200 {object} upsertResponse
// @Failure 400 {object} httpx.MessageResponse
// @Failure 404 {object} httpx.MessageResponse
// @Router /customer/auth/review/{isbn} [put]
func (h *HTTPHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")

	// An unknown book is reported before anything about the body.
	if _, err := h.service.Book(r.Context(), isbn); err != nil {
		h.writeError(w, r, err)
		return
	}

	var req upsertReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteDecodeError(w, r, err)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, validationMessage(details), details)
		return
	}

	rv, err := h.service.Upsert(r.Context(), isbn, httpx.UsernameFrom(r), req.Review.Comment, req.Review.Rating)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, upsertResponse{
		Message: "Review added/modified successfully",
		Review:  rv,
	})
}

// Delete handles DELETE /customer/auth/review/{isbn}
// @Summary Delete my review
// @Tags reviews
// @Produce json
// @Security Bearer
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} httpx.MessageResponse
// @Failure 404 {object} httpx.MessageResponse
// @Router /customer/auth/review/{isbn} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("isbn"), httpx.UsernameFrom(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONMessage(w, r, http.StatusOK, "Review deleted successfully")
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, book.ErrNotFound):
		httpx.JSONMessage(w, r, http.StatusNotFound, "Book not found")
	case errors.Is(err, book.ErrReviewNotFound):
		httpx.JSONMessage(w, r, http.StatusNotFound, "Review not found")
	case errors.Is(err, ErrMissingComment):
		httpx.JSONMessage(w, r, http.StatusBadRequest, "Review comment is required")
	case errors.Is(err, ErrInvalidRating):
		httpx.JSONMessage(w, r, http.StatusBadRequest, "Rating must be between 1 and 5")
	default:
		httpx.InternalError(w, r, err)
	}
}

func validationMessage(details []httpx.ErrorDetail) string {
	for _, d := range details {
		if d.Field == "review" || d.Field == "review.comment" {
			return "Review comment is required"
		}
	}
	return "Rating must be between 1 and 5"
}
