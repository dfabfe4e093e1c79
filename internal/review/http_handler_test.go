package review

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookreview/internal/httpx"
)

func newRequest(method, target, isbn, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if isbn != "" {
		r.SetPathValue("isbn", isbn)
	}
	return r.WithContext(httpx.ContextWithUsername(r.Context(), "alice"))
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v))
}

func TestHTTPHandler_Upsert(t *testing.T) {
	tests := []struct {
		name           string
		isbn           string
		body           string
		expectedStatus int
		expectedMsg    string
	}{
		{"success", "111", `{"review":{"comment":"Great","rating":4}}`, http.StatusOK, "Review added/modified successfully"},
		{"unknown book", "999", `{"review":{}}`, http.StatusNotFound, "Book not found"},
		{"missing review", "111", `{}`, http.StatusBadRequest, "Review comment is required"},
		{"empty body", "111", ``, http.StatusBadRequest, "Review comment is required"},
		{"blank comment", "111", `{"review":{"comment":"  "}}`, http.StatusBadRequest, "Review comment is required"},
		{"rating out of range", "111", `{"review":{"comment":"ok","rating":7}}`, http.StatusBadRequest, "Rating must be between 1 and 5"},
		{"malformed json", "111", `{"review":`, http.StatusBadRequest, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			handler := NewHTTPHandler(svc)

			w := httptest.NewRecorder()
			handler.Upsert(w, newRequest(http.MethodPut, "/customer/auth/review/"+tt.isbn, tt.isbn, tt.body))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body map[string]any
			decode(t, w, &body)
			assert.Equal(t, tt.expectedMsg, body["message"])
		})
	}
}

func TestHTTPHandler_UpsertReturnsStoredReview(t *testing.T) {
	svc, _ := newTestService(t)
	handler := NewHTTPHandler(svc)

	w := httptest.NewRecorder()
	handler.Upsert(w, newRequest(http.MethodPut, "/customer/auth/review/111", "111", `{"review":{"comment":"Great"}}`))
	require.Equal(t, http.StatusOK, w.Code)

	var resp upsertResponse
	decode(t, w, &resp)
	assert.Equal(t, "alice", resp.Review.User)
	assert.Equal(t, 5, resp.Review.Rating)
	assert.Equal(t, "2024-03-09", resp.Review.Date)
}

func TestHTTPHandler_ListMine(t *testing.T) {
	svc, _ := newTestService(t)
	handler := NewHTTPHandler(svc)

	w := httptest.NewRecorder()
	handler.ListMine(w, newRequest(http.MethodGet, "/customer/reviews", "", ""))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	_, err := svc.Upsert(t.Context(), "222", "alice", "Classic", 5)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	handler.ListMine(w, newRequest(http.MethodGet, "/customer/reviews", "", ""))
	assert.JSONEq(t, `[{
		"_id": "222-alice",
		"book": {"_id": "222", "title": "Things Fall Apart", "author": "Chinua Achebe"},
		"rating": 5,
		"comment": "Classic",
		"createdAt": "2024-03-09"
	}]`, w.Body.String())
}

func TestHTTPHandler_Delete(t *testing.T) {
	svc, _ := newTestService(t)
	handler := NewHTTPHandler(svc)

	tests := []struct {
		name           string
		isbn           string
		setup          func()
		expectedStatus int
		expectedMsg    string
	}{
		{"unknown book", "999", nil, http.StatusNotFound, "Book not found"},
		{"no review", "111", nil, http.StatusNotFound, "Review not found"},
		{
			"success", "111",
			func() {
				_, err := svc.Upsert(t.Context(), "111", "alice", "x", 0)
				require.NoError(t, err)
			},
			http.StatusOK, "Review deleted successfully",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}
			w := httptest.NewRecorder()
			handler.Delete(w, newRequest(http.MethodDelete, "/customer/auth/review/"+tt.isbn, tt.isbn, ""))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body map[string]any
			decode(t, w, &body)
			assert.Equal(t, tt.expectedMsg, body["message"])
		})
	}
}
