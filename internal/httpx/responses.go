package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// MessageResponse is the body of every error and of plain acknowledgements.
type MessageResponse struct {
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONMessage writes a {"message": ...} body, tagged with the request ID when one is set.
func JSONMessage(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	JSONError(w, r, statusCode, message, nil)
}

func JSONError(w http.ResponseWriter, r *http.Request, statusCode int, message string, details []ErrorDetail) {
	JSON(w, statusCode, MessageResponse{
		Message:   message,
		Details:   details,
		RequestID: RequestIDFrom(r),
	})
}

// InternalError logs err on the request logger and writes a generic 500.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	JSONMessage(w, r, http.StatusInternalServerError, "Internal server error")
}
