package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubVerifier struct {
	username string
	err      error
	calls    int
}

func (s *stubVerifier) Verify(token string) (string, error) {
	s.calls++
	return s.username, s.err
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		verifier       *stubVerifier
		expectedStatus int
		expectedCalls  int
	}{
		{
			name:           "missing header",
			header:         "",
			verifier:       &stubVerifier{username: "alice"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			header:         "Basic abc",
			verifier:       &stubVerifier{username: "alice"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "bearer without token",
			header:         "Bearer ",
			verifier:       &stubVerifier{username: "alice"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			header:         "Bearer bad",
			verifier:       &stubVerifier{err: errors.New("bad token")},
			expectedStatus: http.StatusForbidden,
			expectedCalls:  1,
		},
		{
			name:           "valid token",
			header:         "Bearer good",
			verifier:       &stubVerifier{username: "alice"},
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser string
			handler := AuthMiddleware(tt.verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser = UsernameFrom(r)
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/customer/reviews", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCalls, tt.verifier.calls)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "alice", gotUser)
			} else {
				assert.Empty(t, gotUser)
				assert.Contains(t, w.Body.String(), "message")
			}
		})
	}
}
