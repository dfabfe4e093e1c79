package httpx

import (
	"net/http"
	"strings"
)

// TokenVerifier resolves a bearer token to the username it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware rejects requests without a usable bearer token (401) or with one
// that fails verification (403). Accepted requests carry the username in their context.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				JSONMessage(w, r, http.StatusUnauthorized, "Authentication token required")
				return
			}

			username, err := verifier.Verify(token)
			if err != nil {
				JSONMessage(w, r, http.StatusForbidden, "Invalid or expired token")
				return
			}

			recordUsername(r, username)
			ctx := ContextWithUsername(r.Context(), username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
