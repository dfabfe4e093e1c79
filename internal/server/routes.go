// Package server assembles the HTTP router and its middleware stack.
package server

import (
	"net/http"

	"github.com/rs/zerolog"

	"bookreview/internal/auth"
	"bookreview/internal/book"
	"bookreview/internal/httpx"
	"bookreview/internal/metrics"
	"bookreview/internal/review"
)

type Deps struct {
	Logger  zerolog.Logger
	Tokens  httpx.TokenVerifier
	Metrics *metrics.Metrics

	Books   *book.HTTPHandler
	Reviews *review.HTTPHandler
	Auth    *auth.HTTPHandler

	AllowedOrigins []string
	MaxBodyBytes   int64
	EnableHSTS     bool
}

// NewRouter registers the public catalog and auth routes and the protected
// /customer routes. Every /customer path requires a bearer token, including
// paths that match no handler.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", d.Metrics.Handler())

	mux.HandleFunc("POST /register", d.Auth.Register)
	mux.HandleFunc("POST /login", d.Auth.Login)

	mux.HandleFunc("GET /{$}", d.Books.List)
	mux.HandleFunc("GET /isbn/{isbn}", d.Books.GetByISBN)
	mux.HandleFunc("GET /author/{author}", d.Books.ByAuthor)
	mux.HandleFunc("GET /title/{title}", d.Books.ByTitle)
	mux.HandleFunc("GET /review/{isbn}", d.Books.Reviews)

	protected := httpx.AuthMiddleware(d.Tokens)
	mux.Handle("POST /customer/logout", protected(http.HandlerFunc(d.Auth.Logout)))
	mux.Handle("PUT /customer/profile", protected(http.HandlerFunc(d.Auth.UpdateProfile)))
	mux.Handle("GET /customer/reviews", protected(http.HandlerFunc(d.Reviews.ListMine)))
	mux.Handle("PUT /customer/auth/review/{isbn}", protected(http.HandlerFunc(d.Reviews.Upsert)))
	mux.Handle("DELETE /customer/auth/review/{isbn}", protected(http.HandlerFunc(d.Reviews.Delete)))
	mux.Handle("/customer/", protected(http.HandlerFunc(notFound)))

	mux.HandleFunc("/", notFound)

	return httpx.Chain(mux,
		httpx.RequestIDMiddleware,
		httpx.RecoveryMiddleware(d.Logger),
		httpx.AccessLogMiddleware(d.Logger),
		httpx.SecurityHeadersMiddleware(d.EnableHSTS),
		httpx.CORSMiddleware(d.AllowedOrigins),
		httpx.RequestSizeLimitMiddleware(d.MaxBodyBytes),
		d.Metrics.Middleware,
	)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	httpx.JSONMessage(w, r, http.StatusNotFound, "Not found")
}
