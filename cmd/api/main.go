package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"bookreview/internal/auth"
	"bookreview/internal/book"
	"bookreview/internal/config"
	"bookreview/internal/logger"
	"bookreview/internal/metrics"
	"bookreview/internal/platform/crypto"
	"bookreview/internal/review"
	"bookreview/internal/server"
	"bookreview/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logg := logger.New(os.Stdout, cfg.LogDebug, cfg.ConsoleLogs())

	if cfg.GeneratedSecret {
		logg.Warn().Msg("JWT_SECRET is not set; using a random secret, tokens will not survive a restart")
	}

	handler, err := newHandler(cfg, logg)
	if err != nil {
		logg.Fatal().Err(err).Msg("cannot build router")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg, handler); err != nil {
		logg.Fatal().Err(err).Msg("server stopped")
	}
	logg.Info().Msg("server stopped")
}

// newHandler builds the stores, services and router from cfg.
func newHandler(cfg *config.Config, logg zerolog.Logger) (http.Handler, error) {
	seed, err := loadCatalog(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	books, err := book.NewMemoryRepo(seed)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	logg.Info().Int("books", len(seed)).Msg("catalog loaded")

	tokens := crypto.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	users := user.NewService(user.NewMemoryRepo())

	return server.NewRouter(server.Deps{
		Logger:         logg,
		Tokens:         tokens,
		Metrics:        metrics.New(),
		Books:          book.NewHTTPHandler(book.NewService(books)),
		Reviews:        review.NewHTTPHandler(review.NewService(books)),
		Auth:           auth.NewHTTPHandler(auth.NewService(users, tokens)),
		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		EnableHSTS:     cfg.EnableHSTS,
	}), nil
}

func loadCatalog(path string) ([]book.Book, error) {
	if path == "" {
		return book.DefaultSeed()
	}
	return book.LoadSeedFile(path)
}

// run serves until ctx is cancelled, then drains in-flight requests for at most
// cfg.ShutdownTimeout.
func run(ctx context.Context, cfg *config.Config, logg zerolog.Logger, handler http.Handler) error {
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	group, gCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logg.Info().Str("addr", cfg.Addr).Msg("starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-gCtx.Done()
		logg.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
