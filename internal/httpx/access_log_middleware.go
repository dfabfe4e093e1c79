package httpx

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	bytesWritten  int64
	headerWritten bool
}

// wrapResponseWriter reuses an existing recorder so nested middleware share one status.
func wrapResponseWriter(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.headerWritten {
		rw.statusCode = code
		rw.headerWritten = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += int64(n)
	return n, err
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func (rw *responseWriter) wroteHeader() bool {
	return rw.headerWritten
}

// StatusCode returns the status written so far through w, or 200 if w was not wrapped.
func StatusCode(w http.ResponseWriter) int {
	if rw, ok := w.(*responseWriter); ok {
		return rw.statusCode
	}
	return http.StatusOK
}

// AccessLogMiddleware attaches a request-scoped logger to the context and writes one
// line per request once the handler returns.
func AccessLogMiddleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := wrapResponseWriter(w)
			info := &accessInfo{}

			reqLogger := logger.With().Str("request_id", RequestIDFrom(r)).Logger()
			ctx := reqLogger.WithContext(contextWithAccessInfo(r.Context(), info))

			next.ServeHTTP(rw, r.WithContext(ctx))

			event := reqLogger.Info()
			if rw.statusCode >= http.StatusInternalServerError {
				event = reqLogger.Error()
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.statusCode).
				Int64("bytes", rw.bytesWritten).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Str("username", info.username).
				Msg("access")
		})
	}
}
