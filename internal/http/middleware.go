package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"chainserver/internal/contextutil"
)

// RequestLogger assigns each request an identifier, attaches a request-scoped
// logger to the context and logs the request on completion.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		logger := slog.Default().With(
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		ctx := contextutil.WithRequestID(r.Context(), requestID)
		ctx = contextutil.WithLogger(ctx, logger)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		logger.Info("request completed", "duration_ms", time.Since(start).Milliseconds())
	})
}
