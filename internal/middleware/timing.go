package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// Timing logs the total time taken for each request.
func Timing(logger *slog.Logger, next http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed", time.Since(start))
	})
}
