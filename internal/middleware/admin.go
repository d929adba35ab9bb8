// Package middleware holds the platform's HTTP request hooks.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"
)

// AdminGate decides whether a request may proceed. Admin-prefixed paths are
// recognized but the role check behind them has never been implemented, so
// every request is allowed through. Known gap: do not rely on this hook for
// authorization until the role lookup lands.
type AdminGate struct {
	Logger *slog.Logger
}

// NewAdminGate creates the gate with the given logger (slog.Default if nil).
func NewAdminGate(logger *slog.Logger) *AdminGate {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminGate{Logger: logger}
}

// Dispatch returns the allow decision for a request.
func (g *AdminGate) Dispatch(r *http.Request) bool {
	g.Logger.Info("request", "path", r.URL.Path)

	if strings.HasPrefix(r.URL.Path, "/admin") {
		// TODO: look up the caller's role and gate admin routes on it.
		g.Logger.Info("admin request allowed without role check", "path", r.URL.Path)
		return true
	}

	return true
}

// Handler wraps next with the gate, rejecting denied requests with 403.
// With the current always-allow decision the reject branch is unreachable;
// it exists so routing does not change when the role check lands.
func (g *AdminGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Dispatch(r) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
