package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAdminGate_AllowsAdminPathWithoutCredentials(t *testing.T) {
	// Captures the known gap: the role check for /admin paths is not
	// implemented, so even an unauthenticated request passes. This is the
	// current behavior, not the desired one.
	g := NewAdminGate(testLogger())

	r := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	assert.True(t, g.Dispatch(r))
}

func TestAdminGate_AllowsNonAdminPath(t *testing.T) {
	g := NewAdminGate(testLogger())

	r := httptest.NewRequest(http.MethodGet, "/api/v1/questions", nil)
	assert.True(t, g.Dispatch(r))
}

func TestAdminGate_HandlerPassesThrough(t *testing.T) {
	g := NewAdminGate(testLogger())

	var called bool
	h := g.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/settings", nil))

	require.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTiming_ServesAndLogs(t *testing.T) {
	h := Timing(testLogger(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
