package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend mimics the slice of the Faction API the tasks exercise.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotEmpty(t, body["phone_number"])
		writeJSON(w, http.StatusOK, map[string]any{"access_token": "tok-123", "token_type": "bearer"})
	})
	mux.HandleFunc("GET /api/v1/questions/qotd", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"questions": []any{}})
	})
	mux.HandleFunc("GET /api/v1/questions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"questions": []any{}, "total": 0})
	})
	mux.HandleFunc("GET /api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Not authenticated"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": "u-1", "phone_number": "+919876543210"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLogin_InstallsToken(t *testing.T) {
	srv := fakeBackend(t)
	c := NewClient(srv.URL)

	require.NoError(t, Login(context.Background(), c))
	assert.Equal(t, "tok-123", c.token)
}

func TestLogin_MissingAccessTokenIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 but without the token field the contract requires.
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}))
	defer srv.Close()

	err := Login(context.Background(), NewClient(srv.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_token")
}

func TestTasks_ProfileFailsWithoutAuth(t *testing.T) {
	srv := fakeBackend(t)
	c := NewClient(srv.URL) // no token installed

	rng := rand.New(rand.NewSource(1))
	var profile *Task
	for _, task := range Tasks(rng) {
		if task.Name == "GET /api/v1/users/me" {
			profile = &task
			break
		}
	}
	require.NotNil(t, profile)

	err := profile.Run(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 200, got 401")
}

func TestTasks_QuestionsSucceedUnclassified(t *testing.T) {
	srv := fakeBackend(t)
	c := NewClient(srv.URL)
	rng := rand.New(rand.NewSource(1))

	for _, task := range Tasks(rng) {
		if task.Name == "GET /api/v1/users/me" {
			continue
		}
		assert.NoError(t, task.Run(context.Background(), c), task.Name)
	}
}

func TestPickTask_RespectsWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tasks := []Task{
		{Name: "heavy", Weight: 9},
		{Name: "light", Weight: 1},
	}

	counts := map[string]int{}
	for i := 0; i < 10000; i++ {
		counts[pickTask(rng, tasks).Name]++
	}
	assert.Greater(t, counts["heavy"], 8000)
	assert.Greater(t, counts["light"], 500)
}

func TestRunner_FailuresAreRecordedNotFatal(t *testing.T) {
	// Backend that always errors; the run must still complete.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": "boom"})
	}))
	defer srv.Close()

	cfg := Config{
		Host:      srv.URL,
		Users:     3,
		SpawnRate: 100,
		WaitMin:   Duration(time.Millisecond),
		WaitMax:   Duration(2 * time.Millisecond),
		RunTime:   Duration(200 * time.Millisecond),
	}
	r := NewRunner(cfg, discardLogger())

	require.NoError(t, r.Run(context.Background()))

	requests, failures := r.Stats().Totals()
	assert.Greater(t, requests, 0)
	assert.Equal(t, requests, failures)
}

func TestRunner_HealthyBackend(t *testing.T) {
	srv := fakeBackend(t)
	cfg := Config{
		Host:      srv.URL,
		Users:     5,
		SpawnRate: 100,
		WaitMin:   Duration(time.Millisecond),
		WaitMax:   Duration(2 * time.Millisecond),
		RunTime:   Duration(300 * time.Millisecond),
	}
	r := NewRunner(cfg, discardLogger())

	require.NoError(t, r.Run(context.Background()))

	requests, failures := r.Stats().Totals()
	assert.Greater(t, requests, 0)
	assert.Zero(t, failures)
}

func TestStats_PrintBeforeClockAdvances(t *testing.T) {
	s := NewStats()
	s.Record("GET /api/v1/questions", 5*time.Millisecond, nil)
	// Pin the start into the future so elapsed is not yet positive, the worst
	// case of printing the summary the instant the run is interrupted.
	s.started = time.Now().Add(time.Minute)

	var buf bytes.Buffer
	s.Print(&buf)
	out := buf.String()
	assert.Contains(t, out, "GET /api/v1/questions")
	assert.NotContains(t, out, "Inf")
	assert.NotContains(t, out, "NaN")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loadgen.yaml")
	content := `
host: http://staging:8000
users: 500
spawn_rate: 50
wait_min: 2s
wait_max: 5s
run_time: 10m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://staging:8000", cfg.Host)
	assert.Equal(t, 500, cfg.Users)
	assert.Equal(t, 50.0, cfg.SpawnRate)
	assert.Equal(t, 2*time.Second, time.Duration(cfg.WaitMin))
	assert.Equal(t, 10*time.Minute, time.Duration(cfg.RunTime))
}

func TestLoadConfig_RejectsInvertedWaits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loadgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: x\nusers: 1\nspawn_rate: 1\nwait_min: 5s\nwait_max: 1s\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wait_max")
}
