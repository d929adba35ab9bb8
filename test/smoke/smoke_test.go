// Package smoke holds post-deploy checks against a running Faction backend.
//
// Set FACTION_BASE_URL to enable the suite; every test skips otherwise. The
// checks are deliberately shallow: they confirm the API answers and that
// protected endpoints demand credentials, nothing more.
package smoke

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseURL(t *testing.T) string {
	t.Helper()
	u := os.Getenv("FACTION_BASE_URL")
	if u == "" {
		t.Skip("FACTION_BASE_URL not set")
	}
	return u
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestQuestionsList_RequiresAuth(t *testing.T) {
	resp := get(t, baseURL(t)+"/api/v1/questions/")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestQuestionByID_RequiresAuth(t *testing.T) {
	// A random UUID: auth must be checked before existence, so the answer is
	// 401 rather than 404.
	url := fmt.Sprintf("%s/api/v1/questions/%s", baseURL(t), uuid.NewString())
	resp := get(t, url)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestQuestionOfTheDay_RequiresAuth(t *testing.T) {
	resp := get(t, baseURL(t)+"/api/v1/questions/qotd")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
