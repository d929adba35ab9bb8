package loadtest

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// Login authenticates a virtual user and installs the returned bearer token.
// Each user logs in with a synthetic phone number derived from a fresh uuid
// so concurrent users never collide. A 200 without an access_token field is
// a failure: the payload shape matters, not just the status.
func Login(ctx context.Context, c *Client) error {
	phone := syntheticPhone()
	resp, err := c.PostJSON(ctx, "/api/v1/auth/login", map[string]any{
		"phone_number": phone,
	})
	if err != nil {
		return err
	}
	if resp.Status != http.StatusOK {
		return classifyError(http.StatusOK, resp.Status)
	}
	token, ok := resp.Field("access_token").(string)
	if !ok || token == "" {
		return fmt.Errorf("login response missing access_token")
	}
	c.SetToken(token)
	return nil
}

// syntheticPhone builds a deterministic-format Indian mobile number from a
// random uuid's bits.
func syntheticPhone() string {
	id := uuid.New()
	n := int64(id.ID()) % 1000000000
	return fmt.Sprintf("+919%09d", n)
}

// Tasks returns the weighted task set, mirroring what real clients hit most.
func Tasks(rng *rand.Rand) []Task {
	return []Task{
		{
			Name:   "GET /api/v1/questions/qotd",
			Weight: 5,
			Run: func(ctx context.Context, c *Client) error {
				resp, err := c.Get(ctx, "/api/v1/questions/qotd", nil)
				if err != nil {
					return err
				}
				if resp.Status != http.StatusOK {
					return classifyError(http.StatusOK, resp.Status)
				}
				if !resp.HasField("questions") {
					return fmt.Errorf("invalid response format")
				}
				return nil
			},
		},
		{
			Name:   "GET /api/v1/questions",
			Weight: 2,
			Run: func(ctx context.Context, c *Client) error {
				params := url.Values{}
				params.Set("skip", strconv.Itoa(rng.Intn(100)))
				params.Set("limit", strconv.Itoa([]int{10, 20, 50, 100}[rng.Intn(4)]))
				if rng.Float64() < 0.3 {
					params.Set("difficulty", strconv.Itoa(1+rng.Intn(5)))
				}
				resp, err := c.Get(ctx, "/api/v1/questions", params)
				if err != nil {
					return err
				}
				if resp.Status != http.StatusOK {
					return classifyError(http.StatusOK, resp.Status)
				}
				if !resp.HasField("questions") && !resp.HasField("total") {
					return fmt.Errorf("invalid response format")
				}
				return nil
			},
		},
		{
			Name:   "GET /api/v1/users/me",
			Weight: 3,
			Run: func(ctx context.Context, c *Client) error {
				resp, err := c.Get(ctx, "/api/v1/users/me", nil)
				if err != nil {
					return err
				}
				if resp.Status != http.StatusOK {
					return classifyError(http.StatusOK, resp.Status)
				}
				if !resp.HasField("id") && !resp.HasField("phone_number") {
					return fmt.Errorf("profile response missing id and phone_number")
				}
				return nil
			},
		},
	}
}
