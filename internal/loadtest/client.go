package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client issues requests against one backend host on behalf of a single
// virtual user. It carries the user's bearer token once login succeeds.
type Client struct {
	base  string
	http  *http.Client
	token string
}

// NewClient creates a client for the given base URL.
func NewClient(host string) *Client {
	return &Client{
		base: host,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) { c.token = token }

// Response is a decoded API response. Body is nil when the payload was not a
// JSON object.
type Response struct {
	Status int
	Body   map[string]any
}

// Field returns the named top-level field, or nil.
func (r *Response) Field(name string) any {
	if r.Body == nil {
		return nil
	}
	return r.Body[name]
}

// HasField reports whether the payload carries the named top-level field.
func (r *Response) HasField(name string) bool {
	return r.Field(name) != nil
}

// Get issues a GET with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (*Response, error) {
	u := c.base + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	return c.do(req)
}

// PostJSON issues a POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, body any) (*Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Response, error) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	out := &Response{Status: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return out, nil
	}
	var body map[string]any
	if json.Unmarshal(data, &body) == nil {
		out.Body = body
	}
	return out, nil
}
