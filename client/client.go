// Package client provides a typed Go client for the banana counter
// HTTP and WebSocket API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Option configures the Client.
type Option func(*Client)

// Client provides typed access to the score API.
type Client struct {
	baseURL    string
	wsURL      string
	httpClient *http.Client
	headers    http.Header
}

// New constructs a client targeting the given baseURL (e.g., http://localhost:8080).
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("baseURL is required")
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	c := &Client{
		baseURL:    baseURL,
		wsURL:      deriveWSURL(baseURL),
		httpClient: http.DefaultClient,
		headers:    make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithHeader sets an arbitrary header applied to HTTP and WS calls.
func WithHeader(k, v string) Option {
	return func(c *Client) {
		if k != "" {
			c.headers.Set(k, v)
		}
	}
}

type scoreResponse struct {
	Score int64 `json:"score"`
}

// Score fetches the current score for a user. Unknown users score zero.
func (c *Client) Score(ctx context.Context, user string) (int64, error) {
	if strings.TrimSpace(user) == "" {
		return 0, ErrEmptyUser
	}
	u, err := url.Parse(c.baseURL + "/score")
	if err != nil {
		return 0, err
	}
	q := u.Query()
	q.Set("userId", user)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, err
	}

	var body scoreResponse
	if err := c.do(req, &body); err != nil {
		return 0, err
	}
	return body.Score, nil
}

// Increment adds one to the user's score and returns the new total.
func (c *Client) Increment(ctx context.Context, user string) (int64, error) {
	if strings.TrimSpace(user) == "" {
		return 0, ErrEmptyUser
	}
	payload, err := json.Marshal(map[string]string{"userId": user})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/score", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	var body scoreResponse
	if err := c.do(req, &body); err != nil {
		return 0, err
	}
	return body.Score, nil
}

// Leaderboard fetches up to limit entries ordered by score, highest first.
// A limit of zero or less leaves the server default in effect.
func (c *Client) Leaderboard(ctx context.Context, limit int) ([]Entry, error) {
	u, err := url.Parse(c.baseURL + "/leaderboard")
	if err != nil {
		return nil, err
	}
	if limit > 0 {
		q := u.Query()
		q.Set("limit", strconv.Itoa(limit))
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Leaderboard []Entry `json:"leaderboard"`
	}
	if err := c.do(req, &body); err != nil {
		return nil, err
	}
	return body.Leaderboard, nil
}

// Health probes /ready and reports whether the service can reach its store.
func (c *Client) Health(ctx context.Context) (Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ready", nil)
	if err != nil {
		return Health{}, err
	}

	var hs Health
	if err := c.do(req, &hs); err != nil {
		return Health{}, err
	}
	return hs, nil
}

// SubscribeUpdates connects to the WebSocket stream and emits score updates.
// The returned channel closes when ctx is done or the connection drops.
func (c *Client) SubscribeUpdates(ctx context.Context) (<-chan Update, error) {
	if c.wsURL == "" {
		return nil, errors.New("wsURL is not set; ensure baseURL is http/https")
	}
	dialer := websocket.Dialer{
		HandshakeTimeout: 5 * time.Second,
	}
	conn, _, err := dialer.DialContext(ctx, c.wsURL, c.headers)
	if err != nil {
		return nil, err
	}

	out := make(chan Update, 32)
	go func() {
		defer close(out)
		defer conn.Close()
		for {
			select {
			case <-ctx.Done():
				return
			default:
				var u Update
				if err := conn.ReadJSON(&u); err != nil {
					return
				}
				select {
				case out <- u:
				default:
					// drop if consumer is slow
				}
			}
		}
	}()
	return out, nil
}

func (c *Client) do(req *http.Request, target any) error {
	c.applyHeaders(req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return errorFromResponse(resp)
	}
	if target == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

func (c *Client) applyHeaders(r *http.Request) {
	for k, vals := range c.headers {
		for _, v := range vals {
			r.Header.Add(k, v)
		}
	}
}

func deriveWSURL(httpBase string) string {
	u, err := url.Parse(httpBase)
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		// leave as-is for custom schemes
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	return u.String()
}
