package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Entry is one leaderboard row.
type Entry struct {
	User  string `json:"user"`
	Score int64  `json:"score"`
}

// Update is a live score change pushed over the WebSocket stream.
type Update struct {
	User  string `json:"user"`
	Score int64  `json:"score"`
}

// Health describes the /ready response.
type Health struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// APIError is a non-2xx response from the service, decoded from its
// error envelope when one is present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// ErrEmptyUser is returned when the user id is empty.
var ErrEmptyUser = errors.New("user id is required")

func errorFromResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	}
	return apiErr
}
