// Package quip fetches short humorous lines from an external HTTP API.
package quip

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"groupchat/errors"
)

const userAgent = "groupchat (chat room server)"

// Client asks a dad-joke style endpoint for one quip per call. The
// endpoint must answer application/json with a {"joke": "..."} body,
// the contract icanhazdadjoke.com exposes.
type Client struct {
	http    *http.Client
	baseURL string
	log     *slog.Logger
}

func NewClient(log *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		log:     log,
	}
}

// Quip performs one fetch. Every failure mode (network, status, body)
// maps to ErrQuipUnavailable so callers have a single recoverable
// error to react to.
func (c *Client) Quip(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrQuipUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrQuipUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", errors.ErrQuipUnavailable, resp.StatusCode)
	}

	var payload struct {
		Joke string `json:"joke"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrQuipUnavailable, err)
	}
	if payload.Joke == "" {
		return "", fmt.Errorf("%w: empty joke in response", errors.ErrQuipUnavailable)
	}

	c.log.Debug("quip fetched", "length", len(payload.Joke))
	return payload.Joke, nil
}
