// Package client is the HTTP client for the SlowDown backend. It satisfies
// tracking.Backend, so a device-side tracker can push merged usage with it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"SlowDown/services"
	"SlowDown/usagestats"

	"github.com/rs/zerolog"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

// New builds a client for the given server. token is the session token from
// POST /auth/google.
func New(baseURL, token string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
		log:     log.With().Str("component", "api_client").Logger(),
	}
}

// SetToken swaps the session token after a re-login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// SyncUsage pushes a cumulative reading for one day. The server merges it
// monotonically, so re-sending an old reading is harmless.
func (c *Client) SyncUsage(ctx context.Context, dateKey string, reading usagestats.Reading) error {
	payload := map[string]interface{}{
		"date":         dateKey,
		"totalMinutes": reading.TotalMinutes,
		"appUsage":     reading.AppUsage,
	}
	return c.post(ctx, "/api/usage/sync", payload, nil)
}

// AddUsage pushes a measured delta for one app. The server adds it, so the
// same delta must never be sent twice.
func (c *Client) AddUsage(ctx context.Context, appLabel string, minutes float64) error {
	payload := map[string]interface{}{
		"appName": appLabel,
		"minutes": minutes,
	}
	return c.post(ctx, "/api/usage/add", payload, nil)
}

// Today fetches the server's view of the current day.
func (c *Client) Today(ctx context.Context) (services.DaySummary, error) {
	var response struct {
		Usage services.DaySummary `json:"usage"`
	}
	if err := c.get(ctx, "/api/usage/today", &response); err != nil {
		return services.DaySummary{}, err
	}
	return response.Usage, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		c.log.Debug().Int("status", resp.StatusCode).Str("path", req.URL.Path).Msg("request failed")
		var failure struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil && failure.Error != "" {
			return fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, failure.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
