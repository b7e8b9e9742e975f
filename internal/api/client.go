// Package api is a client for a running citadel calculator server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pefman/citadel-calc/internal/game"
	"github.com/pefman/citadel-calc/internal/models"
)

var httpClient = &http.Client{Timeout: 8 * time.Second}

// Config holds API configuration
type Config struct {
	BaseURL  string
	CacheTTL time.Duration
}

type Client struct {
	config Config
	http   *http.Client

	// the citadel table changes only with the server's catalog
	cacheMu   sync.RWMutex
	citadels  []models.CitadelInfo
	cacheTime time.Time
}

func NewClient(baseURL string) *Client {
	return &Client{
		config: Config{BaseURL: baseURL, CacheTTL: 5 * time.Minute},
		http:   httpClient,
	}
}

// StatusError is a non-2xx reply; Body is the server's error document when it sent one.
type StatusError struct {
	Code int
	Body models.ErrorBody
}

func (e *StatusError) Error() string {
	if e.Body.Message != "" {
		return fmt.Sprintf("api status %d: %s", e.Code, e.Body.Message)
	}
	return fmt.Sprintf("api status %d", e.Code)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, accept ...int) error {
	base := strings.TrimRight(c.config.BaseURL, "/")
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	for _, code := range accept {
		ok = ok || resp.StatusCode == code
	}
	if !ok {
		se := &StatusError{Code: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(&se.Body)
		return se
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) apiGet(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) apiPost(ctx context.Context, path string, in, out any, accept ...int) error {
	return c.do(ctx, http.MethodPost, path, in, out, accept...)
}

func (c *Client) Health(ctx context.Context) error {
	var res map[string]string
	if err := c.apiGet(ctx, "/api/healthz", &res); err != nil {
		return err
	}
	if res["status"] != "ok" {
		return fmt.Errorf("server unhealthy: %v", res)
	}
	return nil
}

// Citadels lists the server's citadel levels, cached for CacheTTL.
func (c *Client) Citadels(ctx context.Context) ([]models.CitadelInfo, error) {
	c.cacheMu.RLock()
	if time.Since(c.cacheTime) < c.config.CacheTTL && len(c.citadels) > 0 {
		result := make([]models.CitadelInfo, len(c.citadels))
		copy(result, c.citadels)
		c.cacheMu.RUnlock()
		return result, nil
	}
	c.cacheMu.RUnlock()

	var res []models.CitadelInfo
	if err := c.apiGet(ctx, "/api/citadels", &res); err != nil {
		return nil, err
	}

	c.cacheMu.Lock()
	c.citadels = make([]models.CitadelInfo, len(res))
	copy(c.citadels, res)
	c.cacheTime = time.Now()
	c.cacheMu.Unlock()
	return res, nil
}

func (c *Client) Pools(ctx context.Context, mode string) (models.PoolsResponse, error) {
	var res models.PoolsResponse
	err := c.apiGet(ctx, "/api/pools?mode="+url.QueryEscape(mode), &res)
	return res, err
}

// Calculate posts a whole form and returns the server's report.
func (c *Client) Calculate(ctx context.Context, in game.Input) (models.CalculateResponse, error) {
	var res models.CalculateResponse
	err := c.apiPost(ctx, "/api/calculate", in, &res)
	return res, err
}

// Validate asks whether troop may be placed at slot. A rejected placement is
// not an error: it comes back with OK false and the server's warning.
func (c *Client) Validate(ctx context.Context, in game.Input, slot int, troop string) (models.ValidateResponse, error) {
	var res models.ValidateResponse
	req := models.ValidateRequest{Input: in, Slot: slot, Troop: troop}
	err := c.apiPost(ctx, "/api/validate", req, &res, http.StatusUnprocessableEntity)
	return res, err
}
