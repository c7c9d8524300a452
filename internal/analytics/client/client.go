// Package client reads buyer app counts from the mall service over HTTP.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/omnipos-mall-service/internal/auth"
	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/response"
)

const countsPath = "/api/analytics/distinct-bap-counts"

type Config struct {
	BaseURL    string
	MerchantID string
	Timeout    time.Duration
}

type Client struct {
	baseURL    string
	merchantID string
	http       *http.Client
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		merchantID: cfg.MerchantID,
		http:       &http.Client{Timeout: timeout},
	}
}

// StatusError is returned for non-2xx responses; Message carries the server's error envelope when present.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("analytics: unexpected status %d", e.Status)
	}
	return fmt.Sprintf("analytics: status %d: %s", e.Status, e.Message)
}

func (c *Client) DistinctBapCounts(ctx context.Context) (*model.DistinctBapCounts, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+countsPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.merchantID != "" {
		req.Header.Set(auth.MerchantHeader, c.merchantID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analytics: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("analytics: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env response.ErrorEnvelope
		_ = json.Unmarshal(body, &env)
		return nil, &StatusError{Status: resp.StatusCode, Message: env.Error.Message}
	}

	var counts model.DistinctBapCounts
	if err := json.Unmarshal(body, &counts); err != nil {
		return nil, fmt.Errorf("analytics: decode counts: %w", err)
	}
	return &counts, nil
}

var errNoSource = errors.New("analytics: no counts source")
