// Package backend talks to the school platform API for operational status
// and per-school configuration.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/core/ports"
	"github.com/edusaas/portal-gate/pkg/telemetry"
)

const (
	// SlugHeader scopes a configuration request to one school.
	SlugHeader = "X-Portal-Slug"

	statusPath = "/public/status"
	configPath = "/schools/config"

	maxBodyBytes = 1 << 20
)

// ErrUnexpectedStatus is returned for any non-2xx backend response.
var ErrUnexpectedStatus = errors.New("unexpected backend response")

// Client implements ports.StatusSource and ports.TenantConfigSource.
type Client struct {
	baseURL string
	http    *http.Client
}

var (
	_ ports.StatusSource       = (*Client)(nil)
	_ ports.TenantConfigSource = (*Client)(nil)
)

// NewClient returns a client for baseURL whose requests carry trace context.
// A zero timeout leaves requests bounded only by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    telemetry.InstrumentClient(&http.Client{Timeout: timeout}),
	}
}

// FetchStatus reads the operational status. Fields missing from the
// response keep their documented defaults.
func (c *Client) FetchStatus(ctx context.Context) (domain.OperationalStatus, error) {
	status := domain.DefaultOperationalStatus()
	if err := c.getJSON(ctx, statusPath, nil, &status); err != nil {
		return domain.DefaultOperationalStatus(), err
	}
	return status, nil
}

// FetchTenantConfig reads the configuration of the school behind slug.
func (c *Client) FetchTenantConfig(ctx context.Context, slug string) (domain.TenantConfig, error) {
	var cfg domain.TenantConfig
	if err := c.getJSON(ctx, configPath, http.Header{SlugHeader: {slug}}, &cfg); err != nil {
		return domain.TenantConfig{}, err
	}
	return cfg, nil
}

func (c *Client) getJSON(ctx context.Context, path string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return fmt.Errorf("%w: GET %s: %d", ErrUnexpectedStatus, path, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
