package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// maxResponseSize caps registry response bodies (1MB).
	maxResponseSize = 1 * 1024 * 1024

	defaultHomebrewBaseURL = "https://formulae.brew.sh"

	userAgent = "reconkit/1.0 (https://github.com/araultra/reconkit)"
)

var errStatusNotFound = errors.New("not found")

// HomebrewClient queries the Homebrew formula and cask JSON API.
type HomebrewClient struct {
	baseURL    string
	httpClient *http.Client
}

// HomebrewOption configures a HomebrewClient.
type HomebrewOption func(*HomebrewClient)

// WithHomebrewBaseURL sets a custom API base URL (for testing).
func WithHomebrewBaseURL(raw string) HomebrewOption {
	return func(c *HomebrewClient) {
		c.baseURL = raw
	}
}

// WithHomebrewHTTPClient sets a custom HTTP client.
func WithHomebrewHTTPClient(hc *http.Client) HomebrewOption {
	return func(c *HomebrewClient) {
		c.httpClient = hc
	}
}

// NewHomebrewClient creates a client against formulae.brew.sh.
func NewHomebrewClient(opts ...HomebrewOption) *HomebrewClient {
	c := &HomebrewClient{
		baseURL: defaultHomebrewBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return c
}

// FormulaInfo is the subset of formula metadata the kit reads.
type FormulaInfo struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"desc"`
	Homepage    string `json:"homepage"`
	Versions    struct {
		Stable string `json:"stable"`
		Bottle bool   `json:"bottle"`
	} `json:"versions"`
	Deprecated bool `json:"deprecated"`
	Disabled   bool `json:"disabled"`
}

// CaskInfo is the subset of cask metadata the kit reads.
type CaskInfo struct {
	Token      string   `json:"token"`
	FullToken  string   `json:"full_token"`
	Names      []string `json:"name"`
	Homepage   string   `json:"homepage"`
	Version    string   `json:"version"`
	Deprecated bool     `json:"deprecated"`
	Disabled   bool     `json:"disabled"`
}

// Formula fetches formula metadata. A disabled formula cannot be installed
// anymore, so it reports as not found.
func (c *HomebrewClient) Formula(ctx context.Context, name string) (*FormulaInfo, error) {
	endpoint, err := c.endpoint("api", "formula", name+".json")
	if err != nil {
		return nil, err
	}

	var info FormulaInfo
	if err := fetchJSON(ctx, c.httpClient, endpoint, &info); err != nil {
		if errors.Is(err, errStatusNotFound) {
			return nil, &NotFoundError{Kind: "formula", Name: name}
		}
		return nil, fmt.Errorf("failed to fetch formula %s: %w", name, err)
	}

	if info.Disabled {
		return nil, &NotFoundError{Kind: "formula", Name: name}
	}
	return &info, nil
}

// Cask fetches cask metadata.
func (c *HomebrewClient) Cask(ctx context.Context, token string) (*CaskInfo, error) {
	endpoint, err := c.endpoint("api", "cask", token+".json")
	if err != nil {
		return nil, err
	}

	var info CaskInfo
	if err := fetchJSON(ctx, c.httpClient, endpoint, &info); err != nil {
		if errors.Is(err, errStatusNotFound) {
			return nil, &NotFoundError{Kind: "cask", Name: token}
		}
		return nil, fmt.Errorf("failed to fetch cask %s: %w", token, err)
	}

	if info.Disabled {
		return nil, &NotFoundError{Kind: "cask", Name: token}
	}
	return &info, nil
}

func (c *HomebrewClient) endpoint(parts ...string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	return base.JoinPath(parts...).String(), nil
}

// fetchJSON issues a GET with the shared headers and decodes the body into
// out. A 404 surfaces as errStatusNotFound so callers can attach the entity
// kind.
func fetchJSON(ctx context.Context, client *http.Client, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errStatusNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	limited := io.LimitReader(resp.Body, maxResponseSize)
	if err := json.NewDecoder(limited).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
