package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultPyPIBaseURL = "https://pypi.org"

// PyPIClient queries the PyPI JSON API.
type PyPIClient struct {
	baseURL    string
	httpClient *http.Client
}

// PyPIOption configures a PyPIClient.
type PyPIOption func(*PyPIClient)

// WithPyPIBaseURL sets a custom API base URL (for testing).
func WithPyPIBaseURL(raw string) PyPIOption {
	return func(c *PyPIClient) {
		c.baseURL = raw
	}
}

// WithPyPIHTTPClient sets a custom HTTP client.
func WithPyPIHTTPClient(hc *http.Client) PyPIOption {
	return func(c *PyPIClient) {
		c.httpClient = hc
	}
}

// NewPyPIClient creates a client against pypi.org.
func NewPyPIClient(opts ...PyPIOption) *PyPIClient {
	c := &PyPIClient{
		baseURL: defaultPyPIBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return c
}

// ProjectInfo is the subset of PyPI project metadata the kit reads.
type ProjectInfo struct {
	Info struct {
		Name     string `json:"name"`
		Version  string `json:"version"`
		Summary  string `json:"summary"`
		Homepage string `json:"home_page"`
	} `json:"info"`
}

// Project fetches project metadata from <base>/pypi/<name>/json.
func (c *PyPIClient) Project(ctx context.Context, name string) (*ProjectInfo, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	endpoint := base.JoinPath("pypi", name, "json").String()

	var info ProjectInfo
	if err := fetchJSON(ctx, c.httpClient, endpoint, &info); err != nil {
		if errors.Is(err, errStatusNotFound) {
			return nil, &NotFoundError{Kind: "project", Name: name}
		}
		return nil, fmt.Errorf("failed to fetch project %s: %w", name, err)
	}
	return &info, nil
}
