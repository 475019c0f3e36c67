package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// GitHubClient wraps the go-github SDK for repository lookups.
type GitHubClient struct {
	gh *github.Client
}

// NewGitHubClient creates a GitHub API client. With an empty token the
// client is anonymous, which works for public repositories at a lower rate
// limit.
func NewGitHubClient(ctx context.Context, token string) *GitHubClient {
	if token == "" {
		return &GitHubClient{gh: github.NewClient(nil)}
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	return &GitHubClient{gh: github.NewClient(tc)}
}

// Token returns the GitHub token from the environment, if any.
func Token() string {
	if t := os.Getenv("GITHUB_TOKEN"); t != "" {
		return t
	}
	return os.Getenv("GH_TOKEN")
}

// SetBaseURL points the client at a different API endpoint (for testing).
func (c *GitHubClient) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	c.gh.BaseURL = u
	return nil
}

// RepoInfo is the subset of repository metadata the kit reads.
type RepoInfo struct {
	FullName      string
	Description   string
	Archived      bool
	LatestRelease string
}

// Repository fetches repository metadata and, when the project publishes
// releases, the latest release tag. Many recon tools tag nothing, so a
// missing release is not an error.
func (c *GitHubClient) Repository(ctx context.Context, owner, repo string) (*RepoInfo, error) {
	r, resp, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, &NotFoundError{Kind: "repository", Name: owner + "/" + repo}
		}
		return nil, fmt.Errorf("failed to fetch repository %s/%s: %w", owner, repo, err)
	}

	info := &RepoInfo{
		FullName:    r.GetFullName(),
		Description: r.GetDescription(),
		Archived:    r.GetArchived(),
	}

	if rel, _, err := c.gh.Repositories.GetLatestRelease(ctx, owner, repo); err == nil {
		info.LatestRelease = rel.GetTagName()
	}

	return info, nil
}
