package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestGitHubClient(t *testing.T, handler http.Handler) *GitHubClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewGitHubClient(context.Background(), "")
	if err := client.SetBaseURL(server.URL); err != nil {
		t.Fatalf("SetBaseURL: %v", err)
	}
	return client
}

func TestRepositoryFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/projectdiscovery/nuclei", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": 1,
			"full_name": "projectdiscovery/nuclei",
			"description": "Fast and customizable vulnerability scanner",
			"archived": false
		}`))
	})
	mux.HandleFunc("/repos/projectdiscovery/nuclei/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name": "v3.4.2"}`))
	})

	client := newTestGitHubClient(t, mux)
	info, err := client.Repository(context.Background(), "projectdiscovery", "nuclei")
	if err != nil {
		t.Fatalf("Repository() error: %v", err)
	}
	if info.FullName != "projectdiscovery/nuclei" {
		t.Errorf("FullName = %q", info.FullName)
	}
	if info.LatestRelease != "v3.4.2" {
		t.Errorf("LatestRelease = %q, want v3.4.2", info.LatestRelease)
	}
	if info.Archived {
		t.Error("Archived = true, want false")
	}
}

func TestRepositoryWithoutReleases(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/tomnomnom/httprobe", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 2, "full_name": "tomnomnom/httprobe"}`))
	})
	// No releases route: the latest-release lookup 404s.

	client := newTestGitHubClient(t, mux)
	info, err := client.Repository(context.Background(), "tomnomnom", "httprobe")
	if err != nil {
		t.Fatalf("Repository() error: %v", err)
	}
	if info.LatestRelease != "" {
		t.Errorf("LatestRelease = %q, want empty for a repo without releases", info.LatestRelease)
	}
}

func TestRepositoryNotFound(t *testing.T) {
	client := newTestGitHubClient(t, http.NotFoundHandler())
	_, err := client.Repository(context.Background(), "nobody", "nothing")
	if err == nil {
		t.Fatal("Repository() = nil error for a 404")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error %v is not a NotFoundError", err)
	}
	if nf.Name != "nobody/nothing" {
		t.Errorf("Name = %q, want nobody/nothing", nf.Name)
	}
}

func TestToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")
	if got := Token(); got != "" {
		t.Errorf("Token() = %q, want empty", got)
	}

	t.Setenv("GH_TOKEN", "gh-fallback")
	if got := Token(); got != "gh-fallback" {
		t.Errorf("Token() = %q, want gh-fallback", got)
	}

	t.Setenv("GITHUB_TOKEN", "primary")
	if got := Token(); got != "primary" {
		t.Errorf("Token() = %q, want primary", got)
	}
}
