// Package sources verifies catalog entries against their upstream
// registries: the Homebrew JSON API for formulas and casks, the PyPI JSON
// API for Python projects, and the GitHub API for go-installed and cloned
// tools. Verification is read-only and per-entry: a registry that cannot be
// reached marks that entry, never the whole run.
package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/araultra/reconkit/pkg/catalog"
)

// Status classifies the outcome of verifying one catalog entry.
type Status string

const (
	// StatusOK means the upstream registry knows the source.
	StatusOK Status = "ok"
	// StatusMissing means the registry answered and the source is not there.
	StatusMissing Status = "missing"
	// StatusError means the registry could not be queried.
	StatusError Status = "error"
	// StatusSkipped means the entry has no registry we can ask, e.g. a git
	// tool hosted outside github.com.
	StatusSkipped Status = "skipped"
)

// NotFoundError reports that a registry answered authoritatively that the
// requested entity does not exist. Callers branch on it to tell "missing"
// apart from "could not check".
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// VerifyResult is the outcome for one catalog entry.
type VerifyResult struct {
	Name    string         `json:"name"`
	Method  catalog.Method `json:"method"`
	Source  string         `json:"source"`
	Status  Status         `json:"status"`
	Version string         `json:"version,omitempty"`
	Detail  string         `json:"detail,omitempty"`
}

// Verifier dispatches catalog entries to the registry client matching their
// install method.
type Verifier struct {
	Homebrew *HomebrewClient
	PyPI     *PyPIClient
	GitHub   *GitHubClient
}

// NewVerifier assembles a verifier with default clients. The GitHub client
// picks up a token from the environment when one is set; anonymous access
// works too, just with a lower rate limit.
func NewVerifier(ctx context.Context) *Verifier {
	return &Verifier{
		Homebrew: NewHomebrewClient(),
		PyPI:     NewPyPIClient(),
		GitHub:   NewGitHubClient(ctx, Token()),
	}
}

// Verify checks one entry against its upstream registry.
func (v *Verifier) Verify(ctx context.Context, tool catalog.Tool) VerifyResult {
	res := VerifyResult{Name: tool.Name, Method: tool.Method, Source: tool.Source}

	switch tool.Method {
	case catalog.MethodBrew:
		if info, err := v.Homebrew.Formula(ctx, tool.Source); err != nil {
			res.setError(err)
		} else {
			res.Status = StatusOK
			res.Version = info.Versions.Stable
		}
	case catalog.MethodCask:
		if info, err := v.Homebrew.Cask(ctx, tool.Source); err != nil {
			res.setError(err)
		} else {
			res.Status = StatusOK
			res.Version = info.Version
		}
	case catalog.MethodPip:
		if info, err := v.PyPI.Project(ctx, tool.Source); err != nil {
			res.setError(err)
		} else {
			res.Status = StatusOK
			res.Version = info.Info.Version
		}
	case catalog.MethodGo, catalog.MethodGit:
		owner, repo, ok := githubRepo(tool)
		if !ok {
			res.Status = StatusSkipped
			res.Detail = "source is not hosted on github.com"
			break
		}
		if info, err := v.GitHub.Repository(ctx, owner, repo); err != nil {
			res.setError(err)
		} else {
			res.Status = StatusOK
			res.Version = info.LatestRelease
			if info.Archived {
				res.Detail = "repository is archived"
			}
		}
	default:
		res.Status = StatusError
		res.Detail = fmt.Sprintf("unknown install method %q", tool.Method)
	}

	return res
}

// VerifyAll checks every entry in order. Failures are carried in the
// results, not returned, so one unreachable registry never hides the rest.
func (v *Verifier) VerifyAll(ctx context.Context, tools []catalog.Tool) []VerifyResult {
	results := make([]VerifyResult, 0, len(tools))
	for _, t := range tools {
		results = append(results, v.Verify(ctx, t))
	}
	return results
}

func (r *VerifyResult) setError(err error) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		r.Status = StatusMissing
		r.Detail = nf.Error()
		return
	}
	r.Status = StatusError
	r.Detail = err.Error()
}

// githubRepo extracts the owner/repo pair from a go module path or a git
// clone URL. Only github.com sources are recognized.
func githubRepo(tool catalog.Tool) (owner, repo string, ok bool) {
	src := tool.Source

	switch tool.Method {
	case catalog.MethodGit:
		src = strings.TrimSuffix(src, ".git")
		for _, prefix := range []string{"https://github.com/", "http://github.com/", "git@github.com:"} {
			if rest, found := strings.CutPrefix(src, prefix); found {
				return splitRepoPath(rest)
			}
		}
	case catalog.MethodGo:
		if rest, found := strings.CutPrefix(src, "github.com/"); found {
			// A pinned source carries @version; the repo path ends there.
			rest, _, _ = strings.Cut(rest, "@")
			return splitRepoPath(rest)
		}
	}

	return "", "", false
}

func splitRepoPath(rest string) (owner, repo string, ok bool) {
	parts := strings.Split(rest, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
