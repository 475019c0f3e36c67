// Package preflight verifies that a machine can run and provision the recon
// toolkit: the installers it shells out to, the directories it writes, and
// the API it resolves packages against. The doctor command renders these
// results; bootstrap runs the blocking subset before installing anything.
package preflight

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/araultra/reconkit/pkg/log"
)

// CheckLevel represents the severity of a preflight result.
type CheckLevel int

const (
	// LevelError blocks provisioning.
	LevelError CheckLevel = iota
	// LevelWarn should be addressed but does not block.
	LevelWarn
	// LevelInfo reports a healthy probe.
	LevelInfo
)

// String renders the level the way the doctor report prints it.
func (l CheckLevel) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	default:
		return "ok"
	}
}

// CheckResult is the outcome of a single check.
type CheckResult struct {
	Name    string
	Level   CheckLevel
	Message string
	Err     error
}

// Check is a single preflight probe.
type Check interface {
	Name() string
	Run(ctx context.Context) CheckResult
}

// Config selects which checks run.
type Config struct {
	// Skip disables all checks.
	Skip bool
	// RequireBrew, RequireGit, RequireGo and RequirePython gate the
	// installer toolchain checks.
	RequireBrew   bool
	RequireGit    bool
	RequireGo     bool
	RequirePython bool
	// ProjectPath, when set, must be an existing directory.
	ProjectPath string
	// KitBin, when set, must be creatable and writable.
	KitBin string
	// BrewAPIURL, when set, is probed for reachability (warn-only).
	BrewAPIURL string
}

// Checker runs a configured set of checks.
type Checker struct {
	checks  []Check
	skipped bool
}

// NewChecker assembles the checks the config asks for.
func NewChecker(cfg Config) *Checker {
	c := &Checker{skipped: cfg.Skip}

	if cfg.RequireBrew {
		c.checks = append(c.checks, &CommandCheck{
			Bin:  "brew",
			Args: []string{"--version"},
			Hint: "install Homebrew from https://brew.sh",
		})
	}
	if cfg.RequireGit {
		c.checks = append(c.checks, &CommandCheck{
			Bin:  "git",
			Args: []string{"--version"},
			Hint: "install Git from https://git-scm.com/downloads",
		})
	}
	if cfg.RequireGo {
		c.checks = append(c.checks, &CommandCheck{
			Bin:  "go",
			Args: []string{"version"},
			Hint: "install Go from https://go.dev/dl/",
		})
	}
	if cfg.RequirePython {
		c.checks = append(c.checks, &CommandCheck{
			Bin:  "python3",
			Args: []string{"--version"},
			Hint: "install Python 3 (brew install python)",
		})
	}
	if cfg.ProjectPath != "" {
		c.checks = append(c.checks, &ProjectCheck{Path: cfg.ProjectPath})
	}
	if cfg.KitBin != "" {
		c.checks = append(c.checks, &BinDirCheck{Path: cfg.KitBin})
		c.checks = append(c.checks, &PathEnvCheck{Dir: cfg.KitBin})
	}
	if cfg.BrewAPIURL != "" {
		c.checks = append(c.checks, &BrewAPICheck{URL: cfg.BrewAPIURL})
	}

	return c
}

// Run executes every check and returns all results. Rendering and exit
// policy belong to the caller.
func (c *Checker) Run(ctx context.Context) []CheckResult {
	if c.skipped {
		log.Info("preflight checks skipped")
		return nil
	}

	results := make([]CheckResult, 0, len(c.checks))
	for _, check := range c.checks {
		result := check.Run(ctx)
		log.Debug("preflight check", "check", result.Name, "level", result.Level.String(), "message", result.Message)
		results = append(results, result)
	}
	return results
}

// HasErrors reports whether any result is blocking.
func HasErrors(results []CheckResult) bool {
	for _, r := range results {
		if r.Level == LevelError {
			return true
		}
	}
	return false
}

// Summarize folds blocking results into one error, or nil when none block.
func Summarize(results []CheckResult) error {
	var msgs []string
	for _, r := range results {
		if r.Level == LevelError {
			msgs = append(msgs, fmt.Sprintf("%s: %s", r.Name, r.Message))
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("preflight checks failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// CommandCheck verifies an executable resolves on PATH and answers a
// version probe.
type CommandCheck struct {
	Bin  string
	Args []string
	Hint string
}

func (c *CommandCheck) Name() string {
	return c.Bin
}

func (c *CommandCheck) Run(ctx context.Context) CheckResult {
	if _, err := exec.LookPath(c.Bin); err != nil {
		return CheckResult{
			Name:    c.Name(),
			Level:   LevelError,
			Message: fmt.Sprintf("%s not found on PATH; %s", c.Bin, c.Hint),
			Err:     err,
		}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	out, err := exec.CommandContext(checkCtx, c.Bin, c.Args...).CombinedOutput()
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Level:   LevelWarn,
			Message: fmt.Sprintf("%s is installed but did not answer a version probe", c.Bin),
			Err:     err,
		}
	}

	version := firstLine(string(out))
	return CheckResult{
		Name:    c.Name(),
		Level:   LevelInfo,
		Message: fmt.Sprintf("%s is available (%s)", c.Bin, version),
	}
}

// ProjectCheck verifies the audit target exists and is a directory.
type ProjectCheck struct {
	Path string
}

func (c *ProjectCheck) Name() string {
	return "project"
}

func (c *ProjectCheck) Run(ctx context.Context) CheckResult {
	absPath, err := filepath.Abs(c.Path)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Level:   LevelError,
			Message: fmt.Sprintf("failed to resolve project path: %s", c.Path),
			Err:     err,
		}
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return CheckResult{
				Name:    c.Name(),
				Level:   LevelError,
				Message: fmt.Sprintf("project directory does not exist: %s", absPath),
				Err:     err,
			}
		}
		return CheckResult{
			Name:    c.Name(),
			Level:   LevelError,
			Message: fmt.Sprintf("cannot access project directory: %s", absPath),
			Err:     err,
		}
	}
	if !info.IsDir() {
		return CheckResult{
			Name:    c.Name(),
			Level:   LevelError,
			Message: fmt.Sprintf("project path is not a directory: %s", absPath),
			Err:     fmt.Errorf("not a directory"),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Level:   LevelInfo,
		Message: fmt.Sprintf("project directory is accessible: %s", absPath),
	}
}

// BinDirCheck verifies the kit bin directory can be created and written.
type BinDirCheck struct {
	Path string
}

func (c *BinDirCheck) Name() string {
	return "kit-bin"
}

func (c *BinDirCheck) Run(ctx context.Context) CheckResult {
	absPath, err := filepath.Abs(c.Path)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Level:   LevelError,
			Message: fmt.Sprintf("failed to resolve kit bin path: %s", c.Path),
			Err:     err,
		}
	}

	if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
		return CheckResult{
			Name:    c.Name(),
			Level:   LevelError,
			Message: fmt.Sprintf("kit bin path is not a directory: %s", absPath),
			Err:     fmt.Errorf("not a directory"),
		}
	} else if os.IsNotExist(err) {
		if err := os.MkdirAll(absPath, 0755); err != nil {
			return CheckResult{
				Name:    c.Name(),
				Level:   LevelError,
				Message: fmt.Sprintf("cannot create kit bin directory: %s", absPath),
				Err:     err,
			}
		}
	}

	testFile := filepath.Join(absPath, fmt.Sprintf(".reconkit-write-test-%d", os.Getpid()))
	f, err := os.Create(testFile)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Level:   LevelError,
			Message: fmt.Sprintf("kit bin directory is not writable: %s", absPath),
			Err:     err,
		}
	}
	f.Close()
	_ = os.Remove(testFile)

	return CheckResult{
		Name:    c.Name(),
		Level:   LevelInfo,
		Message: fmt.Sprintf("kit bin directory is writable: %s", absPath),
	}
}

// PathEnvCheck warns when the kit bin directory is not on PATH, since tools
// installed there would not resolve for the suite.
type PathEnvCheck struct {
	Dir string
}

func (c *PathEnvCheck) Name() string {
	return "path"
}

func (c *PathEnvCheck) Run(ctx context.Context) CheckResult {
	abs, err := filepath.Abs(c.Dir)
	if err != nil {
		abs = c.Dir
	}
	for _, entry := range filepath.SplitList(os.Getenv("PATH")) {
		if entry == "" {
			continue
		}
		if entryAbs, err := filepath.Abs(entry); err == nil && entryAbs == abs {
			return CheckResult{
				Name:    c.Name(),
				Level:   LevelInfo,
				Message: fmt.Sprintf("kit bin is on PATH: %s", abs),
			}
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Level:   LevelWarn,
		Message: fmt.Sprintf("kit bin is not on PATH; add %s to PATH so installed tools resolve", abs),
	}
}

// BrewAPICheck probes the Homebrew JSON API. Best effort: an unreachable
// API only degrades verification, so this never blocks.
type BrewAPICheck struct {
	URL string
}

func (c *BrewAPICheck) Name() string {
	return "brew-api"
}

func (c *BrewAPICheck) Run(ctx context.Context) CheckResult {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodHead, c.URL, nil)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Level:   LevelWarn,
			Message: "failed to build the Homebrew API probe",
			Err:     err,
		}
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Level:   LevelWarn,
			Message: "Homebrew API unreachable; tools verify will degrade",
			Err:     err,
		}
	}
	defer resp.Body.Close()
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		log.Debug("failed to drain response body", "error", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return CheckResult{
			Name:    c.Name(),
			Level:   LevelWarn,
			Message: fmt.Sprintf("Homebrew API probe returned status %d", resp.StatusCode),
			Err:     fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Level:   LevelInfo,
		Message: "Homebrew API is reachable",
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
