// Package execx runs the external commands the kit drives (brew, pip, go,
// git) behind a narrow interface, so the packages that shell out stay
// testable without the real binaries on PATH.
package execx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command describes a single external command invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means inherit.
	Dir string
	// Env entries are appended to the parent environment.
	Env []string
}

// String renders the command line for logs and errors.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner abstracts command execution.
type Runner interface {
	// Output runs the command and returns its stdout.
	Output(ctx context.Context, cmd Command) ([]byte, error)
	// Run runs the command with both streams forwarded to stderr. Stdout
	// stays reserved for the report.
	Run(ctx context.Context, cmd Command) error
	// LookPath resolves an executable name against PATH.
	LookPath(name string) (string, error)
}

// System is the Runner used outside tests.
type System struct{}

func (System) Output(ctx context.Context, cmd Command) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	out, err := c.Output()
	if err != nil {
		return nil, wrapOutputError(cmd, err)
	}
	return out, nil
}

func (System) Run(ctx context.Context, cmd Command) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.Stdout = os.Stderr
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s: %w", cmd.String(), err)
	}
	return nil
}

func (System) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// wrapOutputError folds the last stderr line into the error, which is where
// brew and pip put the reason a command failed.
func wrapOutputError(cmd Command, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if msg := lastLine(exitErr.Stderr); msg != "" {
			return fmt.Errorf("%s: %w: %s", cmd.String(), err, msg)
		}
	}
	return fmt.Errorf("%s: %w", cmd.String(), err)
}

func lastLine(b []byte) string {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "" {
		return ""
	}
	lines := strings.Split(trimmed, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// FakeResult scripts the outcome of one command in a Fake.
type FakeResult struct {
	Stdout []byte
	Err    error
}

// Fake is a scripted Runner for tests. Responses are keyed by the rendered
// command line; Calls records every invocation in order.
type Fake struct {
	Responses map[string]FakeResult
	// Missing holds executable names LookPath should report as absent.
	Missing map[string]bool
	Calls   []string
}

func (f *Fake) Output(_ context.Context, cmd Command) ([]byte, error) {
	f.Calls = append(f.Calls, cmd.String())
	res, ok := f.Responses[cmd.String()]
	if !ok {
		return nil, fmt.Errorf("%s: no scripted response", cmd.String())
	}
	return res.Stdout, res.Err
}

// Run succeeds for any command without a scripted response, which keeps
// happy-path install tests from scripting every step.
func (f *Fake) Run(_ context.Context, cmd Command) error {
	f.Calls = append(f.Calls, cmd.String())
	if res, ok := f.Responses[cmd.String()]; ok {
		return res.Err
	}
	return nil
}

func (f *Fake) LookPath(name string) (string, error) {
	if f.Missing[name] {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return "/usr/local/bin/" + name, nil
}
