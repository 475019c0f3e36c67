package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/araultra/reconkit/pkg/execx"
	"github.com/araultra/reconkit/pkg/kit"
	"github.com/araultra/reconkit/pkg/log"
)

// Step outcomes recorded in the receipt.
const (
	StepOK     = "ok"
	StepFailed = "failed"
)

// Result records one bootstrap run. It is also the receipt format.
type Result struct {
	RunID    string       `json:"run_id"`
	Started  time.Time    `json:"started_at"`
	Finished time.Time    `json:"finished_at"`
	Steps    []StepResult `json:"steps"`
}

// StepResult is the outcome of one plan step.
type StepResult struct {
	Name     string   `json:"name"`
	Method   string   `json:"method,omitempty"`
	Status   string   `json:"status"`
	Error    string   `json:"error,omitempty"`
	Commands []string `json:"commands"`
}

// FailedSteps returns the steps that did not complete.
func (r Result) FailedSteps() []StepResult {
	var failed []StepResult
	for _, s := range r.Steps {
		if s.Status == StepFailed {
			failed = append(failed, s)
		}
	}
	return failed
}

// Execute runs every plan step in order. A failing step is recorded and the
// run moves on; only a kit that cannot be laid out on disk aborts the run.
func Execute(ctx context.Context, runner execx.Runner, plan *Plan) (Result, error) {
	res := Result{
		RunID:   uuid.NewString(),
		Started: time.Now().UTC(),
	}

	if err := plan.Kit.EnsureLayout(); err != nil {
		return res, err
	}

	for _, step := range plan.Steps {
		sr := StepResult{
			Name:     step.Name,
			Method:   string(step.Method),
			Commands: stepLines(step),
			Status:   StepOK,
		}

		log.Progressf("bootstrap: %s", step.Name)
		if err := runStep(ctx, runner, step); err != nil {
			sr.Status = StepFailed
			sr.Error = err.Error()
			log.Warnf("bootstrap: %s failed: %v", step.Name, err)
		}

		res.Steps = append(res.Steps, sr)
	}

	res.Finished = time.Now().UTC()
	return res, nil
}

func runStep(ctx context.Context, runner execx.Runner, step Step) error {
	for _, cmd := range step.Commands {
		if err := runner.Run(ctx, cmd); err != nil {
			return err
		}
	}
	if step.Symlink != nil {
		return applySymlink(*step.Symlink)
	}
	return nil
}

// applySymlink marks the entrypoint executable and (re)points the bin link
// at it. Replacing an existing link keeps re-bootstraps idempotent.
func applySymlink(s Symlink) error {
	if info, err := os.Stat(s.Target); err == nil && info.Mode().IsRegular() {
		if err := os.Chmod(s.Target, 0755); err != nil {
			return fmt.Errorf("failed to mark %s executable: %w", s.Target, err)
		}
	}
	if err := os.Remove(s.Link); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to replace %s: %w", s.Link, err)
	}
	if err := os.Symlink(s.Target, s.Link); err != nil {
		return fmt.Errorf("failed to link %s: %w", s.Link, err)
	}
	return nil
}

// WriteReceipt stores the run result under the kit receipts directory and
// returns the receipt path.
func WriteReceipt(paths kit.Paths, res Result) (string, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal receipt: %w", err)
	}

	path := filepath.Join(paths.Receipts, fmt.Sprintf("bootstrap-%s.json", res.RunID))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write receipt: %w", err)
	}
	return path, nil
}
