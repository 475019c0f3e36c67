// Package bootstrap provisions the recon kit: Homebrew formulas and casks,
// PyPI projects into the kit virtualenv, go-installed binaries, and git
// clones with their entrypoints symlinked into the kit bin directory.
//
// A run is planned first and executed second. The plan is a flat list of
// steps in a fixed method order (brew, cask, pip, go, git), so a dry run
// prints exactly what a real run would do.
package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/araultra/reconkit/pkg/catalog"
	"github.com/araultra/reconkit/pkg/execx"
	"github.com/araultra/reconkit/pkg/kit"
)

// Options configures plan construction.
type Options struct {
	// Kit is the resolved kit layout the tools are installed into.
	Kit kit.Paths
	// Tools is the catalog to provision.
	Tools []catalog.Tool
	// Only restricts the plan to these tool names. Unknown names are an
	// error rather than a silent no-op.
	Only []string

	// Binary overrides, mostly for tests. Empty means the PATH name.
	BrewBin   string
	PythonBin string
	GoBin     string
	GitBin    string
}

// Step is one unit of the plan: the commands for a single tool, or the
// synthetic venv setup step that precedes pip installs.
type Step struct {
	Name     string
	Method   catalog.Method
	Commands []execx.Command
	// Symlink is created after the commands succeed. Only git tools set it.
	Symlink *Symlink
}

// Symlink links a cloned entrypoint into the kit bin directory.
type Symlink struct {
	Target string
	Link   string
}

// Plan is an ordered list of steps against one kit.
type Plan struct {
	Kit   kit.Paths
	Steps []Step
}

// Needs reports which host toolchains the plan depends on, so the caller
// can run the matching preflight checks before executing.
type Needs struct {
	Brew   bool
	Git    bool
	Go     bool
	Python bool
}

// methodOrder fixes the execution order: system packages first, then the
// language ecosystems, clones last.
var methodOrder = []catalog.Method{
	catalog.MethodBrew,
	catalog.MethodCask,
	catalog.MethodPip,
	catalog.MethodGo,
	catalog.MethodGit,
}

// NewPlan builds the install plan for the given catalog. Planning inspects
// the kit directories so re-runs produce update commands (git pull) instead
// of failing on existing clones.
func NewPlan(opts Options) (*Plan, error) {
	if opts.BrewBin == "" {
		opts.BrewBin = "brew"
	}
	if opts.PythonBin == "" {
		opts.PythonBin = "python3"
	}
	if opts.GoBin == "" {
		opts.GoBin = "go"
	}
	if opts.GitBin == "" {
		opts.GitBin = "git"
	}

	tools, err := selectTools(opts.Tools, opts.Only)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Kit: opts.Kit}
	for _, method := range methodOrder {
		for _, t := range tools {
			if t.Method != method {
				continue
			}
			if method == catalog.MethodPip && !hasStep(plan, "venv") && !opts.Kit.VenvExists() {
				plan.Steps = append(plan.Steps, venvStep(opts))
			}
			plan.Steps = append(plan.Steps, toolStep(opts, t))
		}
	}
	return plan, nil
}

func selectTools(all []catalog.Tool, only []string) ([]catalog.Tool, error) {
	tools := make([]catalog.Tool, len(all))
	copy(tools, all)
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })

	if len(only) == 0 {
		return tools, nil
	}

	byName := make(map[string]catalog.Tool, len(tools))
	for _, t := range tools {
		byName[t.Name] = t
	}

	picked := make([]catalog.Tool, 0, len(only))
	for _, name := range only {
		t, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown tool %q: not in the catalog", name)
		}
		picked = append(picked, t)
	}
	sort.Slice(picked, func(i, j int) bool { return picked[i].Name < picked[j].Name })
	return picked, nil
}

func hasStep(plan *Plan, name string) bool {
	for _, s := range plan.Steps {
		if s.Name == name {
			return true
		}
	}
	return false
}

func venvStep(opts Options) Step {
	return Step{
		Name: "venv",
		Commands: []execx.Command{{
			Name: opts.PythonBin,
			Args: []string{"-m", "venv", opts.Kit.Venv},
		}},
	}
}

func toolStep(opts Options, t catalog.Tool) Step {
	step := Step{Name: t.Name, Method: t.Method}

	switch t.Method {
	case catalog.MethodBrew:
		step.Commands = []execx.Command{{
			Name: opts.BrewBin,
			Args: []string{"install", t.Source},
		}}
	case catalog.MethodCask:
		step.Commands = []execx.Command{{
			Name: opts.BrewBin,
			Args: []string{"install", "--cask", t.Source},
		}}
	case catalog.MethodPip:
		step.Commands = []execx.Command{{
			Name: opts.Kit.VenvPip(),
			Args: []string{"install", "--upgrade", t.Source},
		}}
	case catalog.MethodGo:
		src := t.Source
		if !strings.Contains(src, "@") {
			src += "@latest"
		}
		step.Commands = []execx.Command{{
			Name: opts.GoBin,
			Args: []string{"install", src},
			Env:  []string{"GOBIN=" + opts.Kit.Bin},
		}}
	case catalog.MethodGit:
		cloneDir := filepath.Join(opts.Kit.Src, t.Name)
		step.Commands = []execx.Command{gitCommand(opts.GitBin, t.Source, cloneDir)}
		step.Symlink = &Symlink{
			Target: filepath.Join(cloneDir, filepath.FromSlash(t.Entrypoint)),
			Link:   filepath.Join(opts.Kit.Bin, t.BinaryName()),
		}
	}

	return step
}

func gitCommand(gitBin, source, cloneDir string) execx.Command {
	if _, err := os.Stat(filepath.Join(cloneDir, ".git")); err == nil {
		return execx.Command{Name: gitBin, Args: []string{"-C", cloneDir, "pull", "--ff-only"}}
	}
	return execx.Command{Name: gitBin, Args: []string{"clone", "--depth", "1", source, cloneDir}}
}

// Needs reports the toolchains the plan will invoke.
func (p *Plan) Needs() Needs {
	var n Needs
	for _, s := range p.Steps {
		switch s.Method {
		case catalog.MethodBrew, catalog.MethodCask:
			n.Brew = true
		case catalog.MethodPip:
			n.Python = true
		case catalog.MethodGo:
			n.Go = true
		case catalog.MethodGit:
			n.Git = true
		}
	}
	return n
}

// Describe renders the plan as the command lines a real run would execute,
// one per line, environment prefix included.
func (p *Plan) Describe() []string {
	var lines []string
	for _, step := range p.Steps {
		lines = append(lines, stepLines(step)...)
	}
	return lines
}

func stepLines(step Step) []string {
	var lines []string
	for _, cmd := range step.Commands {
		line := cmd.String()
		if len(cmd.Env) > 0 {
			line = strings.Join(cmd.Env, " ") + " " + line
		}
		lines = append(lines, line)
	}
	if step.Symlink != nil {
		lines = append(lines, fmt.Sprintf("ln -sf %s %s", step.Symlink.Target, step.Symlink.Link))
	}
	return lines
}
