// Package catalog defines the fixed allow-list of reconnaissance tools the
// kit provisions and audits. The list is a constant table rather than a
// pattern match: extending coverage means adding an entry here (or in the
// user config), not editing a regex.
package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Method identifies how a tool is installed on the machine.
type Method string

const (
	// MethodBrew installs a Homebrew formula.
	MethodBrew Method = "brew"
	// MethodCask installs a Homebrew cask.
	MethodCask Method = "cask"
	// MethodPip installs a PyPI project into the kit virtualenv.
	MethodPip Method = "pip"
	// MethodGo runs go install on a module path.
	MethodGo Method = "go"
	// MethodGit clones a repository and symlinks its entrypoint.
	MethodGit Method = "git"
)

var validMethods = map[Method]bool{
	MethodBrew: true,
	MethodCask: true,
	MethodPip:  true,
	MethodGo:   true,
	MethodGit:  true,
}

// Tool is one entry of the allow-list.
type Tool struct {
	// Name is the canonical identifier, the token the sibling suite uses to
	// reference the tool and the token reconciliation compares against.
	Name string `yaml:"name"`
	// Binary is the executable name on PATH when it differs from Name
	// (e.g. the testssl formula installs testssl.sh).
	Binary string `yaml:"binary,omitempty"`
	// Label is a short human description shown in listings.
	Label string `yaml:"label,omitempty"`
	// Method selects the installer.
	Method Method `yaml:"method"`
	// Source is the method-specific origin: formula or cask token, PyPI
	// project, Go module path, or git clone URL.
	Source string `yaml:"source"`
	// Entrypoint is the repo-relative file symlinked into the kit bin
	// directory. Only meaningful for MethodGit.
	Entrypoint string `yaml:"entrypoint,omitempty"`
}

// BinaryName returns the executable name, defaulting to Name.
func (t Tool) BinaryName() string {
	if t.Binary != "" {
		return t.Binary
	}
	return t.Name
}

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._@-]*$`)

// Validate checks an entry for the constraints the installers and the
// scanner rely on. Builtin entries are validated by tests; user-supplied
// entries from the config file are validated at load time.
func (t Tool) Validate() error {
	if !namePattern.MatchString(t.Name) {
		return fmt.Errorf("invalid tool name %q: only lowercase [a-z0-9._@-] is allowed", t.Name)
	}
	if !validMethods[t.Method] {
		return fmt.Errorf("tool %s: unknown install method %q", t.Name, t.Method)
	}
	if strings.TrimSpace(t.Source) == "" {
		return fmt.Errorf("tool %s: source is required", t.Name)
	}
	if t.Method == MethodGit && t.Entrypoint == "" {
		return fmt.Errorf("tool %s: git tools need an entrypoint to symlink", t.Name)
	}
	if t.Method != MethodGit && t.Entrypoint != "" {
		return fmt.Errorf("tool %s: entrypoint is only valid for git tools", t.Name)
	}
	if t.Method == MethodGo && !strings.Contains(t.Source, "/") {
		return fmt.Errorf("tool %s: go source must be a module path", t.Name)
	}
	return nil
}

// Tools returns a copy of the builtin allow-list, sorted by name, so callers
// cannot mutate the table.
func Tools() []Tool {
	out := make([]Tool, len(builtin))
	copy(out, builtin)
	return out
}

// Names returns the sorted canonical names of the builtin allow-list.
func Names() []string {
	out := make([]string, len(builtin))
	for i, t := range builtin {
		out[i] = t.Name
	}
	return out
}

// Lookup finds a builtin entry by canonical name.
func Lookup(name string) (Tool, bool) {
	for _, t := range builtin {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

// Merge overlays extra entries onto a base list. An extra entry with the
// name of an existing one replaces it; new names are appended. The result
// is sorted by name.
func Merge(base, extra []Tool) []Tool {
	merged := make([]Tool, len(base))
	copy(merged, base)
	for _, e := range extra {
		replaced := false
		for i, b := range merged {
			if b.Name == e.Name {
				merged[i] = e
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, e)
		}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Name < merged[j].Name })
	return merged
}
