// Package scan walks a project tree and reports which catalog tools its
// sources reference, plus the imports they declare. Detection is a
// line-oriented, boundary-delimited substring match: approximate by intent,
// it can match inside comments or strings and that is accepted.
package scan

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/araultra/reconkit/pkg/reconcile"
)

var (
	importLinePattern = regexp.MustCompile(`^\s*import\s+(.+)$`)
	fromLinePattern   = regexp.MustCompile(`^\s*from\s+([A-Za-z_][A-Za-z0-9_.]*)\s+import\b`)
	moduleNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Dirs that never hold project sources.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	".venv":        true,
	"venv":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
}

// Options configures a project scan.
type Options struct {
	// Root is the project directory. The scan fails when it is absent;
	// this is the one condition the audit treats as fatal.
	Root string
	// Extensions of files to scan. Defaults to .py.
	Extensions []string
	// Identifiers are the tool names to look for.
	Identifiers []string
}

// Result is what a scan found.
type Result struct {
	// Referenced holds the identifiers seen somewhere in the tree, sorted.
	Referenced []string
	// Imports holds the top-level module names the sources import, sorted.
	// Imports inform the report; they are not reconciled against anything.
	Imports []string
	// FilesScanned counts the files that were actually read.
	FilesScanned int
	// Notes records files that could not be read and were skipped.
	Notes []string
}

// Project scans the tree rooted at opts.Root.
func Project(opts Options) (Result, error) {
	info, err := os.Stat(opts.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, fmt.Errorf("project directory %s does not exist", opts.Root)
		}
		return Result{}, fmt.Errorf("failed to stat project directory %s: %w", opts.Root, err)
	}
	if !info.IsDir() {
		return Result{}, fmt.Errorf("project path %s is not a directory", opts.Root)
	}

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{".py"}
	}
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		extSet[e] = true
	}

	patterns := make(map[string]*regexp.Regexp, len(opts.Identifiers))
	for _, id := range opts.Identifiers {
		patterns[id] = referencePattern(id)
	}

	var res Result
	referenced := map[string]bool{}
	imports := map[string]bool{}

	walkErr := filepath.WalkDir(opts.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == opts.Root {
				return err
			}
			res.Notes = append(res.Notes, fmt.Sprintf("skipped %s: %v", path, err))
			return nil
		}
		if d.IsDir() {
			if path != opts.Root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !extSet[filepath.Ext(d.Name())] {
			return nil
		}
		if err := scanFile(path, patterns, referenced, imports); err != nil {
			res.Notes = append(res.Notes, fmt.Sprintf("skipped %s: %v", path, err))
			return nil
		}
		res.FilesScanned++
		return nil
	})
	if walkErr != nil {
		return Result{}, fmt.Errorf("failed to scan project directory %s: %w", opts.Root, walkErr)
	}

	res.Referenced = reconcile.NewSet(keys(referenced)...).Items()
	res.Imports = reconcile.NewSet(keys(imports)...).Items()
	return res, nil
}

// scanFile reads one source file line by line, recording identifier
// references and import statements.
func scanFile(path string, patterns map[string]*regexp.Regexp, referenced, imports map[string]bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		for id, pattern := range patterns {
			if referenced[id] {
				continue
			}
			if pattern.MatchString(line) {
				referenced[id] = true
			}
		}

		for _, mod := range importedModules(line) {
			imports[mod] = true
		}
	}
	return scanner.Err()
}

// referencePattern matches an identifier with non-word neighbors, so nmap
// does not match inside unmap and dnsx does not match inside dnsx-pro.
func referencePattern(id string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^A-Za-z0-9_-])` + regexp.QuoteMeta(id) + `(?:$|[^A-Za-z0-9_-])`)
}

// importedModules extracts top-level module names from a single line of
// Python source. "import os.path, sys as s" yields os and sys; relative
// imports yield nothing.
func importedModules(line string) []string {
	var mods []string

	if m := fromLinePattern.FindStringSubmatch(line); m != nil {
		if top := topLevelModule(m[1]); top != "" {
			mods = append(mods, top)
		}
		return mods
	}

	m := importLinePattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	for _, part := range strings.Split(m[1], ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		if top := topLevelModule(fields[0]); top != "" {
			mods = append(mods, top)
		}
	}
	return mods
}

func topLevelModule(dotted string) string {
	top, _, _ := strings.Cut(dotted, ".")
	if !moduleNamePattern.MatchString(top) {
		return ""
	}
	return top
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
