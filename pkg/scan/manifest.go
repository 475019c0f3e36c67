package scan

import (
	"os"
	"strings"

	"github.com/araultra/reconkit/pkg/reconcile"
)

// versionSeparators end the name portion of a manifest entry. The earliest
// occurrence wins; "==" and "===" share an index so one entry covers both.
var versionSeparators = []string{"==", ">=", "<=", "~=", "!=", ">", "<", ";"}

// ParseManifest reads a requirements-style manifest and returns the bare
// package names, sorted and deduplicated. Callers decide what a read error
// means; for the audit an absent manifest is an empty contribution.
func ParseManifest(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseManifestData(data), nil
}

// ParseManifestData extracts package names from manifest content.
func ParseManifestData(data []byte) []string {
	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		if name, ok := manifestName(line); ok {
			names = append(names, name)
		}
	}
	return reconcile.NewSet(names...).Items()
}

// manifestName normalizes one manifest line: comments and blanks drop out,
// the first whitespace-delimited token is taken, and any version pin is cut
// off. Bracket extras stay part of the name.
func manifestName(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	token := strings.Fields(trimmed)[0]
	cut := len(token)
	for _, sep := range versionSeparators {
		if i := strings.Index(token, sep); i >= 0 && i < cut {
			cut = i
		}
	}
	token = token[:cut]
	if token == "" {
		return "", false
	}
	return token, true
}
