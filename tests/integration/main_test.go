package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// brewStub answers the two listing invocations the inventory runs. Anything
// else is a scripting mistake and fails loudly.
const brewStub = `#!/bin/sh
case "$1 $2" in
"list --formula")
	printf 'nmap\nmasscan\n'
	;;
"list --cask")
	printf 'burp-suite\n'
	;;
*)
	echo "brew stub: unsupported arguments: $*" >&2
	exit 1
	;;
esac
`

const pipStub = `#!/bin/sh
if [ "$1" = "list" ]; then
	printf 'Package    Version\n---------- -------\nsslyze     6.1.0\nwafw00f    2.2.0\n'
	exit 0
fi
echo "pip3 stub: unsupported arguments: $*" >&2
exit 1
`

func TestMain(m *testing.M) {
	// Compile the binary once; the scripts run it from PATH.
	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Join(filepath.Dir(filename), "../..")
	binDir := filepath.Join(projectRoot, "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create bin dir: %v\n", err)
		os.Exit(1)
	}

	binPath := filepath.Join(binDir, "reconkit")
	if runtime.GOOS == "windows" {
		binPath += ".exe"
	}

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/reconkit")
	cmd.Dir = projectRoot
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build reconkit: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func TestScript(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("the stub package managers are POSIX shell scripts")
	}

	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Join(filepath.Dir(filename), "../..")
	binDir := filepath.Join(projectRoot, "bin")

	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			// Stub brew and pip3 so the audits see a fixed installed set
			// regardless of the host machine.
			stubDir := filepath.Join(env.WorkDir, ".stubs")
			if err := os.MkdirAll(stubDir, 0755); err != nil {
				return err
			}
			stubs := map[string]string{"brew": brewStub, "pip3": pipStub}
			for name, content := range stubs {
				if err := os.WriteFile(filepath.Join(stubDir, name), []byte(content), 0755); err != nil {
					return err
				}
			}

			env.Vars = append(env.Vars, fmt.Sprintf("PATH=%s%c%s%c%s",
				binDir, filepath.ListSeparator, stubDir, filepath.ListSeparator, os.Getenv("PATH")))
			return nil
		},
	})
}
