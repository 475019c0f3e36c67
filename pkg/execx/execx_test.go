package execx

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func TestCommandString(t *testing.T) {
	cmd := Command{Name: "brew", Args: []string{"list", "--formula", "-1"}}
	if got, want := cmd.String(), "brew list --formula -1"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	bare := Command{Name: "brew"}
	if got := bare.String(); got != "brew" {
		t.Errorf("String() = %q, want brew", got)
	}
}

func TestLastLine(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  \n \n", ""},
		{"single", "single"},
		{"first\nsecond\n", "second"},
		{"first\n  padded last  \n\n", "padded last"},
	}
	for _, tc := range cases {
		if got := lastLine([]byte(tc.in)); got != tc.want {
			t.Errorf("lastLine(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFakeOutputScripted(t *testing.T) {
	fake := &Fake{
		Responses: map[string]FakeResult{
			"brew list --formula -1": {Stdout: []byte("nmap\n")},
		},
	}

	out, err := fake.Output(context.Background(), Command{Name: "brew", Args: []string{"list", "--formula", "-1"}})
	if err != nil {
		t.Fatalf("Output() error = %v", err)
	}
	if string(out) != "nmap\n" {
		t.Errorf("Output() = %q, want %q", out, "nmap\n")
	}
	if len(fake.Calls) != 1 || fake.Calls[0] != "brew list --formula -1" {
		t.Errorf("Calls = %v", fake.Calls)
	}
}

func TestFakeOutputUnscripted(t *testing.T) {
	fake := &Fake{}
	if _, err := fake.Output(context.Background(), Command{Name: "pip", Args: []string{"list"}}); err == nil {
		t.Error("expected an error for an unscripted command")
	}
}

func TestFakeRunDefaultsToSuccess(t *testing.T) {
	fake := &Fake{}
	if err := fake.Run(context.Background(), Command{Name: "brew", Args: []string{"install", "nmap"}}); err != nil {
		t.Errorf("Run() error = %v", err)
	}

	boom := errors.New("boom")
	fake.Responses = map[string]FakeResult{"brew install nmap": {Err: boom}}
	if err := fake.Run(context.Background(), Command{Name: "brew", Args: []string{"install", "nmap"}}); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want %v", err, boom)
	}
}

func TestFakeLookPath(t *testing.T) {
	fake := &Fake{Missing: map[string]bool{"brew": true}}

	if _, err := fake.LookPath("brew"); err == nil {
		t.Error("expected LookPath to fail for a missing executable")
	}
	path, err := fake.LookPath("git")
	if err != nil {
		t.Fatalf("LookPath() error = %v", err)
	}
	if path != "/usr/local/bin/git" {
		t.Errorf("LookPath() = %q", path)
	}
}

func TestSystemLookPath(t *testing.T) {
	// Resolving a shell is about as portable as a PATH lookup test gets.
	if _, err := (System{}).LookPath("sh"); err != nil {
		t.Skipf("sh not on PATH: %v", err)
	}
	if _, err := (System{}).LookPath("definitely-not-a-real-binary-xyz"); err == nil {
		t.Error("expected an error for a nonexistent executable")
	}
}

func TestSystemOutput(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skipf("sh not on PATH: %v", err)
	}

	out, err := System{}.Output(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo hello"}})
	if err != nil {
		t.Fatalf("Output() error = %v", err)
	}
	if string(out) != "hello\n" {
		t.Errorf("Output() = %q, want %q", out, "hello\n")
	}
}

func TestSystemOutputIncludesStderr(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skipf("sh not on PATH: %v", err)
	}

	_, err := System{}.Output(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo reason >&2; exit 3"}})
	if err == nil {
		t.Fatal("expected an error from a failing command")
	}
	if got := err.Error(); !strings.Contains(got, "reason") {
		t.Errorf("error %q does not carry the stderr line", got)
	}
}
