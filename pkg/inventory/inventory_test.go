package inventory

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/araultra/reconkit/pkg/execx"
)

const pipListOutput = `Package            Version
------------------ ---------
certifi            2023.7.22
sslyze             5.1.3
wafw00f            2.2.0
`

func TestParsePipList(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "standard columns",
			in:   pipListOutput,
			want: []string{"certifi", "sslyze", "wafw00f"},
		},
		{
			name: "blank rows ignored",
			in:   "Package Version\n------- -------\n\nsslyze  5.1.3\n\n",
			want: []string{"sslyze"},
		},
		{
			name: "no separator means no rows",
			in:   "sslyze==5.1.3\nwafw00f==2.2.0\n",
			want: nil,
		},
		{
			name: "empty output",
			in:   "",
			want: nil,
		},
		{
			name: "header only",
			in:   "Package Version\n------- -------\n",
			want: nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := parsePipList([]byte(tc.in)); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("parsePipList() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	in := "nmap\n\n  amass  \nmasscan\n"
	want := []string{"nmap", "amass", "masscan"}
	if got := splitLines([]byte(in)); !reflect.DeepEqual(got, want) {
		t.Errorf("splitLines() = %v, want %v", got, want)
	}
	if got := splitLines(nil); got != nil {
		t.Errorf("splitLines(nil) = %v, want nil", got)
	}
}

func TestCollectMergesAndSorts(t *testing.T) {
	binDir := t.TempDir()
	for _, name := range []string{"subfinder", "httpx"} {
		if err := os.WriteFile(filepath.Join(binDir, name), []byte("#!/bin/sh\n"), 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(binDir, ".DS_Store"), []byte("junk"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(binDir, "cache"), 0755); err != nil {
		t.Fatal(err)
	}

	fake := &execx.Fake{
		Responses: map[string]execx.FakeResult{
			"brew list --formula -1": {Stdout: []byte("nmap\nmasscan\nnmap\n")},
			"brew list --cask -1":    {Stdout: []byte("wireshark\n")},
			"pip3 list":              {Stdout: []byte(pipListOutput)},
		},
	}

	c := New(fake, Options{BinDir: binDir})
	snap := c.Collect(context.Background())

	if want := []string{"masscan", "nmap", "wireshark"}; !reflect.DeepEqual(snap.BrewPackages, want) {
		t.Errorf("BrewPackages = %v, want %v", snap.BrewPackages, want)
	}
	if want := []string{"certifi", "sslyze", "wafw00f"}; !reflect.DeepEqual(snap.PipPackages, want) {
		t.Errorf("PipPackages = %v, want %v", snap.PipPackages, want)
	}
	if want := []string{"httpx", "subfinder"}; !reflect.DeepEqual(snap.Binaries, want) {
		t.Errorf("Binaries = %v, want %v", snap.Binaries, want)
	}
	if len(snap.Notes) != 0 {
		t.Errorf("Notes = %v, want none", snap.Notes)
	}

	installed := snap.InstalledSet().Items()
	want := []string{"certifi", "httpx", "masscan", "nmap", "sslyze", "subfinder", "wafw00f", "wireshark"}
	if !reflect.DeepEqual(installed, want) {
		t.Errorf("InstalledSet() = %v, want %v", installed, want)
	}
}

func TestCollectDegradesPerSource(t *testing.T) {
	// Nothing scripted: every command errors, and the bin dir is absent.
	fake := &execx.Fake{}
	c := New(fake, Options{BinDir: filepath.Join(t.TempDir(), "no-such-dir")})

	snap := c.Collect(context.Background())

	if len(snap.BrewPackages) != 0 || len(snap.PipPackages) != 0 || len(snap.Binaries) != 0 {
		t.Errorf("expected empty listings, got %+v", snap)
	}
	// Formulas, casks, pip, and the bin dir each contribute a note.
	if len(snap.Notes) != 4 {
		t.Errorf("Notes = %v, want 4 entries", snap.Notes)
	}
	if !snap.InstalledSet().IsEmpty() {
		t.Errorf("InstalledSet() = %v, want empty", snap.InstalledSet().Items())
	}
}

func TestCollectPartialDegradation(t *testing.T) {
	fake := &execx.Fake{
		Responses: map[string]execx.FakeResult{
			"brew list --formula -1": {Stdout: []byte("nmap\n")},
			"brew list --cask -1":    {Stdout: []byte("")},
		},
	}
	c := New(fake, Options{BinDir: filepath.Join(t.TempDir(), "absent")})

	snap := c.Collect(context.Background())

	if want := []string{"nmap"}; !reflect.DeepEqual(snap.BrewPackages, want) {
		t.Errorf("BrewPackages = %v, want %v", snap.BrewPackages, want)
	}
	// pip and the bin dir degraded, brew did not.
	if len(snap.Notes) != 2 {
		t.Errorf("Notes = %v, want 2 entries", snap.Notes)
	}
}

func TestDefaultBinaries(t *testing.T) {
	c := New(&execx.Fake{}, Options{})
	if c.opts.BrewBin != "brew" {
		t.Errorf("BrewBin default = %q, want brew", c.opts.BrewBin)
	}
	if c.opts.PipBin != "pip3" {
		t.Errorf("PipBin default = %q, want pip3", c.opts.PipBin)
	}
}
