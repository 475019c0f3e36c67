// Package report renders the audit outcome. The plain-text form is a fixed
// sequence of sections so the output stays stable for eyeballs and for the
// scripts that grep it; the JSON form carries the same fields for tooling.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Report is everything one audit run produces, already sorted.
type Report struct {
	BrewPackages     []string `json:"brew_packages"`
	PipPackages      []string `json:"pip_packages"`
	Binaries         []string `json:"binaries"`
	Imports          []string `json:"imports"`
	ManifestPackages []string `json:"manifest_packages"`
	Referenced       []string `json:"referenced"`
	Missing          []string `json:"missing"`
	Extra            []string `json:"extra"`
}

type section struct {
	title string
	items []string
}

func (r Report) sections() []section {
	return []section{
		{"Homebrew packages", r.BrewPackages},
		{"Python packages", r.PipPackages},
		{"Go binaries", r.Binaries},
		{"Project imports", r.Imports},
		{"Manifest packages", r.ManifestPackages},
		{"Referenced tools", r.Referenced},
		{"Missing (required but not installed)", r.Missing},
		{"Extra (installed but not required)", r.Extra},
	}
}

// Write renders the plain-text report. Every section always appears, in
// order, with "(none)" standing in for an empty listing.
func Write(w io.Writer, r Report) error {
	bw := bufio.NewWriter(w)
	for i, s := range r.sections() {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "=== %s ===\n", s.title)
		if len(s.items) == 0 {
			fmt.Fprintln(bw, "(none)")
			continue
		}
		for _, item := range s.items {
			fmt.Fprintln(bw, item)
		}
	}
	return bw.Flush()
}

// WriteJSON renders the report as indented JSON. Nil listings marshal as
// empty arrays so consumers never see null.
func WriteJSON(w io.Writer, r Report) error {
	data, err := json.MarshalIndent(normalize(r), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func normalize(r Report) Report {
	fill := func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return s
	}
	return Report{
		BrewPackages:     fill(r.BrewPackages),
		PipPackages:      fill(r.PipPackages),
		Binaries:         fill(r.Binaries),
		Imports:          fill(r.Imports),
		ManifestPackages: fill(r.ManifestPackages),
		Referenced:       fill(r.Referenced),
		Missing:          fill(r.Missing),
		Extra:            fill(r.Extra),
	}
}
