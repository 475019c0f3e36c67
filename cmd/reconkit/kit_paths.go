package main

import (
	"github.com/araultra/reconkit/pkg/kit"
)

// resolveKit maps the configured kit root (or the default home) to the
// on-disk layout.
func resolveKit() (kit.Paths, error) {
	return kit.Resolve(cfg.KitRoot)
}

// resolvePip picks the pip the inventory lists: an explicit config override
// first, the kit virtualenv when it exists, bare pip3 otherwise.
func resolvePip(paths kit.Paths) string {
	if cfg.PipBin != "" {
		return cfg.PipBin
	}
	if paths.VenvExists() {
		return paths.VenvPip()
	}
	return "pip3"
}

// resolveProject picks the audit target: the flag, then the configured
// project, then the working directory.
func resolveProject(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg.ProjectDir != "" {
		return cfg.ProjectDir
	}
	return "."
}
