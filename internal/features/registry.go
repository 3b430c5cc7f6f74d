// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package features

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/aibor/initrdgen/internal/config"
)

// menuFeatures maps the interactive menu codes to their display labels.
// Feature names are the lower case labels.
var menuFeatures = map[int]string{
	1: "ZFS",
	2: "LUKS",
	3: "Basic",
}

// Registry holds the hooks of a single build.
//
// It is constructed fresh per build from the settings document, so no
// state leaks between builds.
type Registry struct {
	hooks map[Name]*Hook
}

// NewRegistry creates a [Registry] with the manifests from the given
// settings. Base and modules are always enabled; every image has the
// base files and zero or more kernel modules. The firmware hook follows
// its settings switch.
func NewRegistry(cfg *config.Config) *Registry {
	return &Registry{
		hooks: map[Name]*Hook{
			Base: {
				Enabled:       true,
				RequiredFiles: slices.Clone(cfg.Base.Files),
				KmodLinks:     slices.Clone(cfg.Base.KmodLinks),
				UdevPath:      cfg.Base.UdevPath,
			},
			Modules: {
				Enabled:       true,
				RequiredFiles: slices.Clone(cfg.Modules.Files),
			},
			Zfs: {
				RequiredFiles:   slices.Clone(cfg.Zfs.Files),
				OptionalFiles:   slices.Clone(cfg.Zfs.OptionalFiles),
				ManPagesEnabled: cfg.Zfs.UseMan,
				ManPages:        slices.Clone(cfg.Zfs.ManFiles),
			},
			Luks: {
				RequiredFiles:      slices.Clone(cfg.Luks.Files),
				UseKeyfile:         cfg.Luks.UseKeyfile,
				KeyfilePath:        cfg.Luks.KeyfilePath,
				UseDetachedHeader:  cfg.Luks.UseDetachedHeader,
				DetachedHeaderPath: cfg.Luks.DetachedHeaderPath,
			},
			Firmware: {
				Enabled:             cfg.Firmware.Use,
				RequiredFiles:       slices.Clone(cfg.Firmware.Files),
				RequiredDirectories: slices.Clone(cfg.Firmware.Directories),
				CopyAll:             cfg.Firmware.CopyAll,
			},
		},
	}
}

// Hook returns the record for the given hook name.
func (r *Registry) Hook(name Name) *Hook {
	return r.hooks[name]
}

// Enabled reports whether the named hook is enabled.
func (r *Registry) Enabled(name Name) bool {
	return r.hooks[name].Enabled
}

// Files returns a copy of the required file manifest of the named hook.
func (r *Registry) Files(name Name) []string {
	return slices.Clone(r.hooks[name].RequiredFiles)
}

// OptionalFiles returns a copy of the optional file manifest of the
// named hook.
func (r *Registry) OptionalFiles(name Name) []string {
	return slices.Clone(r.hooks[name].OptionalFiles)
}

// Directories returns a copy of the directory manifest of the named
// hook.
func (r *Registry) Directories(name Name) []string {
	return slices.Clone(r.hooks[name].RequiredDirectories)
}

// ManPages returns a copy of the man page manifest of the named hook.
func (r *Registry) ManPages(name Name) []string {
	return slices.Clone(r.hooks[name].ManPages)
}

// AppendModule appends a kernel module name to the modules manifest.
func (r *Registry) AppendModule(name string) {
	hook := r.hooks[Modules]
	hook.RequiredFiles = append(hook.RequiredFiles, name)
}

// Select applies the given feature name sequence to the registry.
//
// The whole sequence is checked before anything is enabled, so a failed
// selection never leaves the registry partially modified. "exit"
// requests a clean stop with [ErrExitRequested]. An unknown name fails
// with [ErrInvalidFeature]. "zfs" enables the zfs hook and appends the
// module name "zfs" to the modules manifest, "luks" enables the luks
// hook, "basic" enables nothing beyond the always-on hooks.
func (r *Registry) Select(names []string) error {
	for _, name := range names {
		switch strings.TrimSpace(name) {
		case "zfs", "luks", "basic":
		case "exit":
			return ErrExitRequested
		default:
			return fmt.Errorf("%w: %q", ErrInvalidFeature, name)
		}
	}

	for _, name := range names {
		switch strings.TrimSpace(name) {
		case "zfs":
			r.hooks[Zfs].Enabled = true
			r.AppendModule("zfs")
		case "luks":
			r.hooks[Luks].Enabled = true
		}
	}

	return nil
}

// NamesFromMenuCodes translates interactive menu codes into feature
// names.
//
// Any code outside the menu degrades the entire selection to exactly
// ["exit"], never a partial list.
func NamesFromMenuCodes(codes []string) []string {
	names := make([]string, 0, len(codes))

	for _, code := range codes {
		number, err := strconv.Atoi(strings.TrimSpace(code))
		if err != nil {
			return []string{"exit"}
		}

		label, exists := menuFeatures[number]
		if !exists {
			return []string{"exit"}
		}

		names = append(names, strings.ToLower(label))
	}

	return names
}

// MenuEntries returns the interactive menu lines in display order.
func MenuEntries() []string {
	entries := make([]string, 0, len(menuFeatures))

	for _, code := range slices.Sorted(maps.Keys(menuFeatures)) {
		entries = append(entries, fmt.Sprintf("%d. %s", code, menuFeatures[code]))
	}

	return entries
}
