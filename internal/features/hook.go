// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package features holds the per-build registry of optional capability
// hooks and the user facing feature selection.
package features

// Name identifies a hook.
type Name string

const (
	Base     Name = "base"
	Modules  Name = "modules"
	Zfs      Name = "zfs"
	Luks     Name = "luks"
	Firmware Name = "firmware"
)

// Hook is the configuration record of one capability.
//
// Manifests are populated once from the settings document when the
// registry is created. The only mutation afterwards is the dynamic
// append of module names during feature selection.
type Hook struct {
	Enabled         bool
	ManPagesEnabled bool

	RequiredFiles       []string
	OptionalFiles       []string
	RequiredDirectories []string
	ManPages            []string

	// Base specific.
	KmodLinks []string
	UdevPath  string

	// Luks specific.
	UseKeyfile         bool
	KeyfilePath        string
	UseDetachedHeader  bool
	DetachedHeaderPath string

	// Firmware specific.
	CopyAll bool
}
