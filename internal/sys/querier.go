// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import "context"

// Querier is the single point of contact between the build pipeline and
// the live system.
//
// It has one production implementation, [ExecQuerier]. Keep it narrow so
// resolvers stay testable without a real host environment.
type Querier interface {
	// IsDynamicBinary reports whether the file at the given path is a
	// dynamically linked ELF file. A file that exists but is no ELF file
	// or is statically linked is reported as false without error.
	IsDynamicBinary(path string) (bool, error)

	// ListLibraries returns the absolute paths of all shared objects the
	// ELF file at the given path requires at run time. The returned list
	// is expected to be the fully flattened dependency chain, not just
	// the direct dependencies.
	ListLibraries(ctx context.Context, path string) ([]string, error)

	// FindLoader probes the given ordered list of glob patterns and
	// returns the path of the first match. It returns [ErrNoLoaderFound]
	// if no pattern matches any file.
	FindLoader(patterns []string) (string, error)

	// FindModule searches root for a file named "<name>.ko" and returns
	// its path. The match is case-insensitive. It returns
	// [ErrModuleNotFound] if no such file exists.
	FindModule(root, name string) (string, error)

	// RefreshModuleIndex rebuilds the kernel module dependency index for
	// the given kernel version. If baseDir is not empty, the index below
	// that directory is rebuilt instead of the system one.
	RefreshModuleIndex(ctx context.Context, baseDir, kernel string) error

	// ModuleDependencies returns the expanded dependency chain of the
	// named module as module file paths, resolved against the dependency
	// index of the given kernel version.
	ModuleDependencies(ctx context.Context, kernel, name string) ([]string, error)

	// LookPath resolves the path of an executable in PATH.
	LookPath(name string) (string, error)
}
