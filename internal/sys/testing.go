// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"context"
	"fmt"
)

// StubQuerier implements [Querier] with deterministic canned answers for
// tests.
//
// The zero value answers every query with a not-found style error.
type StubQuerier struct {
	// Binaries maps file paths to their classification result. Paths not
	// present are treated as missing files.
	Binaries map[string]bool

	// Libraries maps binary paths to their flattened dependency chain.
	Libraries map[string][]string

	// Loader is returned by FindLoader if not empty.
	Loader string

	// Modules maps module names to the module file path found for them.
	Modules map[string]string

	// ModuleDeps maps module names to their expanded dependency chain.
	ModuleDeps map[string][]string

	// RefreshErr is returned by RefreshModuleIndex.
	RefreshErr error

	// Programs maps program names to their resolved paths for LookPath.
	Programs map[string]string

	// RefreshCalls records the baseDir of each RefreshModuleIndex call.
	RefreshCalls []string
}

var _ Querier = (*StubQuerier)(nil)

func (q *StubQuerier) IsDynamicBinary(path string) (bool, error) {
	isBinary, exists := q.Binaries[path]
	if !exists {
		return false, fmt.Errorf("%w: stat %s", ErrEmptyPath, path)
	}

	return isBinary, nil
}

func (q *StubQuerier) ListLibraries(
	_ context.Context,
	path string,
) ([]string, error) {
	libs, exists := q.Libraries[path]
	if !exists {
		return nil, &CommandError{Name: "ldd", Err: fmt.Errorf("no such file: %s", path)}
	}

	return libs, nil
}

func (q *StubQuerier) FindLoader(patterns []string) (string, error) {
	if q.Loader == "" {
		return "", ErrNoLoaderFound
	}

	return q.Loader, nil
}

func (q *StubQuerier) FindModule(_, name string) (string, error) {
	path, exists := q.Modules[name]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrModuleNotFound, name)
	}

	return path, nil
}

func (q *StubQuerier) RefreshModuleIndex(
	_ context.Context,
	baseDir, _ string,
) error {
	q.RefreshCalls = append(q.RefreshCalls, baseDir)
	return q.RefreshErr
}

func (q *StubQuerier) ModuleDependencies(
	_ context.Context,
	_, name string,
) ([]string, error) {
	deps, exists := q.ModuleDeps[name]
	if !exists {
		return nil, &CommandError{Name: "modprobe", Err: fmt.Errorf("module not in index: %s", name)}
	}

	return deps, nil
}

func (q *StubQuerier) LookPath(name string) (string, error) {
	path, exists := q.Programs[name]
	if !exists {
		return "", fmt.Errorf("program not found: %s", name)
	}

	return path, nil
}
