// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"context"
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
)

// ExecQuerier implements [Querier] against the running system.
//
// ELF classification is done natively with [debug/elf]. Everything else
// shells out to the OS tools (ldd, depmod, modprobe), which are expected
// to be present. No timeouts are imposed; a stuck tool stalls the build.
type ExecQuerier struct{}

var _ Querier = (*ExecQuerier)(nil)

// IsDynamicBinary implements [Querier.IsDynamicBinary].
//
// A file counts as dynamic if it has a PT_INTERP program header or a
// dynamic section. Shared objects without interpreter are included since
// they still need their linked libraries resolved.
func (ExecQuerier) IsDynamicBinary(path string) (bool, error) {
	file, err := elf.Open(path)
	if err != nil {
		var formatErr *elf.FormatError

		// Files too short to hold an ELF header fail with EOF instead
		// of a format error. Both are just not ELF files.
		switch {
		case errors.As(err, &formatErr),
			errors.Is(err, io.EOF),
			errors.Is(err, io.ErrUnexpectedEOF):
			return false, nil
		}

		return false, fmt.Errorf("open ELF: %w", err)
	}
	defer file.Close()

	for _, prog := range file.Progs {
		if prog.Type == elf.PT_INTERP {
			return true, nil
		}
	}

	return file.Section(".dynamic") != nil, nil
}

// ListLibraries implements [Querier.ListLibraries] by running ldd.
//
// glibc's ldd runs the dynamic loader in trace mode, so its output
// already contains the complete flattened dependency chain.
func (ExecQuerier) ListLibraries(
	ctx context.Context,
	path string,
) ([]string, error) {
	return Ldd(ctx, path)
}

// FindLoader implements [Querier.FindLoader].
func (ExecQuerier) FindLoader(patterns []string) (string, error) {
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return "", fmt.Errorf("glob %s: %w", pattern, err)
		}

		if len(matches) > 0 {
			return matches[0], nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNoLoaderFound, strings.Join(patterns, ", "))
}

// FindModule implements [Querier.FindModule].
func (ExecQuerier) FindModule(root, name string) (string, error) {
	wanted := name + ".ko"

	var found string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if strings.EqualFold(d.Name(), wanted) {
			found = path
			return fs.SkipAll
		}

		return nil
	})
	if err != nil {
		return "", fmt.Errorf("search %s: %w", root, err)
	}

	if found == "" {
		return "", fmt.Errorf("%w: %s", ErrModuleNotFound, name)
	}

	return found, nil
}

// RefreshModuleIndex implements [Querier.RefreshModuleIndex] by running
// depmod.
func (ExecQuerier) RefreshModuleIndex(
	ctx context.Context,
	baseDir, kernel string,
) error {
	args := []string{}
	if baseDir != "" {
		args = append(args, "-b", baseDir)
	}

	args = append(args, kernel)

	return Run(ctx, "depmod", args...)
}

// ModuleDependencies implements [Querier.ModuleDependencies] by running
// modprobe in show-depends mode, which reports the already expanded
// dependency chain, dependencies first.
func (ExecQuerier) ModuleDependencies(
	ctx context.Context,
	kernel, name string,
) ([]string, error) {
	output, err := Output(ctx, "modprobe", "-S", kernel, "--show-depends", name)
	if err != nil {
		return nil, err
	}

	return parseModuleDependencies(output), nil
}

// LookPath implements [Querier.LookPath].
func (ExecQuerier) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("look up %s: %w", name, err)
	}

	return path, nil
}

// parseModuleDependencies extracts the module file paths from modprobe
// show-depends output. Lines look like "insmod /path/to/dep.ko" or
// "builtin name"; the second field is taken either way, matching the
// original field-based extraction.
func parseModuleDependencies(output string) []string {
	var paths []string

	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		path := strings.TrimSpace(fields[1])
		if path != "" {
			paths = append(paths, path)
		}
	}

	return paths
}
