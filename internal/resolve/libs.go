// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/aibor/initrdgen/internal/sys"
)

// Resolver computes the shared library closure for the files that go
// into the image.
type Resolver struct {
	Query sys.Querier

	// LoaderPatterns is the ordered list of glob patterns probed for the
	// system's dynamic loader. The first match wins.
	LoaderPatterns []string
}

// Result holds the outcome of a [Resolver.Resolve] run.
//
// Binaries and Libraries are deduplicated and sorted. Loader is always a
// member of Libraries.
type Result struct {
	Binaries  []string
	Libraries []string
	Loader    string
}

// LoaderPatternsFor builds the default loader candidate patterns for the
// given system library directories, covering the glibc and musl loader
// locations.
func LoaderPatternsFor(lib, lib64 string) []string {
	return []string{
		lib64 + "/ld-linux-x86-64.so*",
		lib + "/ld-musl-x86_64.so*",
	}
}

// Resolve classifies the given required and optional files and computes
// the transitive shared library closure of all dynamically linked ones.
//
// A required file that cannot be classified fails with
// [ErrMissingBinary]. Optional files that are missing are skipped. If no
// loader pattern matches, it fails with [ErrNoLibcFound]. The library
// listing query is trusted to report the fully flattened dependency
// chain, so no recursive expansion is done here.
func (r *Resolver) Resolve(
	ctx context.Context,
	required, optional []string,
) (*Result, error) {
	binaries := make(map[string]struct{})

	for _, path := range required {
		isBinary, err := r.Query.IsDynamicBinary(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMissingBinary, path, err)
		}

		if isBinary {
			binaries[path] = struct{}{}
		}
	}

	for _, path := range optional {
		isBinary, err := r.Query.IsDynamicBinary(path)
		if err != nil {
			slog.Debug("Skipping optional file",
				slog.String("path", path),
				slog.Any("error", err))

			continue
		}

		if isBinary {
			binaries[path] = struct{}{}
		}
	}

	libraries := make(map[string]struct{})

	// Everything else transitively depends on the loader, so it is part
	// of the closure unconditionally.
	loader, err := r.Query.FindLoader(r.LoaderPatterns)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoLibcFound, err)
	}

	libraries[loader] = struct{}{}

	for _, path := range slices.Sorted(maps.Keys(binaries)) {
		libs, err := r.Query.ListLibraries(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("list libraries of %s: %w", path, err)
		}

		for _, lib := range libs {
			absPath, err := sys.AbsolutePath(lib)
			if err != nil {
				return nil, fmt.Errorf("library of %s: %w", path, err)
			}

			libraries[absPath] = struct{}{}
		}
	}

	result := &Result{
		Binaries:  slices.Sorted(maps.Keys(binaries)),
		Libraries: slices.Sorted(maps.Keys(libraries)),
		Loader:    loader,
	}

	return result, nil
}
