// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package resolve

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aibor/initrdgen/internal/sys"
)

// ModuleResolver expands kernel module names into the closure of module
// files required to load them.
type ModuleResolver struct {
	Query sys.Querier
}

// Resolve locates the module file for each requested name under
// searchRoot, refreshes the module dependency index for the given kernel
// version and returns the union of all expanded dependency chains,
// deduplicated and sorted.
//
// An empty request resolves to an empty closure without touching the
// index. A name without module file fails with [ErrModuleNotFound]; a
// failed index rebuild fails with [ErrIndexRefresh].
func (r *ModuleResolver) Resolve(
	ctx context.Context,
	names []string,
	kernel, searchRoot string,
) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	moduleFiles := make(map[string]struct{})

	for _, name := range names {
		path, err := r.Query.FindModule(searchRoot, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrModuleNotFound, name, err)
		}

		moduleFiles[path] = struct{}{}
	}

	// The dependency index may be stale against the live module tree.
	// Rebuild it before querying.
	err := r.Query.RefreshModuleIndex(ctx, "", kernel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexRefresh, err)
	}

	closure := make(map[string]struct{})

	for _, path := range slices.Sorted(maps.Keys(moduleFiles)) {
		name := strings.TrimSuffix(filepath.Base(path), ".ko")

		deps, err := r.Query.ModuleDependencies(ctx, kernel, name)
		if err != nil {
			return nil, fmt.Errorf("expand module %s: %w", name, err)
		}

		for _, dep := range deps {
			dep = strings.TrimSpace(dep)
			if dep != "" {
				closure[dep] = struct{}{}
			}
		}
	}

	return slices.Sorted(maps.Keys(closure)), nil
}
