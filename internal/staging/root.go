// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package staging materializes resolved files into the build root that
// becomes the image's file system.
package staging

import (
	"fmt"
	"os"
	"path/filepath"
)

const rootDirName = "initrdgen-root"

// Root is the build root directory tree. It is exclusively owned by one
// build and removed on both success and failure.
type Root struct {
	Path string
}

// NewRoot returns the [Root] below the given parent directory.
//
// The location is deterministic so a stale tree left behind by a crashed
// build is found and removed by the next run.
func NewRoot(parent string) Root {
	return Root{Path: filepath.Join(parent, rootDirName)}
}

// Scaffold creates the given directories below the root.
func (r Root) Scaffold(dirs []string) error {
	for _, dir := range dirs {
		err := os.MkdirAll(r.Join(dir), 0o755)
		if err != nil {
			return fmt.Errorf("scaffold: %w", err)
		}
	}

	return nil
}

// Join returns the absolute path of the given in-image path below the
// root.
func (r Root) Join(path string) string {
	return filepath.Join(r.Path, path)
}

// Exists reports whether the root directory exists.
func (r Root) Exists() bool {
	info, err := os.Stat(r.Path)
	return err == nil && info.IsDir()
}

// Remove deletes the whole build root tree. Removing a root that does
// not exist is not an error.
func (r Root) Remove() error {
	err := os.RemoveAll(r.Path)
	if err != nil {
		return fmt.Errorf("remove build root: %w", err)
	}

	return nil
}
