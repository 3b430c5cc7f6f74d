// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package staging

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Copier copies host files into the build root, mirroring their host
// path below it.
type Copier struct {
	Root Root
}

type copyOptions struct {
	prefix          string
	rename          string
	tolerateMissing bool
}

// Option modifies a single [Copier.Copy] call.
type Option func(*copyOptions)

// WithPrefix prepends the given directory to the in-image destination
// path.
func WithPrefix(dir string) Option {
	return func(o *copyOptions) { o.prefix = dir }
}

// WithRename replaces the base name of the destination path.
func WithRename(name string) Option {
	return func(o *copyOptions) { o.rename = name }
}

// TolerateMissing downgrades a failed post-copy verification to a
// warning. Used for files that may legitimately be absent, like man
// pages.
func TolerateMissing() Option {
	return func(o *copyOptions) { o.tolerateMissing = true }
}

// Copy copies the file or directory at source into the build root.
//
// The destination is the source path mirrored below the root, optionally
// prefixed and renamed. An existing regular file at the destination is
// replaced, so re-running a build step never leaves stale content.
// Missing parent directories are created. A directory source only
// creates an empty directory marker; use [Copier.CopyTree] for whole
// trees.
//
// After a file copy the destination must exist; a violation fails with
// [ErrCopyFailed] unless [TolerateMissing] is given, in which case it is
// logged and the copy is skipped.
func (c *Copier) Copy(source string, opts ...Option) error {
	var options copyOptions
	for _, opt := range opts {
		opt(&options)
	}

	target := source
	if options.prefix != "" {
		target = filepath.Join(options.prefix, source)
	}

	if options.rename != "" {
		target = filepath.Join(filepath.Dir(target), options.rename)
	}

	dest := c.Root.Join(target)

	sourceInfo, sourceErr := os.Stat(source)

	switch {
	case fileExists(dest):
		// Idempotent replace. Only reached if the source still exists;
		// otherwise verification below decides.
		if sourceErr == nil && sourceInfo.Mode().IsRegular() {
			err := os.Remove(dest)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrCopyFailed, err)
			}

			err = copyFile(source, dest, sourceInfo.Mode())
			if err != nil {
				return fmt.Errorf("%w: %v", ErrCopyFailed, err)
			}
		}
	case sourceErr == nil && sourceInfo.Mode().IsRegular():
		err := os.MkdirAll(filepath.Dir(dest), 0o755)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCopyFailed, err)
		}

		err = copyFile(source, dest, sourceInfo.Mode())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCopyFailed, err)
		}
	case sourceErr == nil && sourceInfo.IsDir():
		// Empty directory marker only.
		err := os.MkdirAll(dest, 0o755)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCopyFailed, err)
		}

		return nil
	}

	if !fileExists(dest) {
		if options.tolerateMissing {
			slog.Warn("Unable to copy", slog.String("source", source))
			return nil
		}

		return fmt.Errorf("%w: %s", ErrCopyFailed, source)
	}

	return nil
}

// SafeCopy copies a single known-critical file into destDir below the
// build root and verifies it arrived. There is no tolerant mode; a
// missing source or failed verification is always an error.
//
// If name is empty the source base name is kept.
func (c *Copier) SafeCopy(source, destDir, name string) error {
	if name == "" {
		name = filepath.Base(source)
	}

	sourceInfo, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("%w: source: %v", ErrCopyFailed, err)
	}

	destPath := filepath.Join(c.Root.Join(destDir), name)

	err = os.MkdirAll(filepath.Dir(destPath), 0o755)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCopyFailed, err)
	}

	err = copyFile(source, destPath, sourceInfo.Mode())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCopyFailed, err)
	}

	if !fileExists(destPath) {
		return fmt.Errorf("%w: %s", ErrCopyFailed, name)
	}

	return nil
}

// CopyTree copies the directory tree at sourceDir into the build root,
// mirrored at the same path. Regular files, directories and symbolic
// links are recreated; modes are preserved.
func (c *Copier) CopyTree(sourceDir string) error {
	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		dest := c.Root.Join(path)

		switch {
		case d.IsDir():
			return os.MkdirAll(dest, 0o755)
		case d.Type()&fs.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}

			// Replace like the file case so tree copies are idempotent
			// as well.
			_ = os.Remove(dest)

			return os.Symlink(target, dest)
		case d.Type().IsRegular():
			info, err := d.Info()
			if err != nil {
				return err
			}

			_ = os.Remove(dest)

			return copyFile(path, dest, info.Mode())
		default:
			return nil
		}
	})
	if err != nil {
		return fmt.Errorf("%w: tree %s: %v", ErrCopyFailed, sourceDir, err)
	}

	return nil
}

func copyFile(source, dest string, mode fs.FileMode) error {
	sourceFile, err := os.Open(source)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(
		dest,
		os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
		mode.Perm(),
	)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	if err != nil {
		return err
	}

	return destFile.Close()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
