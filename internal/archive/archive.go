// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package archive packages the build root into the compressed image
// artifact.
package archive

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/pgzip"
)

// Write walks the build root and writes it as gzip compressed newc CPIO
// archive to outPath.
//
// The artifact is verified to exist afterwards. On error a partially
// written artifact is removed.
func Write(buildRoot, outPath string) error {
	err := write(buildRoot, outPath)
	if err != nil {
		_ = os.Remove(outPath)
		return fmt.Errorf("%w: %v", ErrPackaging, err)
	}

	info, err := os.Stat(outPath)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: artifact missing: %s", ErrPackaging, outPath)
	}

	return nil
}

func write(buildRoot, outPath string) error {
	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	defer outFile.Close()

	gzWriter, err := pgzip.NewWriterLevel(outFile, pgzip.BestCompression)
	if err != nil {
		return fmt.Errorf("create compressor: %w", err)
	}
	defer gzWriter.Close()

	cpioWriter := NewCPIOWriter(gzWriter)
	defer cpioWriter.Close()

	err = writeTree(cpioWriter, buildRoot)
	if err != nil {
		return err
	}

	err = cpioWriter.Close()
	if err != nil {
		return err
	}

	err = gzWriter.Close()
	if err != nil {
		return fmt.Errorf("close compressor: %w", err)
	}

	return outFile.Close()
}

// writeTree adds every entry below buildRoot to the writer, with paths
// relative to the root.
func writeTree(writer *CPIOWriter, buildRoot string) error {
	return filepath.WalkDir(buildRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(buildRoot, path)
		if err != nil {
			return fmt.Errorf("relative path: %w", err)
		}

		if relPath == "." {
			return nil
		}

		switch {
		case d.IsDir():
			return writer.WriteDirectory(relPath)
		case d.Type()&fs.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return fmt.Errorf("read link: %w", err)
			}

			return writer.WriteLink(relPath, target)
		case d.Type().IsRegular():
			source, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open source: %w", err)
			}
			defer source.Close()

			return writer.WriteRegular(relPath, source)
		default:
			// Device nodes and the like are created by the image's init
			// at boot, not packaged.
			return nil
		}
	})
}
