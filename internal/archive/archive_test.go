// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive_test

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/initrdgen/internal/archive"
	"github.com/cavaliergopher/cpio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
}

// readEntries decompresses the artifact and returns its entries as path
// to content map. Directories and links map to empty strings.
func readEntries(t *testing.T, path string) map[string]string {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)

	t.Cleanup(func() { _ = file.Close() })

	gzReader, err := gzip.NewReader(file)
	require.NoError(t, err)

	entries := make(map[string]string)

	cpioReader := cpio.NewReader(gzReader)

	for {
		hdr, err := cpioReader.Next()
		if err == io.EOF {
			break
		}

		require.NoError(t, err)

		var content []byte
		if hdr.Mode.IsRegular() {
			content, err = io.ReadAll(cpioReader)
			require.NoError(t, err)
		}

		entries[hdr.Name] = string(content)
	}

	return entries
}

func TestWrite(t *testing.T) {
	buildRoot := t.TempDir()

	writeFile(t, filepath.Join(buildRoot, "init"), "#!/bin/sh\n")
	writeFile(t, filepath.Join(buildRoot, "bin", "busybox"), "busybox")
	writeFile(t, filepath.Join(buildRoot, "lib64", "libc.so.6"), "libc")
	require.NoError(t, os.MkdirAll(filepath.Join(buildRoot, "proc"), 0o755))
	require.NoError(t, os.Symlink("bash", filepath.Join(buildRoot, "bin", "sh")))

	outPath := filepath.Join(t.TempDir(), "initrd-6.6.30")

	require.NoError(t, archive.Write(buildRoot, outPath))

	entries := readEntries(t, outPath)

	assert.Equal(t, "#!/bin/sh\n", entries["init"])
	assert.Equal(t, "busybox", entries["bin/busybox"])
	assert.Equal(t, "libc", entries["lib64/libc.so.6"])
	assert.Contains(t, entries, "proc")
	assert.Contains(t, entries, "bin/sh")
	assert.NotContains(t, entries, ".")
}

func TestWriteIdempotent(t *testing.T) {
	buildRoot := t.TempDir()
	writeFile(t, filepath.Join(buildRoot, "init"), "#!/bin/sh\n")

	outPath := filepath.Join(t.TempDir(), "initrd-6.6.30")

	require.NoError(t, archive.Write(buildRoot, outPath))
	require.NoError(t, archive.Write(buildRoot, outPath))

	entries := readEntries(t, outPath)
	assert.Len(t, entries, 1)
}

func TestWriteMissingRoot(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "initrd-6.6.30")

	err := archive.Write(filepath.Join(t.TempDir(), "nope"), outPath)
	require.ErrorIs(t, err, archive.ErrPackaging)
	assert.NoFileExists(t, outPath)
}
