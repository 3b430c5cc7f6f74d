// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/initrdgen/internal/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecQuerierFindLoader(t *testing.T) {
	dir := t.TempDir()

	loader := filepath.Join(dir, "lib64", "ld-linux-x86-64.so.2")
	require.NoError(t, os.MkdirAll(filepath.Dir(loader), 0o755))
	require.NoError(t, os.WriteFile(loader, []byte{}, 0o755))

	querier := sys.ExecQuerier{}

	t.Run("first pattern wins", func(t *testing.T) {
		patterns := []string{
			filepath.Join(dir, "lib64", "ld-linux-x86-64.so*"),
			filepath.Join(dir, "lib", "ld-musl-x86_64.so*"),
		}

		actual, err := querier.FindLoader(patterns)
		require.NoError(t, err)
		assert.Equal(t, loader, actual)
	})

	t.Run("fallback pattern", func(t *testing.T) {
		patterns := []string{
			filepath.Join(dir, "lib", "ld-musl-x86_64.so*"),
			filepath.Join(dir, "lib64", "ld-linux-x86-64.so*"),
		}

		actual, err := querier.FindLoader(patterns)
		require.NoError(t, err)
		assert.Equal(t, loader, actual)
	})

	t.Run("no match", func(t *testing.T) {
		patterns := []string{
			filepath.Join(dir, "lib", "ld-musl-x86_64.so*"),
		}

		_, err := querier.FindLoader(patterns)
		require.ErrorIs(t, err, sys.ErrNoLoaderFound)
	})
}

func TestExecQuerierFindModule(t *testing.T) {
	dir := t.TempDir()

	modPath := filepath.Join(dir, "kernel", "fs", "zfs", "zfs.ko")
	require.NoError(t, os.MkdirAll(filepath.Dir(modPath), 0o755))
	require.NoError(t, os.WriteFile(modPath, []byte{}, 0o644))

	querier := sys.ExecQuerier{}

	t.Run("found", func(t *testing.T) {
		actual, err := querier.FindModule(dir, "zfs")
		require.NoError(t, err)
		assert.Equal(t, modPath, actual)
	})

	t.Run("case insensitive", func(t *testing.T) {
		actual, err := querier.FindModule(dir, "ZFS")
		require.NoError(t, err)
		assert.Equal(t, modPath, actual)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := querier.FindModule(dir, "foo")
		require.ErrorIs(t, err, sys.ErrModuleNotFound)
	})
}

func TestExecQuerierIsDynamicBinary(t *testing.T) {
	querier := sys.ExecQuerier{}

	t.Run("not an ELF file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "script")
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))

		isBinary, err := querier.IsDynamicBinary(path)
		require.NoError(t, err)
		assert.False(t, isBinary)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := querier.IsDynamicBinary(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
	})
}
