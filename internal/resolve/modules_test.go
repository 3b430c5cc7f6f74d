// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package resolve_test

import (
	"errors"
	"testing"

	"github.com/aibor/initrdgen/internal/resolve"
	"github.com/aibor/initrdgen/internal/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKernel = "6.6.30-gentoo"
	testRoot   = "/lib/modules/6.6.30-gentoo"
)

func newModuleStub() *sys.StubQuerier {
	return &sys.StubQuerier{
		Modules: map[string]string{
			"zfs":      testRoot + "/extra/zfs/zfs.ko",
			"dm-crypt": testRoot + "/kernel/drivers/md/dm-crypt.ko",
		},
		ModuleDeps: map[string][]string{
			"zfs": {
				testRoot + "/extra/spl/spl.ko",
				testRoot + "/extra/zfs/zfs.ko",
			},
			"dm-crypt": {
				testRoot + "/kernel/drivers/md/dm-mod.ko",
				testRoot + "/kernel/drivers/md/dm-crypt.ko",
			},
		},
	}
}

func TestModuleResolverResolve(t *testing.T) {
	stub := newModuleStub()
	resolver := resolve.ModuleResolver{Query: stub}

	closure, err := resolver.Resolve(
		t.Context(),
		[]string{"zfs", "dm-crypt"},
		testKernel,
		testRoot,
	)
	require.NoError(t, err)

	expected := []string{
		testRoot + "/extra/spl/spl.ko",
		testRoot + "/extra/zfs/zfs.ko",
		testRoot + "/kernel/drivers/md/dm-crypt.ko",
		testRoot + "/kernel/drivers/md/dm-mod.ko",
	}
	assert.Equal(t, expected, closure)

	// The live index is refreshed, not one below a base directory.
	assert.Equal(t, []string{""}, stub.RefreshCalls)
}

func TestModuleResolverResolveOrderIndependent(t *testing.T) {
	resolver := resolve.ModuleResolver{Query: newModuleStub()}

	first, err := resolver.Resolve(
		t.Context(), []string{"zfs", "dm-crypt"}, testKernel, testRoot,
	)
	require.NoError(t, err)

	second, err := resolver.Resolve(
		t.Context(), []string{"dm-crypt", "zfs"}, testKernel, testRoot,
	)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestModuleResolverResolveEmptyRequest(t *testing.T) {
	stub := newModuleStub()
	resolver := resolve.ModuleResolver{Query: stub}

	closure, err := resolver.Resolve(t.Context(), nil, testKernel, testRoot)
	require.NoError(t, err)

	assert.Empty(t, closure)
	assert.Empty(t, stub.RefreshCalls)
}

func TestModuleResolverResolveModuleNotFound(t *testing.T) {
	resolver := resolve.ModuleResolver{Query: newModuleStub()}

	_, err := resolver.Resolve(t.Context(), []string{"foo"}, testKernel, testRoot)
	require.ErrorIs(t, err, resolve.ErrModuleNotFound)
}

func TestModuleResolverResolveIndexRefreshFails(t *testing.T) {
	stub := newModuleStub()
	stub.RefreshErr = errors.New("depmod exploded")

	resolver := resolve.ModuleResolver{Query: stub}

	_, err := resolver.Resolve(t.Context(), []string{"zfs"}, testKernel, testRoot)
	require.ErrorIs(t, err, resolve.ErrIndexRefresh)
}
