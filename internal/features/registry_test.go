// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package features_test

import (
	"testing"

	"github.com/aibor/initrdgen/internal/config"
	"github.com/aibor/initrdgen/internal/features"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Base: config.Base{
			Files:     []string{"/bin/busybox", "/bin/bash"},
			KmodLinks: []string{"modprobe", "insmod"},
			UdevPath:  "/lib/systemd/systemd-udevd",
		},
		Modules: config.Modules{
			Files: []string{"dm-crypt"},
		},
		Zfs: config.Zfs{
			Files:         []string{"/sbin/zpool"},
			OptionalFiles: []string{"/etc/zfs/zpool.cache"},
			UseMan:        true,
			ManFiles:      []string{"/usr/share/man/man8/zpool.8.bz2"},
		},
		Luks: config.Luks{
			Files:       []string{"/sbin/cryptsetup"},
			UseKeyfile:  true,
			KeyfilePath: "/root/keyfile",
		},
		Firmware: config.Firmware{
			Use:   true,
			Files: []string{"iwlwifi-3168-29.ucode"},
		},
	}
}

func TestNewRegistryDefaults(t *testing.T) {
	registry := features.NewRegistry(newTestConfig())

	assert.True(t, registry.Enabled(features.Base))
	assert.True(t, registry.Enabled(features.Modules))
	assert.False(t, registry.Enabled(features.Zfs))
	assert.False(t, registry.Enabled(features.Luks))
	assert.True(t, registry.Enabled(features.Firmware))
}

func TestRegistrySelect(t *testing.T) {
	tests := []struct {
		name        string
		selection   []string
		expectedErr error
		zfsEnabled  bool
		luksEnabled bool
		modules     []string
	}{
		{
			name:      "basic enables nothing extra",
			selection: []string{"basic"},
			modules:   []string{"dm-crypt"},
		},
		{
			name:       "zfs enables hook and appends module",
			selection:  []string{"zfs"},
			zfsEnabled: true,
			modules:    []string{"dm-crypt", "zfs"},
		},
		{
			name:        "luks enables hook",
			selection:   []string{"luks"},
			luksEnabled: true,
			modules:     []string{"dm-crypt"},
		},
		{
			name:        "combined",
			selection:   []string{"zfs", "luks"},
			zfsEnabled:  true,
			luksEnabled: true,
			modules:     []string{"dm-crypt", "zfs"},
		},
		{
			name:        "exit requested",
			selection:   []string{"exit"},
			expectedErr: features.ErrExitRequested,
			modules:     []string{"dm-crypt"},
		},
		{
			name:        "exit wins over later invalid name",
			selection:   []string{"exit", "bogus"},
			expectedErr: features.ErrExitRequested,
			modules:     []string{"dm-crypt"},
		},
		{
			name:        "invalid name",
			selection:   []string{"bogus"},
			expectedErr: features.ErrInvalidFeature,
			modules:     []string{"dm-crypt"},
		},
		{
			name:        "invalid name never partially applies",
			selection:   []string{"zfs", "bogus"},
			expectedErr: features.ErrInvalidFeature,
			modules:     []string{"dm-crypt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := features.NewRegistry(newTestConfig())

			err := registry.Select(tt.selection)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.zfsEnabled, registry.Enabled(features.Zfs))
			assert.Equal(t, tt.luksEnabled, registry.Enabled(features.Luks))
			assert.Equal(t, tt.modules, registry.Files(features.Modules))
		})
	}
}

func TestNamesFromMenuCodes(t *testing.T) {
	tests := []struct {
		name     string
		codes    []string
		expected []string
	}{
		{
			name:     "single",
			codes:    []string{"1"},
			expected: []string{"zfs"},
		},
		{
			name:     "all",
			codes:    []string{"1", "2", "3"},
			expected: []string{"zfs", "luks", "basic"},
		},
		{
			name:     "whitespace tolerated",
			codes:    []string{" 2 "},
			expected: []string{"luks"},
		},
		{
			name:     "out of range degrades completely",
			codes:    []string{"1", "4"},
			expected: []string{"exit"},
		},
		{
			name:     "zero degrades completely",
			codes:    []string{"0"},
			expected: []string{"exit"},
		},
		{
			name:     "not a number degrades completely",
			codes:    []string{"zfs"},
			expected: []string{"exit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, features.NamesFromMenuCodes(tt.codes))
		})
	}
}

func TestRegistryAccessorsReturnCopies(t *testing.T) {
	registry := features.NewRegistry(newTestConfig())

	files := registry.Files(features.Base)
	files[0] = "/bin/mangled"

	assert.Equal(t, []string{"/bin/busybox", "/bin/bash"}, registry.Files(features.Base))
}

func TestMenuEntries(t *testing.T) {
	expected := []string{"1. ZFS", "2. LUKS", "3. Basic"}
	assert.Equal(t, expected, features.MenuEntries())
}
