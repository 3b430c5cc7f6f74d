// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aibor/initrdgen/internal/features"
)

// copyUdev stages the udev configuration and library trees and relocates
// the udev daemon to its canonical place in the image.
func (b *builder) copyUdev(context.Context) error {
	for _, dir := range []string{
		b.Config.UdevConfigDirectory,
		b.Config.UdevLibDirectory,
	} {
		if !dirExists(dir) {
			continue
		}

		err := b.copier.CopyTree(dir)
		if err != nil {
			return err
		}
	}

	return b.relocateUdevd()
}

// relocateUdevd moves the staged udev daemon to <sbin>/udevd so the init
// script finds it regardless of where the host installs it. An emptied
// source directory is removed; it may also hold shared systemd objects,
// in which case it stays.
func (b *builder) relocateUdevd() error {
	udevPath := b.Registry.Hook(features.Base).UdevPath
	sbinUdevd := filepath.Join(b.Config.SystemDirectory.Sbin, "udevd")

	if udevPath == "" || udevPath == sbinUdevd {
		return nil
	}

	stagedUdevd := b.Root.Join(udevPath)

	info, err := os.Stat(stagedUdevd)
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}

	err = os.Rename(stagedUdevd, b.Root.Join(sbinUdevd))
	if err != nil {
		return fmt.Errorf("relocate udevd: %w", err)
	}

	stagedDir := filepath.Dir(stagedUdevd)

	entries, err := os.ReadDir(stagedDir)
	if err == nil && len(entries) == 0 {
		err = os.Remove(stagedDir)
		if err != nil {
			return fmt.Errorf("remove emptied %s: %w", stagedDir, err)
		}
	}

	return nil
}
