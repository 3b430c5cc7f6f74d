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
	"github.com/aibor/initrdgen/internal/staging"
)

// copyFirmware stages firmware per configuration: either the whole
// firmware directory, or the listed files and directories. Individual
// entries are tolerated to be absent, the firmware source directory
// itself is not.
func (b *builder) copyFirmware(context.Context) error {
	firmware := b.Registry.Hook(features.Firmware)
	if !firmware.Enabled {
		return nil
	}

	b.Console.Info("Copying firmware ...")

	info, err := os.Stat(b.Config.FirmwareDirectory)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrFirmwareDirMissing, b.Config.FirmwareDirectory)
	}

	if firmware.CopyAll {
		return b.copier.CopyTree(b.Config.FirmwareDirectory)
	}

	for _, file := range b.Registry.Files(features.Firmware) {
		err := b.copier.Copy(
			file,
			staging.WithPrefix(b.Config.FirmwareDirectory),
			staging.TolerateMissing(),
		)
		if err != nil {
			return err
		}
	}

	for _, dir := range b.Registry.Directories(features.Firmware) {
		sourceDir := filepath.Join(b.Config.FirmwareDirectory, dir)

		_, err := os.Stat(sourceDir)
		if err != nil {
			b.Console.Warn("Unable to copy firmware directory: %s", dir)
			continue
		}

		err = b.copier.CopyTree(sourceDir)
		if err != nil {
			return err
		}
	}

	return nil
}
