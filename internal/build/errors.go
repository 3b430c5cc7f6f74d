// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package build

import "errors"

var (
	// ErrNotSuperuser is returned if the process does not run as root.
	ErrNotSuperuser = errors.New("must be run as root")

	// ErrUnsupportedArchitecture is returned on anything but x86_64.
	ErrUnsupportedArchitecture = errors.New("architecture not supported")

	// ErrModulesDirMissing is returned if the module directory for the
	// selected kernel version does not exist.
	ErrModulesDirMissing = errors.New("kernel modules directory does not exist")

	// ErrMissingPreliminaryTool is returned if a host tool required for
	// the build is not installed.
	ErrMissingPreliminaryTool = errors.New("preliminary build tool missing")

	// ErrMissingBinary is returned if a hook's required file does not
	// exist on the host.
	ErrMissingBinary = errors.New("required file does not exist")

	// ErrFirmwareDirMissing is returned if firmware copying is enabled
	// but the firmware source directory is absent.
	ErrFirmwareDirMissing = errors.New("firmware directory does not exist")

	// ErrExternalToolNotFound is returned if a tool needed during the
	// finishing steps cannot be resolved.
	ErrExternalToolNotFound = errors.New("external tool not found")

	// ErrIndexRefresh is returned if the module dependency index inside
	// the build root could not be generated.
	ErrIndexRefresh = errors.New("module dependency index refresh failed")

	// ErrFinishing is returned if one of the finishing steps fails.
	ErrFinishing = errors.New("finishing step failed")
)
