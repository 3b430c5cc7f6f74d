// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package resolve

import "errors"

var (
	// ErrMissingBinary is returned if a required file cannot be
	// classified because it is missing or unreadable.
	ErrMissingBinary = errors.New("required binary missing")

	// ErrNoLibcFound is returned if no libc dynamic loader exists on the
	// system.
	ErrNoLibcFound = errors.New("no libc interpreter found")

	// ErrModuleNotFound is returned if a requested kernel module has no
	// module file under the search root.
	ErrModuleNotFound = errors.New("module does not exist")

	// ErrIndexRefresh is returned if the module dependency index could
	// not be rebuilt.
	ErrIndexRefresh = errors.New("module dependency index refresh failed")
)
