// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package features

import "errors"

var (
	// ErrInvalidFeature is returned if a selected feature name is
	// unknown.
	ErrInvalidFeature = errors.New("invalid feature")

	// ErrExitRequested is returned if the user selected "exit". It is
	// not a failure; the caller terminates successfully without building
	// an image.
	ErrExitRequested = errors.New("exit requested")
)
