// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import "errors"

// ErrMissingField is returned if a required settings field is empty.
var ErrMissingField = errors.New("missing required settings field")
