// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import "errors"

// ErrPackaging is returned if the image artifact could not be written.
var ErrPackaging = errors.New("image packaging failed")
