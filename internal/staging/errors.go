// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package staging

import "errors"

// ErrCopyFailed is returned if a file could not be materialized into the
// build root or failed the post-copy verification.
var ErrCopyFailed = errors.New("unable to copy")
