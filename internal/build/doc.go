// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package build sequences the full image build pipeline.
//
// The pipeline is a strictly sequential single pass: host verification,
// dependency resolution, staging, module closure, firmware, symlink
// fixups, udev staging, finishing metadata and packaging. Every stage
// returns an error on failure; the caller removes the build root and
// terminates. There is no partial success state.
package build
