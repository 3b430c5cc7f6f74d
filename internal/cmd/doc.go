// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd implements the initrdgen command line interface.
//
// It parses flags, runs the interactive prompts where flags are absent,
// drives the build pipeline and maps errors to exit codes.
package cmd
