// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package resolve computes the runtime dependency closures of the image
// contents.
//
// [Resolver] turns the enabled hooks' file manifests into the
// deduplicated set of dynamically linked binaries and the transitive
// closure of the shared libraries they need, including the system's
// dynamic loader. [ModuleResolver] expands requested kernel module names
// into the closure of module files required to load them.
//
// Both consult a [sys.Querier] only, so they are fully testable against
// the canned test double.
package resolve
