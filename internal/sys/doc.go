// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sys provides introspection of the live system.
//
// All queries that the build pipeline runs against the host (ELF
// classification, shared library listing, kernel module lookup and
// dependency expansion, dynamic loader discovery) are gathered behind the
// narrow [Querier] interface. [ExecQuerier] is the production
// implementation that shells out to the usual OS tools. A deterministic
// test double is provided in testing.go.
package sys
