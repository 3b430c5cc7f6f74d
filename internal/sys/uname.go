// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Machine returns the hardware identifier of the running system, like
// "x86_64".
func Machine() (string, error) {
	name, err := uname()
	if err != nil {
		return "", err
	}

	return unix.ByteSliceToString(name.Machine[:]), nil
}

// KernelRelease returns the release string of the running kernel, like
// "6.6.30-gentoo".
func KernelRelease() (string, error) {
	name, err := uname()
	if err != nil {
		return "", err
	}

	return unix.ByteSliceToString(name.Release[:]), nil
}

// IsSuperuser reports whether the process runs with the superuser
// identity.
func IsSuperuser() bool {
	return unix.Geteuid() == 0
}

func uname() (*unix.Utsname, error) {
	var name unix.Utsname

	err := unix.Uname(&name)
	if err != nil {
		return nil, fmt.Errorf("uname: %w", err)
	}

	return &name, nil
}
