// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPath is returned if a given file path is empty.
	ErrEmptyPath = errors.New("path must not be empty")

	// ErrNoLoaderFound is returned if none of the dynamic loader candidate
	// patterns matches a file on the system.
	ErrNoLoaderFound = errors.New("no dynamic loader found")

	// ErrModuleNotFound is returned if no module file exists for a
	// requested kernel module name.
	ErrModuleNotFound = errors.New("kernel module not found")
)

// CommandError wraps errors of external commands together with the
// captured stderr output.
type CommandError struct {
	Name   string
	Err    error
	Stderr string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Name, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}

	return msg
}

func (e *CommandError) Is(other error) bool {
	_, ok := other.(*CommandError)
	return ok
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
