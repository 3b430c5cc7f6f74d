// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// Run executes the given command and waits for it to terminate. Its
// stderr is captured and returned wrapped in a [CommandError] on failure.
func Run(ctx context.Context, name string, args ...string) error {
	return runCmd(ctx, io.Discard, name, args...)
}

// Output executes the given command and returns its stdout output.
func Output(ctx context.Context, name string, args ...string) (string, error) {
	var stdout bytes.Buffer

	err := runCmd(ctx, &stdout, name, args...)
	if err != nil {
		return "", err
	}

	return stdout.String(), nil
}

func runCmd(
	ctx context.Context,
	stdout io.Writer,
	name string,
	args ...string,
) error {
	var stderrBuf bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	if err != nil {
		return &CommandError{
			Name:   name,
			Err:    err,
			Stderr: stderrBuf.String(),
		}
	}

	return nil
}
