// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"bufio"
	"io"
	"strings"

	"github.com/aibor/initrdgen/internal/console"
	"github.com/aibor/initrdgen/internal/features"
	"github.com/aibor/initrdgen/internal/sys"
)

// prompter runs the interactive questions for everything not given on
// the command line.
type prompter struct {
	console *console.Console
	input   *bufio.Scanner
}

func newPrompter(cons *console.Console, input io.Reader) *prompter {
	return &prompter{
		console: cons,
		input:   bufio.NewScanner(input),
	}
}

func (p *prompter) readLine() string {
	if !p.input.Scan() {
		return ""
	}

	return strings.TrimSpace(p.input.Text())
}

// selectFeatures shows the numbered feature menu and translates the
// comma separated answer into feature names. An empty answer selects
// zfs. Any invalid answer degrades the whole selection to exit.
func (p *prompter) selectFeatures() []string {
	p.console.Println()
	p.console.Info("Which initramfs features do you want to enable?")

	for _, entry := range features.MenuEntries() {
		p.console.Option(entry)
	}

	p.console.Println()
	p.console.Prompt("Features (separated by a comma) [1]: ")

	answer := p.readLine()
	if answer == "" {
		return []string{"zfs"}
	}

	return features.NamesFromMenuCodes(strings.Split(answer, ","))
}

// confirmKernel offers the running kernel release and falls back to
// manual entry if the user declines it.
func (p *prompter) confirmKernel() (string, error) {
	release, err := sys.KernelRelease()
	if err != nil {
		return "", err
	}

	p.console.Println()
	p.console.Prompt("Do you want to use the current kernel: %s? [Y/n]: ", release)

	switch strings.ToLower(p.readLine()) {
	case "", "y", "yes":
		return release, nil
	case "n", "no":
	default:
		return "", ErrInvalidAnswer
	}

	p.console.Prompt("Kernel version: ")

	kernel := p.readLine()
	if kernel == "" {
		return "", ErrNoKernelGiven
	}

	return kernel, nil
}
