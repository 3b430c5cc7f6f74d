// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package console prints the user facing build progress protocol.
//
// Diagnostics go to the structured logger; this is only the colored
// marker output the tool has always shown.
package console

import (
	"fmt"
	"io"

	"github.com/labstack/gommon/color"
)

// Console writes colored status markers to a writer.
type Console struct {
	color *color.Color
	out   io.Writer
}

// New creates a [Console] writing to out.
func New(out io.Writer) *Console {
	clr := color.New()
	clr.SetOutput(out)

	return &Console{
		color: clr,
		out:   out,
	}
}

// Info prints an informational progress message.
func (c *Console) Info(format string, args ...any) {
	c.print(c.color.Green("[*] "), format, args...)
}

// Warn prints a warning for tolerated failures.
func (c *Console) Warn(format string, args ...any) {
	c.print(c.color.Yellow("[!] "), format, args...)
}

// Flag prints an activated feature message.
func (c *Console) Flag(format string, args ...any) {
	c.print(c.color.Magenta("[+] "), format, args...)
}

// Option prints a selectable menu entry.
func (c *Console) Option(format string, args ...any) {
	c.print(c.color.Cyan("[>] "), format, args...)
}

// Fail prints a fatal error message.
func (c *Console) Fail(format string, args ...any) {
	c.print(c.color.Red("[#] "), format, args...)
}

// Println prints a plain line.
func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// Prompt prints an inline question, leaving the cursor on the same line
// for the answer.
func (c *Console) Prompt(format string, args ...any) {
	fmt.Fprintf(c.out, c.color.Magenta("[+] ")+format, args...)
}

func (c *Console) print(marker, format string, args ...any) {
	fmt.Fprintf(c.out, marker+format+"\n", args...)
}
