// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/aibor/initrdgen/internal/config"
	"github.com/aibor/initrdgen/internal/features"
)

// Set on build.
var version = "dev"

// defaultInitScript is the init script shipped next to the settings
// document.
const defaultInitScript = "/etc/initrdgen/init"

type flags struct {
	name string

	configPath string
	featureArg string
	kernel     string
	initScript string

	versionFlag bool
	debugFlag   bool
	flagSet     *flag.FlagSet
}

func newFlags(name string, output io.Writer) *flags {
	f := &flags{
		name:       name,
		configPath: config.DefaultPath,
		initScript: defaultInitScript,
	}

	f.initFlagset(output)

	return f
}

func (f *flags) initFlagset(output io.Writer) {
	fsName := f.name + " [flags...]"
	fs := flag.NewFlagSet(fsName, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(
		&f.configPath,
		"config",
		f.configPath,
		"path to the settings document",
	)

	fs.StringVar(
		&f.featureArg,
		"features",
		f.featureArg,
		"comma separated feature names (zfs, luks, basic) or menu"+
			" numbers. Without this flag the interactive menu is shown.",
	)

	fs.StringVar(
		&f.kernel,
		"kernel",
		f.kernel,
		"kernel version to build for. Without this flag the running"+
			" kernel is offered interactively.",
	)

	fs.StringVar(
		&f.initScript,
		"init",
		f.initScript,
		"path to the init script placed into the image",
	)

	fs.BoolVar(
		&f.debugFlag,
		"debug",
		f.debugFlag,
		"enable debug output",
	)

	fs.BoolVar(
		&f.versionFlag,
		"version",
		f.versionFlag,
		"show version and exit",
	)

	f.flagSet = fs
}

// fail fails like flag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *flags) printVersionInformation() {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	fmt.Fprintf(f.flagSet.Output(), "%s: %s\n\n", f.name, version)
	fmt.Fprintln(f.flagSet.Output(), buildInfo.String())
}

func (f *flags) parseArgs(args []string) error {
	if err := f.flagSet.Parse(args); err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using
	// [flag.ErrHelp] the main binary is supposed to return with a non
	// error exit code.
	if f.versionFlag {
		f.printVersionInformation()
		return &ParseArgsError{msg: "version requested", err: flag.ErrHelp}
	}

	if f.flagSet.NArg() > 0 {
		return f.fail("unexpected arguments: "+strings.Join(f.flagSet.Args(), " "), nil)
	}

	return nil
}

// featureNames translates the features flag value into feature names.
// Numbers are interpreted as menu codes, anything else as literal
// names. An empty flag returns nil, meaning the interactive menu is
// wanted.
func (f *flags) featureNames() []string {
	if f.featureArg == "" {
		return nil
	}

	items := strings.Split(f.featureArg, ",")
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
	}

	if isNumeric(items[0]) {
		return features.NamesFromMenuCodes(items)
	}

	return items
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
