// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aibor/initrdgen/internal/build"
	"github.com/aibor/initrdgen/internal/config"
	"github.com/aibor/initrdgen/internal/console"
	"github.com/aibor/initrdgen/internal/features"
	"github.com/aibor/initrdgen/internal/staging"
	"github.com/aibor/initrdgen/internal/sys"
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run is the main entry point for the CLI command.
//
// It returns 0 on a successful build and on an explicit exit request
// from the feature selection, 1 on any failure.
func Run(ctx context.Context, args []string, cfg IO) int {
	setupLogging(cfg.Stderr, false)

	flags := newFlags("initrdgen", cfg.Stderr)

	err := flags.parseArgs(args)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.debugFlag)

	cons := console.New(cfg.Stdout)

	err = run(ctx, flags, cons, cfg)
	if err != nil {
		if errors.Is(err, features.ErrExitRequested) {
			cons.Info("Exiting.")
			return 0
		}

		cons.Fail("%v", err)

		return 1
	}

	return 0
}

func run(
	ctx context.Context,
	flags *flags,
	cons *console.Console,
	cfg IO,
) error {
	settings, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	registry := features.NewRegistry(settings)
	prompt := newPrompter(cons, cfg.Stdin)

	names := flags.featureNames()
	if names == nil {
		names = prompt.selectFeatures()
	}

	err = registry.Select(names)
	if err != nil {
		return err
	}

	kernel := flags.kernel
	if kernel == "" {
		kernel, err = prompt.confirmKernel()
		if err != nil {
			return err
		}
	}

	home, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}

	root := staging.NewRoot(home)

	// A stale tree from a crashed previous run is removed before
	// anything else touches it.
	if root.Exists() {
		slog.Debug("Removing stale build root", slog.String("path", root.Path))

		err = root.Remove()
		if err != nil {
			return err
		}
	}

	spec := &build.Spec{
		Config:     settings,
		Registry:   registry,
		Query:      sys.ExecQuerier{},
		Console:    cons,
		Kernel:     kernel,
		Root:       root,
		Home:       home,
		InitScript: flags.initScript,
		Version:    version,
	}

	// The build root is an intermediate artifact either way; it is
	// removed on success as well as on failure.
	defer removeRoot(root)

	artifact, err := build.Run(ctx, spec)
	if err != nil {
		return err
	}

	cons.Println()
	cons.Info("Finished creating: %s", artifact)
	cons.Info("Copy it to /boot and add an entry for it to your bootloader.")

	return nil
}

func removeRoot(root staging.Root) {
	err := root.Remove()
	if err != nil {
		slog.Error("Failed to remove build root",
			slog.String("path", root.Path),
			slog.Any("error", err))
	}
}

func handleParseArgsError(err error) int {
	// [flag.ErrHelp] is wrapped when help or the version is requested.
	// Exit without error in this case.
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}

	// parseArgs already prints parse errors, so just exit non-zero.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return 1
}
