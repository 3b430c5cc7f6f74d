// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aibor/initrdgen/internal/archive"
	"github.com/aibor/initrdgen/internal/config"
	"github.com/aibor/initrdgen/internal/console"
	"github.com/aibor/initrdgen/internal/features"
	"github.com/aibor/initrdgen/internal/resolve"
	"github.com/aibor/initrdgen/internal/staging"
	"github.com/aibor/initrdgen/internal/sys"
)

// supportedMachine is the only hardware identifier the build runs on.
const supportedMachine = "x86_64"

// baseLayout is the directory scaffold every image starts from.
var baseLayout = []string{
	"/etc",
	"/etc/bash",
	"/etc/zfs",
	"/dev",
	"/proc",
	"/sys",
	"/mnt",
	"/mnt/root",
	"/mnt/key",
	"/lib",
	"/lib/modules",
	"/lib64",
	"/bin",
	"/sbin",
	"/usr",
	"/root",
	"/run",
}

// Spec describes a single build.
type Spec struct {
	Config   *config.Config
	Registry *features.Registry
	Query    sys.Querier
	Console  *console.Console

	// Kernel is the version string the image is built for.
	Kernel string

	// Root is the staging directory tree that becomes the image.
	Root staging.Root

	// Home is the invocation directory; the artifact is written there.
	Home string

	// InitScript is the path of the init script to install as /init.
	InitScript string

	// Version is stamped into the image as /version.initrdgen.
	Version string
}

// ArtifactName returns the file name of the image artifact.
func (s *Spec) ArtifactName() string {
	return s.Config.InitrdPrefix + s.Kernel
}

// modulesDir returns the host's module directory for the kernel version.
func (s *Spec) modulesDir() string {
	return filepath.Join(s.Config.ModulesDirectory, s.Kernel)
}

type builder struct {
	*Spec

	copier  *staging.Copier
	modules []string
}

// Run executes the build pipeline and returns the path of the written
// artifact.
//
// It is a single pass; the first failing stage aborts the build. The
// caller is responsible for removing the build root afterwards, on
// success as well as on failure.
func Run(ctx context.Context, spec *Spec) (string, error) {
	b := &builder{
		Spec:   spec,
		copier: &staging.Copier{Root: spec.Root},
	}

	stages := []func(context.Context) error{
		b.verifyHost,
		b.verifyPreliminaryTools,
		b.verifyRequiredFiles,
		b.scaffold,
		b.copyBinariesAndLibraries,
		b.copyManPages,
		b.copyModules,
		b.copyFirmware,
		b.createLinks,
		b.copyUdev,
		b.finish,
	}

	for _, stage := range stages {
		err := stage(ctx)
		if err != nil {
			return "", err
		}
	}

	return b.pack(ctx)
}

// verifyHost checks identity, architecture and the module tree for the
// selected kernel.
func (b *builder) verifyHost(context.Context) error {
	if !sys.IsSuperuser() {
		return ErrNotSuperuser
	}

	machine, err := sys.Machine()
	if err != nil {
		return err
	}

	if machine != supportedMachine {
		return fmt.Errorf("%w: %s", ErrUnsupportedArchitecture, machine)
	}

	info, err := os.Stat(b.modulesDir())
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrModulesDirMissing, b.modulesDir())
	}

	return nil
}

// verifyPreliminaryTools checks the host tools needed for the build but
// not placed into the image.
func (b *builder) verifyPreliminaryTools(context.Context) error {
	b.Console.Info("Checking preliminary binaries ...")

	for _, tool := range b.Config.PreliminaryBuildBinaries {
		_, err := b.Query.LookPath(tool)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrMissingPreliminaryTool, tool)
		}
	}

	return nil
}

// verifyRequiredFiles checks that every enabled hook's required files
// exist before anything is copied.
func (b *builder) verifyRequiredFiles(context.Context) error {
	b.Console.Info("Checking required files ...")

	checks := []struct {
		hook features.Name
		flag string
	}{
		{hook: features.Base},
		{hook: features.Luks, flag: "Using LUKS"},
		{hook: features.Zfs, flag: "Using ZFS"},
	}

	for _, check := range checks {
		if !b.Registry.Enabled(check.hook) {
			continue
		}

		if check.flag != "" {
			b.Console.Flag(check.flag)
		}

		for _, file := range b.Registry.Files(check.hook) {
			_, err := os.Stat(file)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrMissingBinary, file)
			}
		}
	}

	return nil
}

func (b *builder) scaffold(context.Context) error {
	b.Console.Info("Creating temporary directory at %s ...", b.Root.Path)

	return b.Root.Scaffold(baseLayout)
}

// copyBinariesAndLibraries resolves the shared library closure of all
// enabled hooks' files and materializes binaries, libraries and manifest
// files into the build root.
func (b *builder) copyBinariesAndLibraries(ctx context.Context) error {
	b.Console.Info("Copying binaries and dependencies ...")

	required := b.Registry.Files(features.Base)
	if b.Registry.Enabled(features.Luks) {
		required = append(required, b.Registry.Files(features.Luks)...)
	}

	var optional []string

	if b.Registry.Enabled(features.Zfs) {
		required = append(required, b.Registry.Files(features.Zfs)...)
		optional = b.Registry.OptionalFiles(features.Zfs)
	}

	resolver := resolve.Resolver{
		Query: b.Query,
		LoaderPatterns: resolve.LoaderPatternsFor(
			b.Config.SystemDirectory.Lib,
			b.Config.SystemDirectory.Lib64,
		),
	}

	result, err := resolver.Resolve(ctx, required, optional)
	if err != nil {
		return err
	}

	slog.Debug("Resolved dependency closure",
		slog.Int("binaries", len(result.Binaries)),
		slog.Int("libraries", len(result.Libraries)),
		slog.String("loader", result.Loader))

	for _, file := range required {
		err := b.copier.Copy(file)
		if err != nil {
			return err
		}
	}

	for _, file := range optional {
		err := b.copier.Copy(file, staging.TolerateMissing())
		if err != nil {
			return err
		}
	}

	for _, lib := range result.Libraries {
		err := b.copier.Copy(lib)
		if err != nil {
			return err
		}
	}

	return nil
}

// copyManPages copies the zfs man pages if requested. They may not all
// exist depending on the installed version, so every copy is tolerant.
func (b *builder) copyManPages(context.Context) error {
	zfs := b.Registry.Hook(features.Zfs)
	if !zfs.Enabled || !zfs.ManPagesEnabled {
		return nil
	}

	b.Console.Info("Copying man pages ...")

	for _, page := range b.Registry.ManPages(features.Zfs) {
		err := b.copier.Copy(page, staging.TolerateMissing())
		if err != nil {
			return err
		}
	}

	return nil
}

// copyModules expands the requested kernel modules into their dependency
// closure, copies it and regenerates the dependency index inside the
// build root so the image's module loader sees consistent metadata.
func (b *builder) copyModules(ctx context.Context) error {
	b.Console.Info("Copying modules ...")

	b.modules = b.Registry.Files(features.Modules)

	resolver := resolve.ModuleResolver{Query: b.Query}

	closure, err := resolver.Resolve(ctx, b.modules, b.Kernel, b.modulesDir())
	if err != nil {
		return err
	}

	if len(closure) == 0 {
		return nil
	}

	for _, module := range closure {
		err := b.copier.Copy(module)
		if err != nil {
			return err
		}
	}

	return b.generateModprobeInfo(ctx)
}

// generateModprobeInfo regenerates the module dependency index inside
// the build root. The two sidecar metadata files are copied first so the
// regeneration tool does not emit spurious warnings.
func (b *builder) generateModprobeInfo(ctx context.Context) error {
	b.Console.Info("Generating modprobe information ...")

	for _, sidecar := range []string{"modules.order", "modules.builtin"} {
		err := b.copier.Copy(filepath.Join(b.modulesDir(), sidecar))
		if err != nil {
			return err
		}
	}

	err := b.Query.RefreshModuleIndex(ctx, b.Root.Path, b.Kernel)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexRefresh, err)
	}

	return nil
}

// pack writes the compressed image artifact into the invocation
// directory.
func (b *builder) pack(context.Context) (string, error) {
	b.Console.Info("Creating the initramfs ...")

	outPath := filepath.Join(b.Home, b.ArtifactName())

	err := archive.Write(b.Root.Path, outPath)
	if err != nil {
		return "", err
	}

	return outPath, nil
}
