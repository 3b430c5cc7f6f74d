// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aibor/initrdgen/internal/features"
	"github.com/aibor/initrdgen/internal/sys"
)

const (
	versionStampName    = "version.initrdgen"
	modulesManifestName = "modules.initrdgen"
	libgccName          = "libgcc_s.so"
	libgccMainName      = "libgcc_s.so.1"
)

// finish performs the last minute steps: mtab, the init script, image
// metadata, modprobe configuration, the keymap, the LUKS embeds and the
// compiler runtime library.
func (b *builder) finish(ctx context.Context) error {
	b.Console.Info("Performing finishing steps ...")

	steps := []func(context.Context) error{
		b.createMtab,
		b.installInitScript,
		b.writeVersionStamp,
		b.copyModprobeConfig,
		b.dumpKeymap,
		b.embedLuksFiles,
		b.writeModulesManifest,
		b.copyLibgcc,
	}

	for _, step := range steps {
		err := step(ctx)
		if err != nil {
			return err
		}
	}

	return nil
}

func (b *builder) createMtab(context.Context) error {
	mtabPath := filepath.Join(
		b.Root.Join(b.Config.SystemDirectory.Etc), "mtab",
	)

	err := os.WriteFile(mtabPath, nil, 0o644)
	if err != nil {
		return fmt.Errorf("%w: create mtab: %v", ErrFinishing, err)
	}

	return nil
}

// installInitScript installs the init script as /init with execute
// permissions. The image is useless without it, so there is no tolerant
// mode here.
func (b *builder) installInitScript(context.Context) error {
	err := b.copier.SafeCopy(b.InitScript, "/", "init")
	if err != nil {
		return err
	}

	err = os.Chmod(b.Root.Join("init"), 0o755)
	if err != nil {
		return fmt.Errorf("%w: init permissions: %v", ErrFinishing, err)
	}

	return nil
}

func (b *builder) writeVersionStamp(context.Context) error {
	stampPath := b.Root.Join(versionStampName)

	err := os.WriteFile(stampPath, []byte(b.Version+"\n"), 0o644)
	if err != nil {
		return fmt.Errorf("%w: version stamp: %v", ErrFinishing, err)
	}

	return nil
}

func (b *builder) copyModprobeConfig(context.Context) error {
	if !dirExists(b.Config.ModprobeDirectory) {
		return nil
	}

	return b.copier.CopyTree(b.Config.ModprobeDirectory)
}

// dumpKeymap stores the host's current keymap in the image. Best effort;
// a console-less host simply gets no keymap.
func (b *builder) dumpKeymap(ctx context.Context) error {
	keymapPath := filepath.Join(
		b.Root.Join(b.Config.SystemDirectory.Etc), "keymap",
	)

	output, err := sys.Output(ctx, "dumpkeys")
	if err == nil {
		err = os.WriteFile(keymapPath, []byte(output), 0o644)
	}

	if err != nil {
		b.Console.Warn("There was an error dumping the system's current keymap. Ignoring.")
	}

	return nil
}

// embedLuksFiles embeds the keyfile and the detached header if the user
// enabled them. These unlock the root pool, so failures are fatal.
func (b *builder) embedLuksFiles(context.Context) error {
	luks := b.Registry.Hook(features.Luks)
	if !luks.Enabled {
		return nil
	}

	etcDir := b.Config.SystemDirectory.Etc

	if luks.UseKeyfile {
		b.Console.Flag("Embedding the keyfile into the initramfs ...")

		err := b.copier.SafeCopy(luks.KeyfilePath, etcDir, "keyfile")
		if err != nil {
			return err
		}
	}

	if luks.UseDetachedHeader {
		b.Console.Flag("Embedding the detached header into the initramfs ...")

		err := b.copier.SafeCopy(luks.DetachedHeaderPath, etcDir, "header")
		if err != nil {
			return err
		}
	}

	return nil
}

// writeModulesManifest records the top level requested module names so
// the init script knows what to load.
func (b *builder) writeModulesManifest(context.Context) error {
	manifest := strings.Join(b.modules, ",") + "\n"

	err := os.WriteFile(
		b.Root.Join(modulesManifestName), []byte(manifest), 0o644,
	)
	if err != nil {
		return fmt.Errorf("%w: modules manifest: %v", ErrFinishing, err)
	}

	return nil
}

// copyLibgcc copies the compiler runtime library, which libpthread loads
// at run time without it appearing in any dependency listing. The path
// is queried from the compiler toolchain configuration tool; being
// unable to resolve it is fatal.
func (b *builder) copyLibgcc(ctx context.Context) error {
	_, err := b.Query.LookPath("gcc-config")
	if err != nil {
		return fmt.Errorf("%w: gcc-config", ErrExternalToolNotFound)
	}

	output, err := sys.Output(ctx, "gcc-config", "-L")
	if err != nil {
		return fmt.Errorf("%w: gcc-config -L: %v", ErrExternalToolNotFound, err)
	}

	libDir, _, _ := strings.Cut(strings.TrimSpace(output), ":")
	if libDir == "" {
		return fmt.Errorf("%w: unable to retrieve the gcc library path", ErrExternalToolNotFound)
	}

	err = b.copier.SafeCopy(
		filepath.Join(libDir, libgccMainName),
		b.Config.SystemDirectory.Lib64,
		"",
	)
	if err != nil {
		return err
	}

	linkPath := filepath.Join(b.rootLib64Dir(), libgccName)

	_ = os.Remove(linkPath)

	err = os.Symlink(libgccMainName, linkPath)
	if err != nil {
		return fmt.Errorf("%w: libgcc link: %v", ErrFinishing, err)
	}

	return nil
}
