// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package build

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/aibor/initrdgen/internal/features"
	"github.com/aibor/initrdgen/internal/sys"
)

// sharedObjectGlobs match library file names that get flattening links
// into the canonical lib directories.
var sharedObjectGlobs = []glob.Glob{
	glob.MustCompile("*.so"),
	glob.MustCompile("*.so.*"),
}

// libraryTiers maps each staged library directory to the canonical lib
// directory that receives flattening links for its shared objects.
var libraryTiers = map[string]string{
	"/usr/lib":   "/lib64",
	"/usr/lib32": "/lib32",
	"/usr/lib64": "/lib64",
	"/lib":       "/lib",
}

// createLinks installs the multi-call binary applets, replaces the sh
// and module tool links and flattens the library tiers.
func (b *builder) createLinks(ctx context.Context) error {
	b.Console.Info("Creating symlinks ...")

	err := b.installBusyboxApplets(ctx)
	if err != nil {
		return err
	}

	err = b.linkShToBash()
	if err != nil {
		return err
	}

	err = b.linkKmodApplets()
	if err != nil {
		return err
	}

	return b.createLibraryLinks()
}

// installBusyboxApplets lets the staged busybox install its applet links
// inside a chrooted shell, so the links are relative to the image.
func (b *builder) installBusyboxApplets(ctx context.Context) error {
	err := sys.Run(ctx,
		"chroot", b.Root.Path,
		"/bin/busybox", "sh", "-c",
		"cd /bin && /bin/busybox --install -s .",
	)
	if err != nil {
		return fmt.Errorf("install busybox applets: %w", err)
	}

	return nil
}

// linkShToBash replaces the busybox sh applet link with one pointing to
// bash, which the init script requires.
func (b *builder) linkShToBash() error {
	shPath := filepath.Join(b.rootBinDir(), "sh")

	err := os.Remove(shPath)
	if err != nil {
		return fmt.Errorf("remove sh applet link: %w", err)
	}

	err = os.Symlink("bash", shPath)
	if err != nil {
		return fmt.Errorf("link sh to bash: %w", err)
	}

	return nil
}

// linkKmodApplets replaces the busybox module tool applets with links to
// kmod, which handles compressed modules and the dependency index
// properly.
func (b *builder) linkKmodApplets() error {
	kmodDir := ""

	for _, dir := range []string{b.rootSbinDir(), b.rootBinDir()} {
		info, err := os.Stat(filepath.Join(dir, "kmod"))
		if err == nil && info.Mode().IsRegular() {
			kmodDir = dir
			break
		}
	}

	if kmodDir == "" {
		// No kmod staged, the busybox applets stay in place.
		return nil
	}

	for _, applet := range b.Registry.Hook(features.Base).KmodLinks {
		err := os.Remove(filepath.Join(b.rootBinDir(), applet))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove applet %s: %w", applet, err)
		}

		err = os.Symlink("kmod", filepath.Join(kmodDir, applet))
		if err != nil {
			return fmt.Errorf("link applet %s: %w", applet, err)
		}
	}

	return nil
}

// createLibraryLinks creates flattening links from each staged library
// tier into its canonical lib directory, so the loader finds every
// shared object under the canonical paths.
func (b *builder) createLibraryLinks() error {
	for source, target := range libraryTiers {
		sourceDir := b.Root.Join(source)
		targetDir := b.Root.Join(target)

		if !dirExists(sourceDir) || !dirExists(targetDir) {
			continue
		}

		err := b.linkSharedObjects(source, sourceDir, targetDir)
		if err != nil {
			return err
		}
	}

	return nil
}

// linkSharedObjects links every shared object found below sourceDir into
// targetDir. Link targets are the in-image source paths, matching what
// the image's loader resolves at run time.
func (b *builder) linkSharedObjects(
	imageSource, sourceDir, targetDir string,
) error {
	return filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !matchesSharedObject(d.Name()) {
			return nil
		}

		relPath, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return fmt.Errorf("relative path: %w", err)
		}

		linkPath := filepath.Join(targetDir, d.Name())
		linkTarget := filepath.Join(imageSource, relPath)

		if linkPath == b.Root.Join(linkTarget) {
			return nil
		}

		// Force semantics: an existing link or file is replaced.
		_ = os.Remove(linkPath)

		err = os.Symlink(linkTarget, linkPath)
		if err != nil {
			return fmt.Errorf("flattening link %s: %w", d.Name(), err)
		}

		return nil
	})
}

func matchesSharedObject(name string) bool {
	for _, g := range sharedObjectGlobs {
		if g.Match(name) {
			return true
		}
	}

	return false
}

func (b *builder) rootBinDir() string {
	return b.Root.Join(b.Config.SystemDirectory.Bin)
}

func (b *builder) rootSbinDir() string {
	return b.Root.Join(b.Config.SystemDirectory.Sbin)
}

func (b *builder) rootLib64Dir() string {
	return b.Root.Join(b.Config.SystemDirectory.Lib64)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
