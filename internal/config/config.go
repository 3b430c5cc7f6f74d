// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the settings document that describes what goes
// into the image.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultPath is the settings document location used unless overridden
// on the command line.
const DefaultPath = "/etc/initrdgen/settings.json"

// Config is the top level settings document.
//
// Each feature section supplies the file manifests of the corresponding
// hook. The remaining fields describe the layout of the system the image
// is built on.
type Config struct {
	Base            Base       `json:"base"`
	Modules         Modules    `json:"modules"`
	Zfs             Zfs        `json:"zfs"`
	Luks            Luks       `json:"luks"`
	Firmware        Firmware   `json:"firmware"`
	SystemDirectory SystemDirs `json:"systemDirectory"`

	// PreliminaryBuildBinaries are host tools needed for a successful
	// build but not placed into the image.
	PreliminaryBuildBinaries []string `json:"preliminaryBuildBinaries"`

	ModulesDirectory    string `json:"modulesDirectory"`
	FirmwareDirectory   string `json:"firmwareDirectory"`
	InitrdPrefix        string `json:"initrdPrefix"`
	UdevConfigDirectory string `json:"udevConfigDirectory"`
	UdevLibDirectory    string `json:"udevLibDirectory"`
	ModprobeDirectory   string `json:"modprobeDirectory"`
}

type Base struct {
	Files []string `json:"files"`

	// KmodLinks are the applet names that are replaced with symlinks
	// pointing to kmod.
	KmodLinks []string `json:"kmodLinks"`

	// UdevPath is where the udev daemon lives on the host. It is
	// relocated to <sbin>/udevd inside the image.
	UdevPath string `json:"udevPath"`
}

type Modules struct {
	// Files is the list of kernel module names to include, like
	// ["dm-crypt", "nvme", "i915"].
	Files []string `json:"files"`
}

type Zfs struct {
	Files         []string `json:"files"`
	OptionalFiles []string `json:"optionalFiles"`

	// UseMan enables copying the man pages. They are not usable inside
	// the image itself but are consumed by external ISO build scripts.
	UseMan   bool     `json:"useMan"`
	ManFiles []string `json:"manFiles"`
}

type Luks struct {
	Files []string `json:"files"`

	// UseKeyfile embeds the keyfile at KeyfilePath as /etc/keyfile.
	UseKeyfile  bool   `json:"useKeyfile"`
	KeyfilePath string `json:"keyfilePath"`

	// UseDetachedHeader embeds the header at DetachedHeaderPath as
	// /etc/header.
	UseDetachedHeader  bool   `json:"useDetachedHeader"`
	DetachedHeaderPath string `json:"detachedHeaderPath"`
}

type Firmware struct {
	Use bool `json:"use"`

	// CopyAll copies the complete firmware directory instead of the
	// listed files and directories.
	CopyAll     bool     `json:"copyAll"`
	Files       []string `json:"files"`
	Directories []string `json:"directories"`
}

type SystemDirs struct {
	Bin   string `json:"bin"`
	Sbin  string `json:"sbin"`
	Lib   string `json:"lib"`
	Lib64 string `json:"lib64"`
	Etc   string `json:"etc"`
}

// Load reads and decodes the settings document at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config

	err = json.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	return &cfg, nil
}

// Validate checks the fields the pipeline cannot run without.
func (c *Config) Validate() error {
	required := map[string]string{
		"modulesDirectory":      c.ModulesDirectory,
		"initrdPrefix":          c.InitrdPrefix,
		"systemDirectory.bin":   c.SystemDirectory.Bin,
		"systemDirectory.sbin":  c.SystemDirectory.Sbin,
		"systemDirectory.lib":   c.SystemDirectory.Lib,
		"systemDirectory.lib64": c.SystemDirectory.Lib64,
		"systemDirectory.etc":   c.SystemDirectory.Etc,
	}

	for field, value := range required {
		if value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, field)
		}
	}

	return nil
}
