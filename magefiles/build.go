//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "quilt"
	binaryDir  = "bin"
	cmdDir     = "./cmd/quilt"

	versionVar = "github.com/mesh-intelligence/quiltboard/internal/cli.Version"
)

// Build compiles the quilt binary to bin/, stamping the version from
// git describe when available.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if v := gitVersion(); v != "" {
		args = append(args, "-ldflags", "-X "+versionVar+"="+v)
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// gitVersion returns the tag-based version without the leading "v", or ""
// outside a git checkout.
func gitVersion() string {
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.TrimSpace(out), "v")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	if err := os.RemoveAll("coverage.out"); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
