//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binLint     = "golangci-lint"
	lintTimeout = "5m"
)

// sourceDirs are the trees checked by gofmt.
var sourceDirs = []string{"cmd", "internal", "pkg", "magefiles"}

// Lint fails on unformatted files, then runs golangci-lint.
func Lint() error {
	mg.Deps(checkFormat)
	return sh.RunV(binLint, "run", "--timeout", lintTimeout, "./...")
}

// checkFormat lists files gofmt would rewrite.
func checkFormat() error {
	out, err := sh.Output("gofmt", append([]string{"-l"}, sourceDirs...)...)
	if err != nil {
		return err
	}
	if out = strings.TrimSpace(out); out != "" {
		return fmt.Errorf("gofmt needed:\n%s", out)
	}
	return nil
}
