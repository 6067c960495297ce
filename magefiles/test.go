//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets.
type Test mg.Namespace

// All runs all tests.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-v", "./...")
}

// Race runs all tests with the race detector.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover runs all tests and writes coverage.out.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func=coverage.out")
}
