//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups the test targets.
type Test mg.Namespace

// Unit runs the unit tests. None of them needs the interpreter library.
func (Test) Unit() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs the unit tests with the race detector; the guard and
// interceptor tests exercise concurrent use.
func (Test) Race() error {
	return sh.RunV("go", "test", "-race", "./internal/...")
}

// Cover writes a coverage profile to cover.out and prints the summary.
func (Test) Cover() error {
	if err := sh.RunV("go", "test", "-coverprofile=cover.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=cover.out")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}
