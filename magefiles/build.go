//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// CLI builds the printcost command into bin/.
func (Build) CLI() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/printcost", "./cmd/printcost"), withStream())
	return err
}

// Desktop builds the Wails application. Needs the wails CLI on PATH.
func (Build) Desktop() error {
	_, err := executeCmd("wails", withArgs("build"), withStream())
	return err
}

// All builds the CLI and the desktop application.
func (Build) All() {
	mg.SerialDeps(Build.CLI, Build.Desktop)
}
