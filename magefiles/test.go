//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Unit runs every package test.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Race runs the concurrent packages under the race detector.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./pkg/loader/...", "./pkg/engine/...", "./pkg/settings/...", "./pkg/project/..."), withStream())
	return err
}

// Sample runs the bundled quote script through the CLI.
func (Test) Sample() error {
	mg.Deps(Build.CLI)
	_, err := executeCmd("../bin/printcost", withArgs("run", "bracket.quote"), withDir("examples"), withStream())
	return err
}
