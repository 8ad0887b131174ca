//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Vets every package and compiles the testbed binary into bin/.
func (Build) Engine() error {
	if _, err := executeCmd("go", withArgs("vet", "./..."), withStream()); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/drawbug", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the unit tests of every package with the race detector.
func (Build) Test() error {
	mg.Deps(Build.Vet)
	_, err := executeCmd("go", withArgs("test", "-race", "-count=1", "./..."), withStream())
	return err
}

// Runs go vet over every package.
func (Build) Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."))
	return err
}

// Tidies go.mod and go.sum.
func (Build) Tidy() error {
	return goTidy()
}
