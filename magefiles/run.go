//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/spaghettifunk/drawbug/engine/config"
)

type Run mg.Namespace

// Runs the testbed against drawbug.toml, writing the defaults first when
// the file does not exist yet.
func (Run) Testbed() error {
	if _, err := os.Stat(config.DefaultFileName); os.IsNotExist(err) {
		if _, err := executeCmd("go", withArgs("run", ".", "-write-defaults"), withStream()); err != nil {
			return err
		}
	}
	fmt.Println("Run testbed...")
	_, err := executeCmd("go", withArgs("run", ".", "-settings", config.DefaultFileName), withStream())
	return err
}

// Runs a fixed number of frames, useful as a smoke test.
func (Run) Smoke() error {
	mg.Deps(Build.Vet)
	_, err := executeCmd("go", withArgs("run", ".", "-frames", "120"), withStream())
	return err
}
