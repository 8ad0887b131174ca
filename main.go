/*
This is an example of application that will use the
engine package to draw a debug scene headless
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/drawbug/engine"
	"github.com/spaghettifunk/drawbug/engine/config"
	"github.com/spaghettifunk/drawbug/engine/core"
	"github.com/spaghettifunk/drawbug/testbed"
)

func main() {
	settingsPath := flag.String("settings", config.DefaultFileName, "settings file, reloaded on change")
	writeDefaults := flag.Bool("write-defaults", false, "write the default settings file and exit")
	frames := flag.Uint64("frames", 0, "stop after this many frames, 0 runs until interrupted")
	flag.Parse()

	if *writeDefaults {
		if err := config.Save(*settingsPath, config.Default()); err != nil {
			core.LogFatal("%s", err.Error())
		}
		core.LogInfo("default settings written to %s", *settingsPath)
		return
	}

	tb := testbed.NewTestGame(*settingsPath, *frames)

	e, err := engine.New(tb.Game)
	if err != nil {
		core.LogFatal("%s", err.Error())
	}
	if err := e.Initialize(); err != nil {
		core.LogFatal("%s", err.Error())
	}

	// capture sigterm and other system calls to stop the frame loop
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	runErr := e.Run(ctx)
	if err := e.Shutdown(); err != nil {
		core.LogError("%s", err.Error())
	}
	if runErr != nil {
		os.Exit(1)
	}
}
