package engine

import (
	"time"

	"github.com/spaghettifunk/drawbug/engine/renderer"
)

type ApplicationConfig struct {
	// The application name used in logs.
	Name string
	// Settings file, loaded at startup. Empty uses the defaults.
	SettingsPath string
	// Reload the settings file when it changes on disk.
	WatchSettings bool
	// Overrides the log level of the settings file when not empty.
	LogLevel string
	// Interval of the fixed step. Zero disables fixed steps.
	FixedTimestep time.Duration
	// Upper bound of frames per second. Zero runs unpaced.
	TargetFrameRate uint32
	// Stop after this many frames. Zero runs until the context is cancelled.
	MaxFrames uint64
	// Receives every render packet. Nil uses a renderer.StatsBackend.
	Backend renderer.Backend
}
