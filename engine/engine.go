package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spaghettifunk/drawbug/engine/config"
	"github.com/spaghettifunk/drawbug/engine/core"
	"github.com/spaghettifunk/drawbug/engine/renderer"
)

// Fixed steps run per frame at most, so a slow frame cannot snowball.
const maxFixedStepsPerFrame = 5

// Engine drives a Context from a frame loop: frame begin, game update,
// fixed steps, late frame, consume and draw.
type Engine struct {
	gameInstance *Game
	context      *Context
	renderer     *renderer.Renderer
	watcher      *config.Watcher
	clock        *core.Clock

	lastTime    float64
	accumulator float64
	frames      uint64
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.FnUpdate == nil {
		return nil, errors.New("game needs an update function")
	}
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = &ApplicationConfig{Name: "drawbug"}
	}
	appConfig := g.ApplicationConfig

	settings := config.Default()
	if appConfig.SettingsPath != "" {
		s, err := config.Load(appConfig.SettingsPath)
		if err != nil {
			core.LogError("%s", err.Error())
			return nil, err
		}
		settings = s
	}
	if appConfig.LogLevel != "" {
		settings.LogLevel = appConfig.LogLevel
	}

	backend := appConfig.Backend
	if backend == nil {
		backend = renderer.NewStatsBackend()
	}

	return &Engine{
		gameInstance: g,
		context:      NewContext(settings),
		renderer:     renderer.New(backend),
		clock:        core.NewClock(),
	}, nil
}

// Context returns the debug draw context the engine drives.
func (e *Engine) Context() *Context {
	return e.context
}

// Frames returns the number of frames run so far.
func (e *Engine) Frames() uint64 {
	return e.frames
}

func (e *Engine) Initialize() error {
	if err := e.context.Initialize(); err != nil {
		return err
	}
	appConfig := e.gameInstance.ApplicationConfig
	if appConfig.WatchSettings && appConfig.SettingsPath != "" {
		w, err := config.NewWatcher(appConfig.SettingsPath)
		if err != nil {
			return err
		}
		e.watcher = w
	}
	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e.context); err != nil {
			return err
		}
	}
	core.LogInfo("%s initialized", appConfig.Name)
	return nil
}

// Run runs frames until ctx is cancelled, MaxFrames is reached or a frame
// fails.
func (e *Engine) Run(ctx context.Context) error {
	appConfig := e.gameInstance.ApplicationConfig

	var targetFrameSeconds float64
	if appConfig.TargetFrameRate > 0 {
		targetFrameSeconds = 1.0 / float64(appConfig.TargetFrameRate)
	}

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for {
		if appConfig.MaxFrames > 0 && e.frames >= appConfig.MaxFrames {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		e.applySettingsUpdates()

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		e.lastTime = currentTime

		if err := e.frame(delta); err != nil {
			core.LogError("frame %d failed, shutting down: %s", e.frames, err)
			return err
		}
		e.frames++

		// Give the rest of the frame back when running ahead of the target.
		if targetFrameSeconds > 0 {
			e.clock.Update()
			remaining := targetFrameSeconds - (e.clock.Elapsed() - currentTime)
			if remaining > 0 {
				timer := time.NewTimer(time.Duration(remaining * float64(time.Second)))
				select {
				case <-ctx.Done():
					timer.Stop()
					return nil
				case <-timer.C:
				}
			}
		}
	}
}

func (e *Engine) frame(delta float64) error {
	c := e.context
	g := e.gameInstance

	if err := c.OnFrameBegin(delta); err != nil {
		return err
	}
	if err := g.FnUpdate(c, delta); err != nil {
		return fmt.Errorf("game update: %w", err)
	}
	if err := e.fixedSteps(delta); err != nil {
		return err
	}
	if err := c.OnLateFrame(); err != nil {
		return err
	}
	packet, err := c.OnConsume()
	if err != nil {
		return err
	}
	if g.FnRender != nil {
		if err := g.FnRender(packet); err != nil {
			return fmt.Errorf("game render: %w", err)
		}
	}
	return e.renderer.DrawFrame(packet)
}

func (e *Engine) fixedSteps(delta float64) error {
	step := e.gameInstance.ApplicationConfig.FixedTimestep.Seconds()
	if step <= 0 || e.gameInstance.FnFixedUpdate == nil {
		return nil
	}
	e.accumulator += delta
	for n := 0; e.accumulator >= step; n++ {
		if n == maxFixedStepsPerFrame {
			core.LogWarn("dropping %.3fs of fixed steps", e.accumulator)
			e.accumulator = 0
			break
		}
		if err := e.context.OnFixedStep(); err != nil {
			return err
		}
		err := e.gameInstance.FnFixedUpdate(e.context, step)
		e.context.OnFixedStepEnd()
		if err != nil {
			return fmt.Errorf("game fixed update: %w", err)
		}
		e.accumulator -= step
	}
	return nil
}

// applySettingsUpdates applies the latest reload of the settings file, if any.
func (e *Engine) applySettingsUpdates() {
	if e.watcher == nil {
		return
	}
	select {
	case s, ok := <-e.watcher.Updates():
		if !ok {
			return
		}
		if err := e.context.ApplySettings(s); err != nil {
			core.LogWarn("ignoring reloaded settings: %s", err)
		}
	case <-e.watcher.Errors():
		// Already logged by the watcher; the previous settings stay.
	default:
	}
}

// Shutdown stops the settings watcher, runs the game shutdown and releases
// the context.
func (e *Engine) Shutdown() error {
	var errs []error
	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(e.context); err != nil {
			errs = append(errs, err)
		}
	}
	if e.context.Stage() != StageUninitialized {
		if err := e.context.Shutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	e.clock.Stop()
	core.LogInfo("%s shut down after %d frames", e.gameInstance.ApplicationConfig.Name, e.frames)
	return errors.Join(errs...)
}
