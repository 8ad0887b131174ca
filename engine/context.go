package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/drawbug/engine/commands"
	"github.com/spaghettifunk/drawbug/engine/config"
	"github.com/spaghettifunk/drawbug/engine/core"
	"github.com/spaghettifunk/drawbug/engine/math"
	"github.com/spaghettifunk/drawbug/engine/renderer"
	"github.com/spaghettifunk/drawbug/engine/systems"
)

type Stage uint8

const (
	// Not initialized yet, or shut down.
	StageUninitialized Stage = iota
	// Initialize is running.
	StageInitializing
	// Ready to record and expand.
	StageInitialized
	// The host loop is running.
	StageRunning
	// Shutdown is running.
	StageShuttingDown
)

func (s Stage) String() string {
	switch s {
	case StageUninitialized:
		return "uninitialized"
	case StageInitializing:
		return "initializing"
	case StageInitialized:
		return "initialized"
	case StageRunning:
		return "running"
	case StageShuttingDown:
		return "shutting down"
	}
	return fmt.Sprintf("Stage(%d)", uint8(s))
}

// Context records debug draw commands and turns them into render packets.
//
// Recording goes to the frame stream, to the fixed step stream while inside
// a fixed step, or to a duration slot when a duration is set. Once per frame
// OnLateFrame merges the three into one stream and expands it on a
// background goroutine; OnConsume waits for it and returns the result.
//
// A Context is driven from a single goroutine. Only the expansion runs
// concurrently, and it never touches the streams callers record into.
type Context struct {
	id       uuid.UUID
	stage    Stage
	settings config.Settings

	frame  *commands.Stream
	fixed  *commands.Stream
	merged *commands.Stream
	pool   *commands.DurationPool

	output  *systems.RenderData
	job     *systems.ExpansionJob
	metrics *core.Metrics

	state       drawState
	inFixedStep bool
	scheduled   bool
	deltaTime   float64
}

// drawState is what every emitted primitive is recorded with.
type drawState struct {
	color    math.Color
	forward  bool
	drawMode commands.DrawMode
	matrix   math.Mat4
	duration float32
}

func defaultDrawState() drawState {
	style := commands.DefaultStyle()
	return drawState{
		color:    style.Color,
		forward:  style.Forward,
		drawMode: commands.DrawModeWire,
		matrix:   math.NewMat4Identity(),
	}
}

// NewContext creates a context configured by settings. A nil settings selects
// config.Default.
func NewContext(settings *config.Settings) *Context {
	if settings == nil {
		settings = config.Default()
	}
	return &Context{
		id:       uuid.New(),
		stage:    StageUninitialized,
		settings: *settings,
		state:    defaultDrawState(),
		metrics:  core.NewMetrics(),
	}
}

func (c *Context) ID() uuid.UUID {
	return c.id
}

func (c *Context) Stage() Stage {
	return c.stage
}

// Settings returns a copy of the settings in effect.
func (c *Context) Settings() config.Settings {
	return c.settings
}

// Initialize allocates every stream and output buffer.
func (c *Context) Initialize() error {
	if c.stage != StageUninitialized {
		return fmt.Errorf("context %s is %s: %w", c.id, c.stage, core.ErrAlreadyInitialized)
	}
	if err := c.settings.Validate(); err != nil {
		return err
	}
	level, err := core.ParseLogLevel(c.settings.LogLevel)
	if err != nil {
		return err
	}
	core.SetLogLevel(level)

	c.stage = StageInitializing
	if err := c.allocate(); err != nil {
		c.release()
		c.stage = StageUninitialized
		return err
	}
	c.state = defaultDrawState()
	c.stage = StageInitialized
	core.LogInfo("drawbug context %s initialized", c.id)
	return nil
}

func (c *Context) allocate() error {
	capacity := c.settings.Capacity
	var err error
	if c.frame, err = commands.NewStream(capacity.FrameStreamBytes, capacity.MaxStreamBytes); err != nil {
		return fmt.Errorf("frame stream: %w", err)
	}
	if c.fixed, err = commands.NewStream(capacity.FixedStreamBytes, capacity.MaxStreamBytes); err != nil {
		return fmt.Errorf("fixed stream: %w", err)
	}
	if c.merged, err = commands.NewStream(capacity.FrameStreamBytes+capacity.FixedStreamBytes, capacity.MaxStreamBytes); err != nil {
		return fmt.Errorf("merged stream: %w", err)
	}
	if c.pool, err = commands.NewDurationPool(capacity.DurationPoolSlots, capacity.DurationStreamBytes, capacity.MaxStreamBytes); err != nil {
		return err
	}
	c.output, err = systems.NewRenderData(systems.RenderDataConfig{
		WireVertices:  capacity.WireVertices,
		SolidVertices: capacity.SolidVertices,
		SolidIndices:  capacity.SolidIndices,
		StyleEntries:  capacity.StyleEntries,
	})
	if err != nil {
		return err
	}
	c.job = systems.NewExpansionJob(c.output, c.metrics, systems.DefaultHistorySize)
	return nil
}

func (c *Context) release() {
	for _, s := range []*commands.Stream{c.frame, c.fixed, c.merged} {
		if s != nil && s.IsCreated() {
			s.Dispose()
		}
	}
	if c.pool != nil {
		c.pool.Dispose()
	}
	if c.output != nil && c.output.IsCreated() {
		c.output.Dispose()
	}
	c.frame, c.fixed, c.merged, c.pool, c.output, c.job = nil, nil, nil, nil, nil, nil
}

// Shutdown waits for a pending expansion and releases every buffer. The
// error of that last expansion, if any, is returned.
func (c *Context) Shutdown() error {
	if c.stage == StageUninitialized {
		return fmt.Errorf("shutdown: %w", core.ErrNotInitialized)
	}
	c.stage = StageShuttingDown
	err := c.job.Wait()
	c.release()
	c.scheduled = false
	c.stage = StageUninitialized
	core.LogInfo("drawbug context %s shut down", c.id)
	return err
}

func (c *Context) ready() error {
	if c.stage != StageInitialized && c.stage != StageRunning {
		return fmt.Errorf("context %s is %s: %w", c.id, c.stage, core.ErrNotInitialized)
	}
	return nil
}

// ApplySettings applies the log level and visual settings of s. Capacity
// changes only take effect on the next Initialize.
func (c *Context) ApplySettings(s *config.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	level, err := core.ParseLogLevel(s.LogLevel)
	if err != nil {
		return err
	}
	core.SetLogLevel(level)
	if s.Capacity != c.settings.Capacity && c.stage != StageUninitialized {
		core.LogDebug("capacity settings changed, they apply after the next initialize")
	}
	c.settings = *s
	return nil
}

func (c *Context) visuals() renderer.Visuals {
	return renderer.Visuals{
		OccludedWireOpacity:  c.settings.Visual.OccludedWireOpacity,
		OccludedSolidOpacity: c.settings.Visual.OccludedSolidOpacity,
	}
}

// Stats is a snapshot of the recording and expansion state.
type Stats struct {
	FrameBytes         int
	FixedBytes         int
	MergedBytes        int
	ActiveDurations    int
	DurationSlots      int
	Evictions          uint64
	AverageExpansionMS float64
	LastExpansion      core.ExpansionSample
}

func (c *Context) Stats() (Stats, error) {
	if err := c.ready(); err != nil {
		return Stats{}, err
	}
	s := Stats{
		FrameBytes:         c.frame.Len(),
		FixedBytes:         c.fixed.Len(),
		ActiveDurations:    c.pool.ActiveCount(),
		DurationSlots:      c.pool.Capacity(),
		Evictions:          c.pool.Evictions(),
		AverageExpansionMS: c.metrics.AverageMS(),
		LastExpansion:      c.metrics.Last(),
	}
	if !c.job.Pending() {
		s.MergedBytes = c.merged.Len()
	}
	return s, nil
}

// History returns the most recent expansion samples, oldest first.
func (c *Context) History() []core.ExpansionSample {
	if c.job == nil {
		return nil
	}
	return c.job.History()
}
