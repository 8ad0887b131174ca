package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/spaghettifunk/drawbug/engine/commands"
	"github.com/spaghettifunk/drawbug/engine/config"
	"github.com/spaghettifunk/drawbug/engine/core"
	"github.com/spaghettifunk/drawbug/engine/geometry"
	"github.com/spaghettifunk/drawbug/engine/math"
	"github.com/spaghettifunk/drawbug/engine/renderer"
)

const tolerance = 0.0001

func newTestContext(t *testing.T) *Context {
	t.Helper()
	c := NewContext(nil)
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() {
		if c.Stage() != StageUninitialized {
			_ = c.Shutdown()
		}
	})
	return c
}

// runFrame runs the hooks of one frame around draw and returns the packet.
func runFrame(t *testing.T, c *Context, deltaTime float64, draw func()) *renderer.RenderPacket {
	t.Helper()
	if err := c.OnFrameBegin(deltaTime); err != nil {
		t.Fatalf("OnFrameBegin: %v", err)
	}
	if draw != nil {
		draw()
	}
	if err := c.OnLateFrame(); err != nil {
		t.Fatalf("OnLateFrame: %v", err)
	}
	packet, err := c.OnConsume()
	if err != nil {
		t.Fatalf("OnConsume: %v", err)
	}
	return packet
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestSolidBoxThroughContext(t *testing.T) {
	c := newTestContext(t)
	packet := runFrame(t, c, 0.016, func() {
		must(t, c.SetDrawMode(commands.DrawModeSolid))
		must(t, c.Box(math.NewVec3Zero(), math.NewVec3(2, 2, 2)))
	})

	if len(packet.Wire) != 0 {
		t.Fatalf("wire points = %d, want 0", len(packet.Wire))
	}
	if len(packet.SolidVertices) != 8 || len(packet.SolidIndices) != 36 {
		t.Fatalf("solid = %d vertices %d indices, want 8 and 36", len(packet.SolidVertices), len(packet.SolidIndices))
	}
	for _, v := range packet.SolidVertices {
		p := v.Position
		if math.Abs(p.X) != 1 || math.Abs(p.Y) != 1 || math.Abs(p.Z) != 1 {
			t.Fatalf("corner %+v is not on the unit cube", p)
		}
	}
	want := math.Extents3D{Min: math.NewVec3(-1, -1, -1), Max: math.NewVec3(1, 1, 1)}
	if packet.Extents != want {
		t.Fatalf("extents = %+v, want %+v", packet.Extents, want)
	}
}

func TestStyleIndicesThroughContext(t *testing.T) {
	c := newTestContext(t)
	packet := runFrame(t, c, 0.016, func() {
		c.SetColor(math.ColorRed)
		must(t, c.Line(math.NewVec3Zero(), math.NewVec3One()))
		c.SetColor(math.ColorBlue)
		must(t, c.Line(math.NewVec3One(), math.NewVec3Zero()))
	})

	if len(packet.Styles) != 2 || packet.Styles[0].Color != math.ColorRed || packet.Styles[1].Color != math.ColorBlue {
		t.Fatalf("styles = %+v", packet.Styles)
	}
	want := []uint32{0, 0, 1, 1}
	for i, p := range packet.Wire {
		if p.StyleIndex != want[i] {
			t.Fatalf("point %d style index = %d, want %d", i, p.StyleIndex, want[i])
		}
	}
}

func TestNotInitialized(t *testing.T) {
	c := NewContext(nil)
	if err := c.Line(math.NewVec3Zero(), math.NewVec3One()); !errors.Is(err, core.ErrNotInitialized) {
		t.Fatalf("Line err = %v, want ErrNotInitialized", err)
	}
	if err := c.OnLateFrame(); !errors.Is(err, core.ErrNotInitialized) {
		t.Fatalf("OnLateFrame err = %v, want ErrNotInitialized", err)
	}
	if err := c.Shutdown(); !errors.Is(err, core.ErrNotInitialized) {
		t.Fatalf("Shutdown err = %v, want ErrNotInitialized", err)
	}
}

func TestLifecycle(t *testing.T) {
	c := newTestContext(t)
	if c.Stage() != StageInitialized {
		t.Fatalf("stage = %s", c.Stage())
	}
	if err := c.Initialize(); !errors.Is(err, core.ErrAlreadyInitialized) {
		t.Fatalf("second Initialize err = %v", err)
	}
	runFrame(t, c, 0.016, nil)
	if c.Stage() != StageRunning {
		t.Fatalf("stage after a frame = %s", c.Stage())
	}
	must(t, c.Shutdown())
	if err := c.Sphere(math.NewVec3Zero(), 1); !errors.Is(err, core.ErrNotInitialized) {
		t.Fatalf("Sphere after shutdown err = %v", err)
	}
	if err := c.Initialize(); err != nil {
		t.Fatalf("re-initialize: %v", err)
	}
}

func TestInitializeRejectsInvalidSettings(t *testing.T) {
	s := config.Default()
	s.Capacity.DurationPoolSlots = 0
	c := NewContext(s)
	if err := c.Initialize(); err == nil {
		t.Fatal("Initialize accepted an empty duration pool")
	}
	if c.Stage() != StageUninitialized {
		t.Fatalf("stage = %s", c.Stage())
	}
}

func TestConsumeWithoutLateFrame(t *testing.T) {
	c := newTestContext(t)
	must(t, c.OnFrameBegin(0.016))
	if _, err := c.OnConsume(); !errors.Is(err, core.ErrNoExpansion) {
		t.Fatalf("err = %v, want ErrNoExpansion", err)
	}
}

func TestLateFrameWhilePending(t *testing.T) {
	c := newTestContext(t)
	must(t, c.OnFrameBegin(0.016))
	must(t, c.Line(math.NewVec3Zero(), math.NewVec3One()))
	must(t, c.OnLateFrame())
	if err := c.OnLateFrame(); !errors.Is(err, core.ErrExpansionInProgress) {
		t.Fatalf("err = %v, want ErrExpansionInProgress", err)
	}
	packet, err := c.OnConsume()
	if err != nil {
		t.Fatal(err)
	}
	if len(packet.Wire) != 2 {
		t.Fatalf("wire points = %d, want 2", len(packet.Wire))
	}
}

func TestOddLines(t *testing.T) {
	c := newTestContext(t)
	points := []math.Vec3{math.NewVec3Zero(), math.NewVec3One(), math.NewVec3Zero()}
	if err := c.Lines(points); !errors.Is(err, core.ErrOddLineCount) {
		t.Fatalf("err = %v, want ErrOddLineCount", err)
	}
	stats, err := c.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.FrameBytes != 0 {
		t.Fatalf("frame stream has %d bytes after a rejected Lines", stats.FrameBytes)
	}
}

func TestScopesRestore(t *testing.T) {
	c := newTestContext(t)

	func() {
		defer c.WithColor(math.ColorGreen)()
		defer c.WithForward(true)()
		defer c.WithDuration(2)()
		if c.Color() != math.ColorGreen || !c.Forward() || c.Duration() != 2 {
			t.Fatal("scope values not applied")
		}
	}()
	if c.Color() != math.ColorWhite || c.Forward() || c.Duration() != 0 {
		t.Fatalf("state not restored: %v %v %v", c.Color(), c.Forward(), c.Duration())
	}

	restore, err := c.WithDrawMode(commands.DrawModeBoth)
	must(t, err)
	if c.DrawMode() != commands.DrawModeBoth {
		t.Fatal("draw mode not applied")
	}
	restore()
	if c.DrawMode() != commands.DrawModeWire {
		t.Fatalf("draw mode = %s after restore", c.DrawMode())
	}

	if _, err := c.WithDrawMode(commands.DrawMode(7)); !errors.Is(err, core.ErrInvalidDrawMode) {
		t.Fatalf("err = %v, want ErrInvalidDrawMode", err)
	}
	if c.DrawMode() != commands.DrawModeWire {
		t.Fatal("invalid draw mode changed the state")
	}
}

func TestInPositionComposes(t *testing.T) {
	c := newTestContext(t)
	packet := runFrame(t, c, 0.016, func() {
		defer c.InPosition(math.NewVec3(1, 0, 0))()
		defer c.InPosition(math.NewVec3(0, 0, 2))()
		must(t, c.Line(math.NewVec3Zero(), math.NewVec3(0, 1, 0)))
	})
	if c.Matrix() != math.NewMat4Identity() {
		t.Fatal("matrix not restored")
	}
	if len(packet.Wire) != 2 {
		t.Fatalf("wire points = %d", len(packet.Wire))
	}
	if !packet.Wire[0].Position.Compare(math.NewVec3(1, 0, 2), tolerance) ||
		!packet.Wire[1].Position.Compare(math.NewVec3(1, 1, 2), tolerance) {
		t.Fatalf("wire = %+v", packet.Wire)
	}
}

func TestInLocalSpace(t *testing.T) {
	c := newTestContext(t)
	transform := math.TransformFromPositionRotationScale(math.NewVec3(0, 5, 0), math.NewQuatIdentity(), math.NewVec3(2, 2, 2))
	packet := runFrame(t, c, 0.016, func() {
		defer c.InLocalSpace(transform)()
		must(t, c.Line(math.NewVec3Zero(), math.NewVec3(1, 0, 0)))
	})
	if !packet.Wire[1].Position.Compare(math.NewVec3(2, 5, 0), tolerance) {
		t.Fatalf("wire = %+v", packet.Wire)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	c := newTestContext(t)
	c.SetColor(math.ColorRed)
	c.SetForward(true)
	c.SetDuration(3)
	c.SetMatrix(math.NewMat4Translation(math.NewVec3One()))
	must(t, c.SetDrawMode(commands.DrawModeSolid))
	c.Reset()
	if c.Color() != math.ColorWhite || c.Forward() || c.Duration() != 0 ||
		c.DrawMode() != commands.DrawModeWire || c.Matrix() != math.NewMat4Identity() {
		t.Fatal("Reset left state behind")
	}
}

func TestDurationCommandsPersist(t *testing.T) {
	c := newTestContext(t)
	first := runFrame(t, c, 0.016, func() {
		defer c.WithDuration(1)()
		must(t, c.Line(math.NewVec3Zero(), math.NewVec3One()))
	})
	if len(first.Wire) != 2 {
		t.Fatalf("first frame wire points = %d, want 2", len(first.Wire))
	}

	second := runFrame(t, c, 0.5, nil)
	if len(second.Wire) != 2 {
		t.Fatalf("second frame wire points = %d, want 2", len(second.Wire))
	}

	third := runFrame(t, c, 0.6, nil)
	if len(third.Wire) != 0 {
		t.Fatalf("expired commands still drawn: %d points", len(third.Wire))
	}
}

func TestFixedStepCommandsPersist(t *testing.T) {
	c := newTestContext(t)

	must(t, c.OnFrameBegin(0.016))
	must(t, c.OnFixedStep())
	must(t, c.Line(math.NewVec3Zero(), math.NewVec3One()))
	c.OnFixedStepEnd()
	must(t, c.Sphere(math.NewVec3Zero(), 1))
	must(t, c.OnLateFrame())
	packet, err := c.OnConsume()
	must(t, err)
	if len(packet.Wire) != 2+geometry.WireSpherePoints {
		t.Fatalf("wire points = %d", len(packet.Wire))
	}

	// No fixed step this frame: the last one is drawn again.
	packet = runFrame(t, c, 0.016, nil)
	if len(packet.Wire) != 2 {
		t.Fatalf("wire points = %d, want the fixed step line only", len(packet.Wire))
	}

	packet = runFrame(t, c, 0.016, func() {
		must(t, c.OnFixedStep())
		c.OnFixedStepEnd()
	})
	if len(packet.Wire) != 0 {
		t.Fatalf("wire points = %d after an empty fixed step", len(packet.Wire))
	}
}

func TestMergedSegmentsStartFromDefaults(t *testing.T) {
	c := newTestContext(t)
	packet := runFrame(t, c, 0.016, func() {
		must(t, c.OnFixedStep())
		must(t, c.Line(math.NewVec3Zero(), math.NewVec3One()))
		c.OnFixedStepEnd()

		// Left in solid mode with an offset when the frame stream ends.
		must(t, c.SetDrawMode(commands.DrawModeSolid))
		c.SetMatrix(math.NewMat4Translation(math.NewVec3(10, 0, 0)))
		must(t, c.BoxUniform(math.NewVec3Zero(), 2))
	})
	if len(packet.Wire) != 2 || packet.Wire[0].Position != math.NewVec3Zero() {
		t.Fatalf("fixed step line = %+v", packet.Wire)
	}
	if len(packet.SolidVertices) != 8 {
		t.Fatalf("solid vertices = %d", len(packet.SolidVertices))
	}
}

func TestPointUsesSettingsSize(t *testing.T) {
	c := newTestContext(t)
	s := config.Default()
	s.Visual.PointSize = 0.5
	must(t, c.ApplySettings(s))

	packet := runFrame(t, c, 0.016, func() {
		must(t, c.Point(math.NewVec3Zero(), 0))
	})
	if len(packet.Wire) != 6 {
		t.Fatalf("wire points = %d, want 6", len(packet.Wire))
	}
	if packet.Wire[0].Position != math.NewVec3(-0.5, 0, 0) {
		t.Fatalf("first point = %+v", packet.Wire[0].Position)
	}
}

func TestApplySettingsRejectsInvalid(t *testing.T) {
	c := newTestContext(t)
	s := config.Default()
	s.Visual.OccludedWireOpacity = 2
	if err := c.ApplySettings(s); err == nil {
		t.Fatal("invalid settings applied")
	}
	if c.Settings().Visual.OccludedWireOpacity != config.Default().Visual.OccludedWireOpacity {
		t.Fatal("invalid settings changed the context")
	}
}

func TestPhysicsColors(t *testing.T) {
	c := NewContext(nil)
	if c.PhysicsColor(true) != math.ColorGreen || c.PhysicsColor(false) != math.ColorRed {
		t.Fatal("physics colors do not follow the defaults")
	}
	if !c.DrawPhysics() {
		t.Fatal("physics drawing disabled by default")
	}
}

func TestStatsAndHistory(t *testing.T) {
	c := newTestContext(t)
	runFrame(t, c, 0.016, func() {
		must(t, c.Line(math.NewVec3Zero(), math.NewVec3One()))
	})
	stats, err := c.Stats()
	must(t, err)
	if stats.LastExpansion.WirePoints != 2 {
		t.Fatalf("last expansion = %+v", stats.LastExpansion)
	}
	if stats.DurationSlots != config.Default().Capacity.DurationPoolSlots {
		t.Fatalf("duration slots = %d", stats.DurationSlots)
	}
	if stats.MergedBytes == 0 {
		t.Fatal("merged stream is empty")
	}
	if len(c.History()) != 1 {
		t.Fatalf("history = %d samples, want 1", len(c.History()))
	}
}

func TestEngineRun(t *testing.T) {
	backend := renderer.NewStatsBackend()
	updates := 0
	game := &Game{
		ApplicationConfig: &ApplicationConfig{
			Name:      "engine test",
			MaxFrames: 3,
			Backend:   backend,
		},
		FnUpdate: func(ctx *Context, deltaTime float64) error {
			updates++
			return ctx.Sphere(math.NewVec3Zero(), 1)
		},
	}
	e, err := New(game)
	must(t, err)
	must(t, e.Initialize())
	must(t, e.Run(context.Background()))

	if e.Frames() != 3 || updates != 3 {
		t.Fatalf("frames = %d, updates = %d, want 3", e.Frames(), updates)
	}
	if got := backend.Last().WirePoints; got != geometry.WireSpherePoints {
		t.Fatalf("last frame wire points = %d, want %d", got, geometry.WireSpherePoints)
	}
	must(t, e.Shutdown())
	if e.Context().Stage() != StageUninitialized {
		t.Fatal("context still initialized after shutdown")
	}
}

func TestEngineStopsOnUpdateError(t *testing.T) {
	boom := errors.New("boom")
	game := &Game{
		ApplicationConfig: &ApplicationConfig{Name: "failing"},
		FnUpdate: func(ctx *Context, deltaTime float64) error {
			return boom
		},
	}
	e, err := New(game)
	must(t, err)
	must(t, e.Initialize())
	if err := e.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the update error", err)
	}
	must(t, e.Shutdown())
}

func TestEngineStopsOnCancel(t *testing.T) {
	game := &Game{
		FnUpdate: func(ctx *Context, deltaTime float64) error { return nil },
	}
	e, err := New(game)
	must(t, err)
	must(t, e.Initialize())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	must(t, e.Run(ctx))
	if e.Frames() != 0 {
		t.Fatalf("frames = %d after a cancelled run", e.Frames())
	}
	must(t, e.Shutdown())
}

func TestNewEngineNeedsUpdate(t *testing.T) {
	if _, err := New(&Game{}); err == nil {
		t.Fatal("New accepted a game without an update function")
	}
}
