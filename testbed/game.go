package testbed

import (
	"time"

	"github.com/spaghettifunk/drawbug/engine"
	"github.com/spaghettifunk/drawbug/engine/commands"
	"github.com/spaghettifunk/drawbug/engine/core"
	"github.com/spaghettifunk/drawbug/engine/math"
	"github.com/spaghettifunk/drawbug/engine/renderer"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	elapsed  float64
	ticks    uint64
	spinner  *math.Transform
	lastDump float64
}

// NewTestGame builds a scene that exercises every primitive: a spinning
// solid box, physics style probes in the fixed step and markers that live
// for a few seconds.
func NewTestGame(settingsPath string, maxFrames uint64) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				Name:            "Drawbug Testbed",
				SettingsPath:    settingsPath,
				WatchSettings:   settingsPath != "",
				FixedTimestep:   20 * time.Millisecond,
				TargetFrameRate: 60,
				MaxFrames:       maxFrames,
			},
			State: &gameState{
				spinner: math.TransformFromPosition(math.NewVec3(0, 1, 0)),
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnFixedUpdate = tg.FixedUpdate
	tg.FnRender = tg.Render
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Initialize(ctx *engine.Context) error {
	core.LogInfo("testbed context %s ready", ctx.ID())
	return nil
}

func (g *TestGame) Update(ctx *engine.Context, deltaTime float64) error {
	s := g.state()
	s.elapsed += deltaTime
	s.spinner.Rotate(math.NewQuatFromAxisAngle(math.NewVec3(0, 1, 0), float32(0.5*deltaTime), true))

	// Ground grid.
	grid := make([]math.Vec3, 0, 44)
	for i := -5; i <= 5; i++ {
		f := float32(i)
		grid = append(grid, math.NewVec3(f, 0, -5), math.NewVec3(f, 0, 5))
		grid = append(grid, math.NewVec3(-5, 0, f), math.NewVec3(5, 0, f))
	}
	defer ctx.WithColor(math.ColorGray)()
	if err := ctx.Lines(grid); err != nil {
		return err
	}

	if err := g.drawSpinner(ctx); err != nil {
		return err
	}
	if err := g.drawFlatShapes(ctx); err != nil {
		return err
	}

	// Drop a marker every second that stays for three.
	if s.elapsed-s.lastDump >= 1 {
		s.lastDump = s.elapsed
		defer ctx.WithDuration(3)()
		defer ctx.WithColor(math.ColorYellow)()
		x := float32(int(s.elapsed)%10) - 5
		if err := ctx.Point(math.NewVec3(x, 0.1, -4), 0); err != nil {
			return err
		}
	}
	return nil
}

func (g *TestGame) drawSpinner(ctx *engine.Context) error {
	defer ctx.InLocalSpace(g.state().spinner)()
	restore, err := ctx.WithDrawMode(commands.DrawModeBoth)
	if err != nil {
		return err
	}
	defer restore()
	defer ctx.WithColor(math.ColorCyan.WithAlpha(0.5))()

	if err := ctx.BoxUniform(math.NewVec3Zero(), 1); err != nil {
		return err
	}
	if err := ctx.Sphere(math.NewVec3(0, 1.5, 0), 0.5); err != nil {
		return err
	}
	if err := ctx.Cylinder(math.NewVec3(2, 0, 0), 0.3, 1, math.NewQuatIdentity()); err != nil {
		return err
	}
	return ctx.Capsule3D(math.NewVec3(-2, 0, 0), 0.3, 1.5, math.NewQuatIdentity())
}

func (g *TestGame) drawFlatShapes(ctx *engine.Context) error {
	defer ctx.InPosition(math.NewVec3(0, 0, 4))()
	defer ctx.WithColor(math.ColorMagenta)()

	flat := math.NewQuatFromAxisAngle(math.NewVec3(1, 0, 0), math.K_HALF_PI, true)
	if err := ctx.Rectangle(math.NewVec3(-3, 0.01, 0), math.NewVec2(1, 0.5), flat); err != nil {
		return err
	}
	if err := ctx.RectangleFromPoints(math.NewVec3(-1, 0, 0), math.NewVec3(0, 1, 0), math.NewQuatIdentity()); err != nil {
		return err
	}
	if err := ctx.Circle(math.NewVec3(1, 0.01, 0), 0.5, flat); err != nil {
		return err
	}
	if err := ctx.HollowCircle(math.NewVec3(2.5, 0.01, 0), 0.3, 0.5, flat); err != nil {
		return err
	}
	if err := ctx.Capsule(math.NewVec3(4, 0.5, 0), math.NewVec2(0.5, 1), math.NewQuatIdentity(), true); err != nil {
		return err
	}
	return ctx.Point2D(math.NewVec2(0, 2), 0.2)
}

// FixedUpdate draws a ray probe that alternates between hit and miss.
func (g *TestGame) FixedUpdate(ctx *engine.Context, step float64) error {
	s := g.state()
	s.ticks++
	if !ctx.DrawPhysics() {
		return nil
	}
	hit := s.ticks%100 < 50
	defer ctx.WithColor(ctx.PhysicsColor(hit))()
	origin := math.NewVec3(-4, 0.5, -2)
	end := origin.Add(math.NewVec3(3, 0, 0))
	if err := ctx.Line(origin, end); err != nil {
		return err
	}
	if hit {
		return ctx.Box(end, math.NewVec3(0.2, 0.2, 0.2))
	}
	return nil
}

func (g *TestGame) Render(packet *renderer.RenderPacket) error {
	if packet.IsEmpty() {
		return nil
	}
	core.LogDebug("packet: %d wire points, %d solid triangles, extents %v..%v",
		len(packet.Wire), len(packet.SolidIndices)/3, packet.Extents.Min, packet.Extents.Max)
	return nil
}

func (g *TestGame) Shutdown(ctx *engine.Context) error {
	stats, err := ctx.Stats()
	if err != nil {
		return err
	}
	core.LogInfo("testbed done: %.3fms average expansion, %d duration slots in use, %d evictions",
		stats.AverageExpansionMS, stats.ActiveDurations, stats.Evictions)
	return nil
}
