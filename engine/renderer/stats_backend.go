package renderer

import (
	"github.com/spaghettifunk/drawbug/engine/commands"
	"github.com/spaghettifunk/drawbug/engine/core"
	"github.com/spaghettifunk/drawbug/engine/geometry"
)

// FrameStats is what a StatsBackend saw during one frame.
type FrameStats struct {
	WirePoints    int
	SolidVertices int
	SolidIndices  int
	Styles        int
	Visuals       Visuals
}

// StatsBackend is a Backend that draws nothing. It records the size of every
// upload and logs it, which is enough for headless hosts and tests.
type StatsBackend struct {
	current FrameStats
	last    FrameStats
}

func NewStatsBackend() *StatsBackend {
	return &StatsBackend{}
}

func (b *StatsBackend) BeginFrame(deltaTime float64) error {
	b.current = FrameStats{}
	return nil
}

func (b *StatsBackend) UploadWire(points []geometry.PositionData, styles []commands.StyleData) error {
	b.current.WirePoints = len(points)
	b.current.Styles = len(styles)
	return nil
}

func (b *StatsBackend) UploadSolid(vertices []geometry.PositionData, indices []uint32, styles []commands.StyleData) error {
	b.current.SolidVertices = len(vertices)
	b.current.SolidIndices = len(indices)
	b.current.Styles = len(styles)
	return nil
}

func (b *StatsBackend) Draw(visuals Visuals) error {
	b.current.Visuals = visuals
	return nil
}

func (b *StatsBackend) EndFrame(deltaTime float64) error {
	b.last = b.current
	core.LogDebug("debug frame: %d wire points, %d solid vertices, %d solid indices, %d styles",
		b.last.WirePoints, b.last.SolidVertices, b.last.SolidIndices, b.last.Styles)
	return nil
}

// Last returns the stats of the most recently finished frame.
func (b *StatsBackend) Last() FrameStats {
	return b.last
}
