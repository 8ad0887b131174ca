package renderer

import (
	"github.com/spaghettifunk/drawbug/engine/commands"
	"github.com/spaghettifunk/drawbug/engine/geometry"
	"github.com/spaghettifunk/drawbug/engine/math"
	"github.com/spaghettifunk/drawbug/engine/systems"
)

// Visuals are the drawing settings a backend applies to the whole packet.
type Visuals struct {
	// OccludedWireOpacity is the alpha multiplier of wire geometry hidden
	// behind scene depth.
	OccludedWireOpacity float32
	// OccludedSolidOpacity is the same for solid geometry.
	OccludedSolidOpacity float32
}

// RenderPacket is a read-only view of one expansion. The slices alias the
// expansion output and stay valid until the next frame begins.
type RenderPacket struct {
	DeltaTime float64

	Wire          []geometry.PositionData
	SolidVertices []geometry.PositionData
	SolidIndices  []uint32
	Styles        []commands.StyleData

	Visuals Visuals
	Extents math.Extents3D
}

// NewRenderPacket captures the current content of rd.
func NewRenderPacket(rd *systems.RenderData, deltaTime float64, visuals Visuals) *RenderPacket {
	p := &RenderPacket{
		DeltaTime:     deltaTime,
		Wire:          rd.Wire.Points(),
		SolidVertices: rd.Solid.Vertices(),
		SolidIndices:  rd.Solid.Indices(),
		Styles:        rd.Styles(),
		Visuals:       visuals,
	}
	p.Extents = p.computeExtents()
	return p
}

func (p *RenderPacket) computeExtents() math.Extents3D {
	var (
		extents math.Extents3D
		started bool
	)
	for _, set := range [][]geometry.PositionData{p.Wire, p.SolidVertices} {
		for _, v := range set {
			if !started {
				extents = math.Extents3D{Min: v.Position, Max: v.Position}
				started = true
				continue
			}
			extents = extents.Expand(v.Position)
		}
	}
	return extents
}

// IsEmpty reports whether the packet has nothing to draw.
func (p *RenderPacket) IsEmpty() bool {
	return len(p.Wire) == 0 && len(p.SolidIndices) < 3
}
