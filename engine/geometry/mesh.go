package geometry

import "github.com/spaghettifunk/drawbug/engine/math"

const (
	// ScratchPoints and ScratchIndices bound a single expanded primitive.
	ScratchPoints  = 2048
	ScratchIndices = 10000
)

// Mesh is a run of generated triangles. Its indices count from the first
// vertex of the run, so generators can be chained by appending to the
// same Mesh.
type Mesh struct {
	Vertices []math.Vec3
	Indices  []uint32
}

// Triangles returns the number of complete triangles in the mesh.
func (m Mesh) Triangles() int {
	return len(m.Indices) / 3
}

func (m Mesh) base() uint32 {
	return uint32(len(m.Vertices))
}

func (m Mesh) triangle(a, b, c uint32) Mesh {
	m.Indices = append(m.Indices, a, b, c)
	return m
}

// Scratch holds the reusable storage generators write into before the result
// is copied to an output buffer. It is owned by one expansion at a time.
type Scratch struct {
	points  []math.Vec3
	indices []uint32
}

func NewScratch() *Scratch {
	return &Scratch{
		points:  make([]math.Vec3, 0, ScratchPoints),
		indices: make([]uint32, 0, ScratchIndices),
	}
}

// Lines returns an empty point slice backed by the scratch storage.
func (s *Scratch) Lines() []math.Vec3 {
	return s.points[:0]
}

// Mesh returns an empty mesh backed by the scratch storage.
func (s *Scratch) Mesh() Mesh {
	return Mesh{Vertices: s.points[:0], Indices: s.indices[:0]}
}

func segmentAngle(i int) float32 {
	return math.K_PI_2 / Segments * float32(i)
}

// circlePoint returns the point at angle on a circle of radius in the XY plane.
func circlePoint(radius, angle float32) math.Vec3 {
	return math.NewVec3(math.Cos(angle)*radius, math.Sin(angle)*radius, 0)
}
