package geometry

import (
	"fmt"

	"github.com/spaghettifunk/drawbug/engine/containers"
	"github.com/spaghettifunk/drawbug/engine/math"
)

// SolidBuffer collects triangle meshes: a vertex array and an index array
// with three indices per triangle. Counter-clockwise triangles are front
// facing. The active matrix applies to vertices only.
type SolidBuffer struct {
	vertices  *containers.Buffer[PositionData]
	indices   *containers.Buffer[uint32]
	matrix    math.Mat4
	useMatrix bool
}

func NewSolidBuffer(vertexCapacity, indexCapacity int) (*SolidBuffer, error) {
	vertices, err := containers.NewBuffer[PositionData](vertexCapacity)
	if err != nil {
		return nil, fmt.Errorf("solid buffer vertices: %w", err)
	}
	indices, err := containers.NewBuffer[uint32](indexCapacity)
	if err != nil {
		vertices.Dispose()
		return nil, fmt.Errorf("solid buffer indices: %w", err)
	}
	return &SolidBuffer{
		vertices: vertices,
		indices:  indices,
		matrix:   math.NewMat4Identity(),
	}, nil
}

func (b *SolidBuffer) SetMatrix(m math.Mat4) {
	b.matrix = m
	b.useMatrix = !m.IsIdentity()
}

func (b *SolidBuffer) Matrix() math.Mat4 {
	return b.matrix
}

func (b *SolidBuffer) UseMatrix() bool {
	return b.useMatrix
}

func (b *SolidBuffer) apply(p math.Vec3) math.Vec3 {
	if b.useMatrix {
		return p.Transform(b.matrix)
	}
	return p
}

// SubmitVertex appends one vertex.
func (b *SolidBuffer) SubmitVertex(p math.Vec3, styleIndex uint32) {
	b.vertices.Submit(PositionData{Position: b.apply(p), StyleIndex: styleIndex})
}

// SubmitVertices appends every point as a vertex.
func (b *SolidBuffer) SubmitVertices(points []math.Vec3, styleIndex uint32) {
	out := b.vertices.Extend(len(points))
	for i, p := range points {
		out[i] = PositionData{Position: b.apply(p), StyleIndex: styleIndex}
	}
}

// SubmitIndices appends triangle indices verbatim. They may refer to
// vertices that are submitted later in the same expansion.
func (b *SolidBuffer) SubmitIndices(indices []uint32) {
	b.indices.SubmitSlice(indices)
}

// SubmitMesh appends a mesh whose indices start at its own first vertex.
// The indices are offset by the vertices already in the buffer.
func (b *SolidBuffer) SubmitMesh(mesh Mesh, styleIndex uint32) {
	base := uint32(b.vertices.Len())
	b.SubmitVertices(mesh.Vertices, styleIndex)
	out := b.indices.Extend(len(mesh.Indices))
	for i, index := range mesh.Indices {
		out[i] = base + index
	}
}

func (b *SolidBuffer) VertexCount() int {
	return b.vertices.Len()
}

func (b *SolidBuffer) IndexCount() int {
	return b.indices.Len()
}

// Vertices returns a view of the submitted vertices, valid until the next write.
func (b *SolidBuffer) Vertices() []PositionData {
	return b.vertices.Data()
}

// Indices returns a view of the submitted indices, valid until the next write.
func (b *SolidBuffer) Indices() []uint32 {
	return b.indices.Data()
}

func (b *SolidBuffer) Clear() {
	b.vertices.Clear()
	b.indices.Clear()
	b.matrix = math.NewMat4Identity()
	b.useMatrix = false
}

func (b *SolidBuffer) IsCreated() bool {
	return b.vertices.IsCreated() && b.indices.IsCreated()
}

func (b *SolidBuffer) Dispose() {
	if b.vertices.IsCreated() {
		b.vertices.Dispose()
	}
	if b.indices.IsCreated() {
		b.indices.Dispose()
	}
}
