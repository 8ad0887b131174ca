package geometry

import (
	"fmt"

	"github.com/spaghettifunk/drawbug/engine/containers"
	"github.com/spaghettifunk/drawbug/engine/core"
	"github.com/spaghettifunk/drawbug/engine/math"
)

// WireBuffer collects line segments as consecutive point pairs, so its length
// is always even. Points are transformed by the active matrix when submitted.
type WireBuffer struct {
	points    *containers.Buffer[PositionData]
	matrix    math.Mat4
	useMatrix bool
}

func NewWireBuffer(capacity int) (*WireBuffer, error) {
	points, err := containers.NewBuffer[PositionData](capacity)
	if err != nil {
		return nil, fmt.Errorf("wire buffer: %w", err)
	}
	return &WireBuffer{
		points: points,
		matrix: math.NewMat4Identity(),
	}, nil
}

// SetMatrix sets the transform applied to every following point. An identity
// matrix switches the transform off.
func (b *WireBuffer) SetMatrix(m math.Mat4) {
	b.matrix = m
	b.useMatrix = !m.IsIdentity()
}

func (b *WireBuffer) Matrix() math.Mat4 {
	return b.matrix
}

// UseMatrix reports whether submitted points are currently transformed.
func (b *WireBuffer) UseMatrix() bool {
	return b.useMatrix
}

func (b *WireBuffer) apply(p math.Vec3) math.Vec3 {
	if b.useMatrix {
		return p.Transform(b.matrix)
	}
	return p
}

// Submit appends the segment a-c.
func (b *WireBuffer) Submit(a, c math.Vec3, styleIndex uint32) {
	pair := b.points.Extend(2)
	pair[0] = PositionData{Position: b.apply(a), StyleIndex: styleIndex}
	pair[1] = PositionData{Position: b.apply(c), StyleIndex: styleIndex}
}

// SubmitPoints appends consecutive pairs of points as segments.
func (b *WireBuffer) SubmitPoints(points []math.Vec3, styleIndex uint32) error {
	if len(points)%2 != 0 {
		return fmt.Errorf("wire buffer: %d points: %w", len(points), core.ErrOddLineCount)
	}
	out := b.points.Extend(len(points))
	for i, p := range points {
		out[i] = PositionData{Position: b.apply(p), StyleIndex: styleIndex}
	}
	return nil
}

// Len returns the number of points, twice the number of segments.
func (b *WireBuffer) Len() int {
	return b.points.Len()
}

func (b *WireBuffer) Cap() int {
	return b.points.Cap()
}

// Points returns a view of the submitted points, valid until the next write.
func (b *WireBuffer) Points() []PositionData {
	return b.points.Data()
}

// Clear drops every point and switches the transform off.
func (b *WireBuffer) Clear() {
	b.points.Clear()
	b.matrix = math.NewMat4Identity()
	b.useMatrix = false
}

func (b *WireBuffer) IsCreated() bool {
	return b.points.IsCreated()
}

func (b *WireBuffer) Dispose() {
	if b.points.IsCreated() {
		b.points.Dispose()
	}
}
