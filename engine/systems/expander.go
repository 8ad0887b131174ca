package systems

import (
	"fmt"

	"github.com/spaghettifunk/drawbug/engine/commands"
	"github.com/spaghettifunk/drawbug/engine/core"
	"github.com/spaghettifunk/drawbug/engine/geometry"
	"github.com/spaghettifunk/drawbug/engine/math"
)

// Expander decodes a command stream into wire and solid geometry.
type Expander struct {
	out *RenderData

	firstStyle bool
	styleIndex uint32
	drawMode   commands.DrawMode
	matrix     math.Mat4
}

func NewExpander(out *RenderData) *Expander {
	return &Expander{out: out}
}

func (e *Expander) reset() {
	e.out.Clear()
	e.firstStyle = true
	e.styleIndex = 0
	e.drawMode = commands.DrawModeWire
	e.matrix = math.NewMat4Identity()
}

// Expand clears the output and fills it from data. Any integrity error stops
// the pass and leaves the output holding what was decoded so far.
func (e *Expander) Expand(data []byte) error {
	e.reset()
	r := commands.NewReader(data)
	for r.More() {
		tag, err := r.Next()
		if err != nil {
			return err
		}
		if err := e.dispatch(tag, r); err != nil {
			return fmt.Errorf("%s at offset %d: %w", tag, r.Offset(), err)
		}
	}
	return r.Finish()
}

func (e *Expander) dispatch(tag commands.Command, r *commands.Reader) error {
	switch tag {
	case commands.CommandStyle:
		if !e.firstStyle {
			e.styleIndex++
		}
		e.firstStyle = false
		e.out.addStyle(r.Style())
	case commands.CommandDrawMode:
		mode := r.DrawMode()
		if !mode.Valid() {
			return fmt.Errorf("draw mode %d: %w", uint32(mode), core.ErrCorruptRecord)
		}
		e.drawMode = mode
	case commands.CommandMatrix:
		e.matrix = r.Matrix()
		e.out.Wire.SetMatrix(e.matrix)
		e.out.Solid.SetMatrix(e.matrix)
	case commands.CommandLine:
		l := r.Line()
		e.out.Wire.Submit(l.A, l.B, e.styleIndex)
	case commands.CommandLines:
		for i := 0; i < r.LinePoints(); i += 2 {
			e.out.Wire.Submit(r.LinePoint(i), r.LinePoint(i+1), e.styleIndex)
		}
	case commands.CommandRectangle:
		d := r.Rectangle()
		return e.emit(
			func(dst []math.Vec3) []math.Vec3 { return geometry.WireRectangle(dst, d.Position, d.Size, d.Rotation) },
			func(m geometry.Mesh) geometry.Mesh { return geometry.SolidRectangle(m, d.Position, d.Size, d.Rotation) },
		)
	case commands.CommandCircle:
		d := r.Circle()
		return e.emit(
			func(dst []math.Vec3) []math.Vec3 { return geometry.WireCircle(dst, d.Position, d.Radius, d.Rotation) },
			func(m geometry.Mesh) geometry.Mesh { return geometry.SolidCircle(m, d.Position, d.Radius, d.Rotation) },
		)
	case commands.CommandHollowCircle:
		d := r.HollowCircle()
		return e.emit(
			func(dst []math.Vec3) []math.Vec3 {
				return geometry.WireHollowCircle(dst, d.Position, d.InnerRadius, d.OuterRadius, d.Rotation)
			},
			func(m geometry.Mesh) geometry.Mesh {
				return geometry.SolidHollowCircle(m, d.Position, d.InnerRadius, d.OuterRadius, d.Rotation)
			},
		)
	case commands.CommandCapsule:
		d := r.Capsule()
		return e.emit(
			func(dst []math.Vec3) []math.Vec3 {
				return geometry.WireCapsule(dst, d.Position, d.Size, d.Rotation, d.IsVertical)
			},
			func(m geometry.Mesh) geometry.Mesh {
				return geometry.SolidCapsule(m, d.Position, d.Size, d.Rotation, d.IsVertical)
			},
		)
	case commands.CommandBox:
		d := r.Box()
		return e.emit(
			func(dst []math.Vec3) []math.Vec3 { return geometry.WireBox(dst, d.Position, d.Size, d.Rotation) },
			func(m geometry.Mesh) geometry.Mesh { return geometry.SolidBox(m, d.Position, d.Size, d.Rotation) },
		)
	case commands.CommandSphere:
		d := r.Sphere()
		return e.emit(
			func(dst []math.Vec3) []math.Vec3 { return geometry.WireSphere(dst, d.Position, d.Radius) },
			func(m geometry.Mesh) geometry.Mesh { return geometry.SolidSphere(m, d.Position, d.Radius) },
		)
	case commands.CommandCylinder:
		d := r.Cylinder()
		return e.emit(
			func(dst []math.Vec3) []math.Vec3 {
				return geometry.WireCylinder(dst, d.Position, d.Radius, d.Height, d.Rotation)
			},
			func(m geometry.Mesh) geometry.Mesh {
				return geometry.SolidCylinder(m, d.Position, d.Radius, d.Height, d.Rotation)
			},
		)
	case commands.CommandCapsule3D:
		d := r.Cylinder()
		return e.emit(
			func(dst []math.Vec3) []math.Vec3 {
				return geometry.WireCapsule3D(dst, d.Position, d.Radius, d.Height, d.Rotation)
			},
			func(m geometry.Mesh) geometry.Mesh {
				return geometry.SolidCapsule3D(m, d.Position, d.Radius, d.Height, d.Rotation)
			},
		)
	default:
		return fmt.Errorf("tag %d: %w", uint32(tag), core.ErrUnknownCommand)
	}
	return nil
}

// emit runs the wire and solid generators the current draw mode asks for.
func (e *Expander) emit(wire func([]math.Vec3) []math.Vec3, solid func(geometry.Mesh) geometry.Mesh) error {
	if e.drawMode.HasWire() {
		if err := e.out.Wire.SubmitPoints(wire(e.out.scratch.Lines()), e.styleIndex); err != nil {
			return err
		}
	}
	if e.drawMode.HasSolid() {
		e.out.Solid.SubmitMesh(solid(e.out.scratch.Mesh()), e.styleIndex)
	}
	return nil
}
