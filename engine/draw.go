package engine

import (
	"fmt"

	"github.com/spaghettifunk/drawbug/engine/commands"
	"github.com/spaghettifunk/drawbug/engine/core"
	"github.com/spaghettifunk/drawbug/engine/math"
)

// current returns the stream the next primitive goes to, with the draw
// state of the context written into it.
func (c *Context) current() (*commands.Stream, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	var s *commands.Stream
	switch {
	case c.state.duration > 0:
		s = c.pool.Acquire(c.state.duration)
	case c.inFixedStep:
		s = c.fixed
	default:
		s = c.frame
	}

	style := s.Style()
	if style.Color != c.state.color {
		s.StyleColor(c.state.color)
	}
	if style.Forward != c.state.forward {
		s.StyleForward(c.state.forward)
	}
	if s.CurrentDrawMode() != c.state.drawMode {
		if err := s.DrawMode(c.state.drawMode); err != nil {
			return nil, err
		}
	}
	if s.CurrentMatrix() != c.state.matrix {
		if err := s.Matrix(c.state.matrix); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (c *Context) Line(a, b math.Vec3) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	return s.Line(a, b)
}

// Lines draws points as consecutive pairs. The number of points must be even.
func (c *Context) Lines(points []math.Vec3) error {
	if len(points)%2 != 0 {
		return fmt.Errorf("%d points: %w", len(points), core.ErrOddLineCount)
	}
	s, err := c.current()
	if err != nil {
		return err
	}
	return s.Lines(points)
}

// Point draws a three axis cross. A size of zero or less uses the point
// size of the visual settings.
func (c *Context) Point(position math.Vec3, size float32) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	return s.Point(position, c.pointSize(size))
}

// Point2D draws a cross on the XY plane.
func (c *Context) Point2D(position math.Vec2, size float32) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	return s.Point2D(position, c.pointSize(size))
}

func (c *Context) pointSize(size float32) float32 {
	if size <= 0 {
		return c.settings.Visual.PointSize
	}
	return size
}

func (c *Context) Rectangle(position math.Vec3, size math.Vec2, rotation math.Quaternion) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	return s.Rectangle(position, size, rotation)
}

// RectangleFromPoints draws the rectangle spanned by two opposite corners.
func (c *Context) RectangleFromPoints(corner1, corner2 math.Vec3, rotation math.Quaternion) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	return s.RectangleFromPoints(corner1, corner2, rotation)
}

func (c *Context) Circle(position math.Vec3, radius float32, rotation math.Quaternion) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	return s.Circle(position, radius, rotation)
}

func (c *Context) HollowCircle(position math.Vec3, innerRadius, outerRadius float32, rotation math.Quaternion) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	return s.HollowCircle(position, innerRadius, outerRadius, rotation)
}

// Capsule draws a flat capsule whose long side is size.Y when isVertical is
// set and size.X otherwise.
func (c *Context) Capsule(position math.Vec3, size math.Vec2, rotation math.Quaternion, isVertical bool) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	return s.Capsule(position, size, rotation, isVertical)
}

// Box draws an axis aligned box of the given full size.
func (c *Context) Box(position, size math.Vec3) error {
	return c.BoxRotated(position, size, math.NewQuatIdentity())
}

// BoxUniform draws a cube with edges of length scale.
func (c *Context) BoxUniform(position math.Vec3, scale float32) error {
	return c.BoxRotated(position, math.NewVec3(scale, scale, scale), math.NewQuatIdentity())
}

func (c *Context) BoxRotated(position, size math.Vec3, rotation math.Quaternion) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	return s.Box(position, size, rotation)
}

func (c *Context) Sphere(position math.Vec3, radius float32) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	return s.Sphere(position, radius)
}

func (c *Context) Cylinder(position math.Vec3, radius, height float32, rotation math.Quaternion) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	return s.Cylinder(position, radius, height, rotation)
}

// Capsule3D draws a capsule of total height height. When the height is not
// larger than the diameter it is drawn as a sphere.
func (c *Context) Capsule3D(position math.Vec3, radius, height float32, rotation math.Quaternion) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	return s.Capsule3D(position, radius, height, rotation)
}

// PhysicsColor returns the configured colour for a query that hit or missed.
func (c *Context) PhysicsColor(hit bool) math.Color {
	if hit {
		return c.settings.Visual.HitColor
	}
	return c.settings.Visual.NoHitColor
}

// DrawPhysics reports whether physics queries should be visualised.
func (c *Context) DrawPhysics() bool {
	return c.settings.Visual.DrawPhysicsEnabled
}

// Draw state

func (c *Context) Color() math.Color {
	return c.state.color
}

func (c *Context) SetColor(color math.Color) {
	c.state.color = color
}

func (c *Context) Forward() bool {
	return c.state.forward
}

// SetForward selects forward rendering for the following primitives.
func (c *Context) SetForward(forward bool) {
	c.state.forward = forward
}

func (c *Context) DrawMode() commands.DrawMode {
	return c.state.drawMode
}

func (c *Context) SetDrawMode(mode commands.DrawMode) error {
	if !mode.Valid() {
		return fmt.Errorf("draw mode %d: %w", uint32(mode), core.ErrInvalidDrawMode)
	}
	c.state.drawMode = mode
	return nil
}

func (c *Context) Matrix() math.Mat4 {
	return c.state.matrix
}

// SetMatrix sets the transform applied to every following primitive.
func (c *Context) SetMatrix(m math.Mat4) {
	c.state.matrix = m
}

func (c *Context) Duration() float32 {
	return c.state.duration
}

// SetDuration makes the following primitives stay visible for duration
// seconds. Zero or less records them for the current frame only.
func (c *Context) SetDuration(duration float32) {
	if duration < 0 {
		duration = 0
	}
	c.state.duration = duration
}

// Reset restores white, non forward, wire mode, the identity matrix and a
// zero duration.
func (c *Context) Reset() {
	c.state = defaultDrawState()
}

// Scopes. Each With function changes one property and returns a func that
// restores the previous value, meant to be deferred:
//
//	defer ctx.WithColor(math.ColorRed)()

func (c *Context) WithColor(color math.Color) func() {
	previous := c.state.color
	c.state.color = color
	return func() { c.state.color = previous }
}

func (c *Context) WithForward(forward bool) func() {
	previous := c.state.forward
	c.state.forward = forward
	return func() { c.state.forward = previous }
}

// WithDrawMode returns an error for an invalid mode and leaves the state
// untouched; the returned func is then a no-op.
func (c *Context) WithDrawMode(mode commands.DrawMode) (func(), error) {
	previous := c.state.drawMode
	if err := c.SetDrawMode(mode); err != nil {
		return func() {}, err
	}
	return func() { c.state.drawMode = previous }, nil
}

func (c *Context) WithDuration(duration float32) func() {
	previous := c.state.duration
	c.SetDuration(duration)
	return func() { c.state.duration = previous }
}

func (c *Context) WithMatrix(m math.Mat4) func() {
	previous := c.state.matrix
	c.state.matrix = m
	return func() { c.state.matrix = previous }
}

// InPosition offsets the following primitives by position, on top of the
// current matrix.
func (c *Context) InPosition(position math.Vec3) func() {
	return c.WithMatrix(math.NewMat4Translation(position).Mul(c.state.matrix))
}

// InLocalSpace draws the following primitives in the space of transform.
func (c *Context) InLocalSpace(transform *math.Transform) func() {
	return c.WithMatrix(transform.GetWorld().Mul(c.state.matrix))
}
