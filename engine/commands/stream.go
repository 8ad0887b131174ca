package commands

import (
	"fmt"

	"github.com/spaghettifunk/drawbug/engine/containers"
	"github.com/spaghettifunk/drawbug/engine/core"
	"github.com/spaghettifunk/drawbug/engine/math"
)

// DefaultMaxBytes is the hard ceiling a Stream refuses to grow past.
const DefaultMaxBytes = 256 << 20

const megabyte = 1 << 20

// Stream records draw commands as tagged little endian records.
//
// Style changes are lazy: StyleColor and StyleForward only update the pending
// style, and a Style record is written the first time a primitive needs it.
// DrawMode and Matrix records flush the pending style before themselves.
type Stream struct {
	buffer   *containers.Buffer[byte]
	maxBytes int

	style        StyleData
	pendingStyle bool
	drawMode     DrawMode
	matrix       math.Mat4
}

// NewStream creates a stream with initialBytes of storage. A maxBytes of
// zero selects DefaultMaxBytes.
func NewStream(initialBytes int, maxBytes int) (*Stream, error) {
	if maxBytes == 0 {
		maxBytes = DefaultMaxBytes
	}
	if maxBytes < 0 || initialBytes > maxBytes {
		return nil, fmt.Errorf("new stream with %d initial and %d max bytes: %w", initialBytes, maxBytes, core.ErrInvalidCapacity)
	}
	b, err := containers.NewBuffer[byte](initialBytes)
	if err != nil {
		return nil, err
	}
	s := &Stream{
		buffer:   b,
		maxBytes: maxBytes,
	}
	s.resetState()
	return s, nil
}

func (s *Stream) resetState() {
	s.style = DefaultStyle()
	s.pendingStyle = true
	s.drawMode = DrawModeWire
	s.matrix = math.NewMat4Identity()
}

// Len returns the number of recorded bytes.
func (s *Stream) Len() int {
	return s.buffer.Len()
}

// Cap returns the number of bytes the stream holds before growing.
func (s *Stream) Cap() int {
	return s.buffer.Cap()
}

func (s *Stream) MaxBytes() int {
	return s.maxBytes
}

func (s *Stream) HasData() bool {
	return s.buffer.Len() > 0
}

// Bytes returns the recorded bytes. The slice aliases the stream and is only
// valid until the next write or Clear.
func (s *Stream) Bytes() []byte {
	return s.buffer.Data()
}

// Style returns the style that the next primitive will be drawn with.
func (s *Stream) Style() StyleData {
	return s.style
}

// PendingStyle reports whether the current style still has to be written.
func (s *Stream) PendingStyle() bool {
	return s.pendingStyle
}

func (s *Stream) CurrentDrawMode() DrawMode {
	return s.drawMode
}

func (s *Stream) CurrentMatrix() math.Mat4 {
	return s.matrix
}

func (s *Stream) StyleColor(color math.Color) {
	s.style.Color = color
	s.pendingStyle = true
}

func (s *Stream) StyleForward(forward bool) {
	s.style.Forward = forward
	s.pendingStyle = true
}

// ResetStyle restores the default style.
func (s *Stream) ResetStyle() {
	s.style = DefaultStyle()
	s.pendingStyle = true
}

// Clear drops every recorded byte and restores the default state: white,
// not forward, wire mode and identity matrix. Capacity is kept.
func (s *Stream) Clear() {
	s.buffer.Clear()
	s.resetState()
}

// Dispose releases the storage of the stream.
func (s *Stream) Dispose() {
	if s.buffer.IsCreated() {
		s.buffer.Dispose()
	}
}

func (s *Stream) IsCreated() bool {
	return s.buffer.IsCreated()
}

// reserve checks the ceiling and grows the buffer for n more bytes.
func (s *Stream) reserve(n int) error {
	required := s.buffer.Len() + n
	if required > s.maxBytes {
		return fmt.Errorf("%d bytes requested with %d recorded, limit %d: %w", n, s.buffer.Len(), s.maxBytes, core.ErrStreamTooLarge)
	}
	before := s.buffer.Cap()
	s.buffer.Reserve(n)
	if after := s.buffer.Cap(); after/megabyte > before/megabyte {
		core.LogDebug("command stream grew from %d to %d bytes", before, after)
	}
	return nil
}

// begin writes the tag of a record and returns a writer over its payload.
// When flush is set and the style is pending, a Style record goes first.
// Nothing is written if the stream would grow past its ceiling.
func (s *Stream) begin(tag Command, payloadSize int, flush bool) (*recordWriter, error) {
	flushStyle := flush && s.pendingStyle
	total := TagSize + payloadSize
	if flushStyle {
		total += TagSize + StyleSize
	}
	if err := s.reserve(total); err != nil {
		return nil, fmt.Errorf("record %s: %w", tag, err)
	}
	w := &recordWriter{b: s.buffer.Extend(total)}
	if flushStyle {
		w.u32(uint32(CommandStyle))
		w.color(s.style.Color)
		w.boolean(s.style.Forward)
		s.pendingStyle = false
	}
	w.u32(uint32(tag))
	return w, nil
}

// FlushStyle writes the pending style, if any.
func (s *Stream) FlushStyle() error {
	if !s.pendingStyle {
		return nil
	}
	if err := s.reserve(TagSize + StyleSize); err != nil {
		return fmt.Errorf("record %s: %w", CommandStyle, err)
	}
	w := &recordWriter{b: s.buffer.Extend(TagSize + StyleSize)}
	w.u32(uint32(CommandStyle))
	w.color(s.style.Color)
	w.boolean(s.style.Forward)
	s.pendingStyle = false
	return nil
}

// DrawMode records a change of draw mode.
func (s *Stream) DrawMode(mode DrawMode) error {
	if !mode.Valid() {
		return fmt.Errorf("draw mode %d: %w", uint32(mode), core.ErrInvalidDrawMode)
	}
	w, err := s.begin(CommandDrawMode, DrawModeSize, true)
	if err != nil {
		return err
	}
	w.u32(uint32(mode))
	s.drawMode = mode
	return nil
}

// Matrix records a new transform for every following primitive.
func (s *Stream) Matrix(m math.Mat4) error {
	w, err := s.begin(CommandMatrix, MatrixSize, true)
	if err != nil {
		return err
	}
	w.mat4(m)
	s.matrix = m
	return nil
}

// WriteStateReset records a wire draw mode and an identity matrix without
// touching the style. A segment merged after it decodes from the same state
// a fresh stream starts with.
func (s *Stream) WriteStateReset() error {
	w, err := s.begin(CommandDrawMode, DrawModeSize, false)
	if err != nil {
		return err
	}
	w.u32(uint32(DrawModeWire))
	s.drawMode = DrawModeWire

	w, err = s.begin(CommandMatrix, MatrixSize, false)
	if err != nil {
		return err
	}
	w.mat4(math.NewMat4Identity())
	s.matrix = math.NewMat4Identity()
	return nil
}

func (s *Stream) Line(a, b math.Vec3) error {
	w, err := s.begin(CommandLine, LineSize, true)
	if err != nil {
		return err
	}
	w.vec3(a)
	w.vec3(b)
	return nil
}

// Lines records consecutive point pairs as line segments. An odd number of
// points is rejected and leaves the stream untouched.
func (s *Stream) Lines(points []math.Vec3) error {
	if len(points)%2 != 0 {
		return fmt.Errorf("%d points: %w", len(points), core.ErrOddLineCount)
	}
	if len(points) == 0 {
		return nil
	}
	w, err := s.begin(CommandLines, LinesHeaderSize+len(points)*LinesPointSize, true)
	if err != nil {
		return err
	}
	w.u32(uint32(len(points)))
	for _, p := range points {
		w.vec3(p)
	}
	return nil
}

// Point records a cross of three axis aligned lines of half length size.
func (s *Stream) Point(position math.Vec3, size float32) error {
	if err := s.Line(position.Add(math.NewVec3(-size, 0, 0)), position.Add(math.NewVec3(size, 0, 0))); err != nil {
		return err
	}
	if err := s.Line(position.Add(math.NewVec3(0, -size, 0)), position.Add(math.NewVec3(0, size, 0))); err != nil {
		return err
	}
	return s.Line(position.Add(math.NewVec3(0, 0, -size)), position.Add(math.NewVec3(0, 0, size)))
}

// Point2D records a cross of two lines on the XY plane.
func (s *Stream) Point2D(position math.Vec2, size float32) error {
	p := position.To3()
	if err := s.Line(p.Add(math.NewVec3(-size, 0, 0)), p.Add(math.NewVec3(size, 0, 0))); err != nil {
		return err
	}
	return s.Line(p.Add(math.NewVec3(0, -size, 0)), p.Add(math.NewVec3(0, size, 0)))
}

func (s *Stream) Rectangle(position math.Vec3, size math.Vec2, rotation math.Quaternion) error {
	w, err := s.begin(CommandRectangle, RectangleSize, true)
	if err != nil {
		return err
	}
	w.vec3(position)
	w.vec2(size)
	w.quat(rotation)
	return nil
}

// RectangleFromPoints records the rectangle spanned by two opposite corners.
func (s *Stream) RectangleFromPoints(corner1, corner2 math.Vec3, rotation math.Quaternion) error {
	center := corner1.Add(corner2).MulScalar(0.5)
	extent := corner2.Sub(corner1).Abs()
	return s.Rectangle(center, math.NewVec2(extent.X, extent.Y), rotation)
}

func (s *Stream) Circle(position math.Vec3, radius float32, rotation math.Quaternion) error {
	w, err := s.begin(CommandCircle, CircleSize, true)
	if err != nil {
		return err
	}
	w.vec3(position)
	w.quat(rotation)
	w.f32(radius)
	return nil
}

func (s *Stream) HollowCircle(position math.Vec3, innerRadius, outerRadius float32, rotation math.Quaternion) error {
	w, err := s.begin(CommandHollowCircle, HollowCircleSize, true)
	if err != nil {
		return err
	}
	w.vec3(position)
	w.quat(rotation)
	w.f32(innerRadius)
	w.f32(outerRadius)
	return nil
}

func (s *Stream) Capsule(position math.Vec3, size math.Vec2, rotation math.Quaternion, isVertical bool) error {
	w, err := s.begin(CommandCapsule, CapsuleSize, true)
	if err != nil {
		return err
	}
	w.vec3(position)
	w.vec2(size)
	w.quat(rotation)
	w.boolean(isVertical)
	return nil
}

func (s *Stream) Box(position, size math.Vec3, rotation math.Quaternion) error {
	w, err := s.begin(CommandBox, BoxSize, true)
	if err != nil {
		return err
	}
	w.vec3(position)
	w.vec3(size)
	w.quat(rotation)
	return nil
}

func (s *Stream) Sphere(position math.Vec3, radius float32) error {
	w, err := s.begin(CommandSphere, SphereSize, true)
	if err != nil {
		return err
	}
	w.vec3(position)
	w.f32(radius)
	return nil
}

func (s *Stream) Cylinder(position math.Vec3, radius, height float32, rotation math.Quaternion) error {
	return s.cylinder(CommandCylinder, position, radius, height, rotation)
}

func (s *Stream) Capsule3D(position math.Vec3, radius, height float32, rotation math.Quaternion) error {
	return s.cylinder(CommandCapsule3D, position, radius, height, rotation)
}

func (s *Stream) cylinder(tag Command, position math.Vec3, radius, height float32, rotation math.Quaternion) error {
	w, err := s.begin(tag, CylinderSize, true)
	if err != nil {
		return err
	}
	w.vec3(position)
	w.f32(radius)
	w.f32(height)
	w.quat(rotation)
	return nil
}

// MergeFrom appends the recorded bytes of other verbatim. Afterwards s tracks
// the draw mode and matrix of other and marks its style pending. That is exact
// when s was in the default state before the merge, which WriteStateReset
// guarantees.
func (s *Stream) MergeFrom(other *Stream) error {
	if other == nil || !other.HasData() {
		return nil
	}
	if err := s.reserve(other.Len()); err != nil {
		return fmt.Errorf("merge %d bytes: %w", other.Len(), err)
	}
	s.buffer.SubmitSlice(other.Bytes())
	s.pendingStyle = true
	s.drawMode = other.drawMode
	s.matrix = other.matrix
	return nil
}
