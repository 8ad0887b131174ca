package commands

import (
	"encoding/binary"
	"fmt"

	"github.com/spaghettifunk/drawbug/engine/core"
	"github.com/spaghettifunk/drawbug/engine/math"
)

// Reader walks the records of an encoded stream. Next validates that a
// whole record is present before any payload accessor is used, so the
// accessors never read out of bounds.
type Reader struct {
	data    []byte
	off     int
	current Command
	payload recordReader
	points  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the byte offset of the next record.
func (r *Reader) Offset() int {
	return r.off
}

// Size returns the total number of bytes being read.
func (r *Reader) Size() int {
	return len(r.data)
}

// More reports whether bytes remain to be decoded.
func (r *Reader) More() bool {
	return r.off < len(r.data)
}

// Next advances to the next record and returns its tag.
func (r *Reader) Next() (Command, error) {
	start := r.off
	remaining := len(r.data) - start
	if remaining < TagSize {
		return 0, fmt.Errorf("tag at offset %d: %d bytes left: %w", start, remaining, core.ErrStreamTruncated)
	}
	tag := Command(binary.LittleEndian.Uint32(r.data[start:]))
	size, ok := tag.PayloadSize()
	if !ok {
		return 0, fmt.Errorf("tag %d at offset %d: %w", uint32(tag), start, core.ErrUnknownCommand)
	}
	remaining -= TagSize
	if remaining < size {
		return 0, fmt.Errorf("%s at offset %d needs %d bytes, %d left: %w", tag, start, size, remaining, core.ErrStreamTruncated)
	}

	r.points = 0
	if tag == CommandLines {
		count := binary.LittleEndian.Uint32(r.data[start+TagSize:])
		if count%2 != 0 {
			return 0, fmt.Errorf("%s at offset %d has %d points: %w", tag, start, count, core.ErrCorruptRecord)
		}
		if uint64(count)*LinesPointSize > uint64(remaining-size) {
			return 0, fmt.Errorf("%s at offset %d has %d points, %d bytes left: %w", tag, start, count, remaining-size, core.ErrStreamTruncated)
		}
		r.points = int(count)
		size += int(count) * LinesPointSize
	}

	body := start + TagSize
	r.payload = recordReader{b: r.data[body : body+size]}
	r.current = tag
	r.off = body + size
	return tag, nil
}

// Finish checks that decoding stopped exactly at the end of the data.
func (r *Reader) Finish() error {
	if r.off != len(r.data) {
		return fmt.Errorf("stopped at offset %d of %d: %w", r.off, len(r.data), core.ErrStreamMisaligned)
	}
	return nil
}

func (r *Reader) Style() StyleData {
	return StyleData{Color: r.payload.color(), Forward: r.payload.boolean()}
}

func (r *Reader) DrawMode() DrawMode {
	return DrawMode(r.payload.u32())
}

func (r *Reader) Matrix() math.Mat4 {
	return r.payload.mat4()
}

func (r *Reader) Line() Line {
	return Line{A: r.payload.vec3(), B: r.payload.vec3()}
}

// LinePoints returns the number of points of the current Lines record.
func (r *Reader) LinePoints() int {
	return r.points
}

// LinePoint returns point i of the current Lines record.
func (r *Reader) LinePoint(i int) math.Vec3 {
	p := recordReader{b: r.payload.b, off: LinesHeaderSize + i*LinesPointSize}
	return p.vec3()
}

func (r *Reader) Rectangle() Rectangle {
	return Rectangle{Position: r.payload.vec3(), Size: r.payload.vec2(), Rotation: r.payload.quat()}
}

func (r *Reader) Circle() Circle {
	return Circle{Position: r.payload.vec3(), Rotation: r.payload.quat(), Radius: r.payload.f32()}
}

func (r *Reader) HollowCircle() HollowCircle {
	return HollowCircle{
		Position:    r.payload.vec3(),
		Rotation:    r.payload.quat(),
		InnerRadius: r.payload.f32(),
		OuterRadius: r.payload.f32(),
	}
}

func (r *Reader) Capsule() Capsule {
	return Capsule{
		Position:   r.payload.vec3(),
		Size:       r.payload.vec2(),
		Rotation:   r.payload.quat(),
		IsVertical: r.payload.boolean(),
	}
}

func (r *Reader) Box() Box {
	return Box{Position: r.payload.vec3(), Size: r.payload.vec3(), Rotation: r.payload.quat()}
}

func (r *Reader) Sphere() Sphere {
	return Sphere{Position: r.payload.vec3(), Radius: r.payload.f32()}
}

// Cylinder decodes both Cylinder and Capsule3D records.
func (r *Reader) Cylinder() Cylinder {
	return Cylinder{
		Position: r.payload.vec3(),
		Radius:   r.payload.f32(),
		Height:   r.payload.f32(),
		Rotation: r.payload.quat(),
	}
}
