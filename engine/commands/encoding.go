package commands

import (
	"encoding/binary"
	gomath "math"

	"github.com/spaghettifunk/drawbug/engine/math"
)

// recordWriter fills a pre-sized record in place.
type recordWriter struct {
	b   []byte
	off int
}

func (w *recordWriter) u32(v uint32) {
	binary.LittleEndian.PutUint32(w.b[w.off:], v)
	w.off += 4
}

func (w *recordWriter) f32(v float32) {
	w.u32(gomath.Float32bits(v))
}

func (w *recordWriter) boolean(v bool) {
	if v {
		w.u32(1)
		return
	}
	w.u32(0)
}

func (w *recordWriter) vec2(v math.Vec2) {
	w.f32(v.X)
	w.f32(v.Y)
}

func (w *recordWriter) vec3(v math.Vec3) {
	w.f32(v.X)
	w.f32(v.Y)
	w.f32(v.Z)
}

func (w *recordWriter) quat(q math.Quaternion) {
	w.f32(q.X)
	w.f32(q.Y)
	w.f32(q.Z)
	w.f32(q.W)
}

func (w *recordWriter) color(c math.Color) {
	w.f32(c.R)
	w.f32(c.G)
	w.f32(c.B)
	w.f32(c.A)
}

func (w *recordWriter) mat4(m math.Mat4) {
	for _, v := range m.Data {
		w.f32(v)
	}
}

// recordReader decodes a payload that is known to be long enough.
type recordReader struct {
	b   []byte
	off int
}

func (r *recordReader) u32() uint32 {
	v := binary.LittleEndian.Uint32(r.b[r.off:])
	r.off += 4
	return v
}

func (r *recordReader) f32() float32 {
	return gomath.Float32frombits(r.u32())
}

func (r *recordReader) boolean() bool {
	return r.u32() != 0
}

func (r *recordReader) vec2() math.Vec2 {
	return math.Vec2{X: r.f32(), Y: r.f32()}
}

func (r *recordReader) vec3() math.Vec3 {
	return math.Vec3{X: r.f32(), Y: r.f32(), Z: r.f32()}
}

func (r *recordReader) quat() math.Quaternion {
	return math.Quaternion{X: r.f32(), Y: r.f32(), Z: r.f32(), W: r.f32()}
}

func (r *recordReader) color() math.Color {
	return math.Color{R: r.f32(), G: r.f32(), B: r.f32(), A: r.f32()}
}

func (r *recordReader) mat4() math.Mat4 {
	m := math.Mat4{}
	for i := range m.Data {
		m.Data[i] = r.f32()
	}
	return m
}
