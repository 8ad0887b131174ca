package geometry

import "github.com/spaghettifunk/drawbug/engine/math"

// Point counts of every wire primitive.
const (
	WireRectanglePoints    = 8
	WireCirclePoints       = Segments * 2
	WireHollowCirclePoints = WireCirclePoints * 2
	WireCapsulePoints      = Segments*2 + 4
	WireBoxPoints          = 24
	WireSpherePoints       = WireCirclePoints * 3
	WireCylinderPoints     = WireCirclePoints*2 + 8
	WireCapsule3DPoints    = WireCirclePoints*2 + 8 + Segments*4
)

// appendArc appends count segments of a circle around center, starting at
// angle start. The circle lies in the XY plane of rotation.
func appendArc(dst []math.Vec3, center math.Vec3, rotation math.Quaternion, radius, start float32, count int) []math.Vec3 {
	for i := 0; i < count; i++ {
		a := start + segmentAngle(i)
		b := start + segmentAngle(i+1)
		dst = append(dst,
			center.Add(rotation.Rotate(circlePoint(radius, a))),
			center.Add(rotation.Rotate(circlePoint(radius, b))),
		)
	}
	return dst
}

func appendEdges(dst []math.Vec3, corners []math.Vec3, edges [][2]int) []math.Vec3 {
	for _, e := range edges {
		dst = append(dst, corners[e[0]], corners[e[1]])
	}
	return dst
}

var rectangleEdges = [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}

// WireRectangle appends the outline of a rectangle of size lying in the XY
// plane of rotation.
func WireRectangle(dst []math.Vec3, position math.Vec3, size math.Vec2, rotation math.Quaternion) []math.Vec3 {
	half := size.MulScalar(0.5)
	corners := [4]math.Vec3{
		position.Add(rotation.Rotate(math.NewVec3(-half.X, -half.Y, 0))),
		position.Add(rotation.Rotate(math.NewVec3(half.X, -half.Y, 0))),
		position.Add(rotation.Rotate(math.NewVec3(half.X, half.Y, 0))),
		position.Add(rotation.Rotate(math.NewVec3(-half.X, half.Y, 0))),
	}
	return appendEdges(dst, corners[:], rectangleEdges)
}

// WireCircle appends one segment per step around a circle.
func WireCircle(dst []math.Vec3, position math.Vec3, radius float32, rotation math.Quaternion) []math.Vec3 {
	return appendArc(dst, position, rotation, radius, 0, Segments)
}

func WireHollowCircle(dst []math.Vec3, position math.Vec3, innerRadius, outerRadius float32, rotation math.Quaternion) []math.Vec3 {
	dst = appendArc(dst, position, rotation, innerRadius, 0, Segments)
	return appendArc(dst, position, rotation, outerRadius, 0, Segments)
}

// capsuleFrame returns the radius, the offset of the two arc centers along
// the local Y axis and the rotation that makes the long axis local Y.
func capsuleFrame(size math.Vec2, rotation math.Quaternion, isVertical bool) (float32, float32, math.Quaternion) {
	half := size.MulScalar(0.5)
	if isVertical {
		return half.X, max(half.Y-half.X, 0), rotation
	}
	return half.Y, max(half.X-half.Y, 0), rotation.Mul(math.NewQuatRotateZ(math.K_HALF_PI))
}

// WireCapsule appends two half circles joined by two straight sides.
func WireCapsule(dst []math.Vec3, position math.Vec3, size math.Vec2, rotation math.Quaternion, isVertical bool) []math.Vec3 {
	radius, offset, rot := capsuleFrame(size, rotation, isVertical)
	top := position.Add(rot.Rotate(math.NewVec3(0, offset, 0)))
	bottom := position.Add(rot.Rotate(math.NewVec3(0, -offset, 0)))

	dst = appendArc(dst, top, rot, radius, 0, Segments/2)
	dst = appendArc(dst, bottom, rot, radius, math.K_PI, Segments/2)
	return append(dst,
		top.Add(rot.Rotate(math.NewVec3(radius, 0, 0))),
		bottom.Add(rot.Rotate(math.NewVec3(radius, 0, 0))),
		top.Add(rot.Rotate(math.NewVec3(-radius, 0, 0))),
		bottom.Add(rot.Rotate(math.NewVec3(-radius, 0, 0))),
	)
}

// boxCorners returns the corners of a box rotated about its center.
//
//	  6---------7
//	2---------3 |
//	| |       | |
//	| 5_______|_8
//	1_________4
func boxCorners(position, size math.Vec3, rotation math.Quaternion) [8]math.Vec3 {
	h := size.MulScalar(0.5)
	local := [8]math.Vec3{
		{X: -h.X, Y: -h.Y, Z: -h.Z},
		{X: -h.X, Y: h.Y, Z: -h.Z},
		{X: h.X, Y: h.Y, Z: -h.Z},
		{X: h.X, Y: -h.Y, Z: -h.Z},
		{X: -h.X, Y: -h.Y, Z: h.Z},
		{X: -h.X, Y: h.Y, Z: h.Z},
		{X: h.X, Y: h.Y, Z: h.Z},
		{X: h.X, Y: -h.Y, Z: h.Z},
	}
	var out [8]math.Vec3
	for i, p := range local {
		out[i] = position.Add(rotation.Rotate(p))
	}
	return out
}

var boxEdges = [][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// WireBox appends the twelve edges of a box.
func WireBox(dst []math.Vec3, position, size math.Vec3, rotation math.Quaternion) []math.Vec3 {
	corners := boxCorners(position, size, rotation)
	return appendEdges(dst, corners[:], boxEdges)
}

// WireSphere appends three orthogonal great circles.
func WireSphere(dst []math.Vec3, position math.Vec3, radius float32) []math.Vec3 {
	dst = appendArc(dst, position, math.NewQuatIdentity(), radius, 0, Segments)
	dst = appendArc(dst, position, math.NewQuatRotateX(math.K_HALF_PI), radius, 0, Segments)
	return appendArc(dst, position, math.NewQuatRotateY(math.K_HALF_PI), radius, 0, Segments)
}

// appendRings appends two circles at ±offset on the local Y axis and four
// lines joining them.
func appendRings(dst []math.Vec3, position math.Vec3, radius, offset float32, rotation math.Quaternion) []math.Vec3 {
	top := position.Add(rotation.Rotate(math.NewVec3(0, offset, 0)))
	bottom := position.Add(rotation.Rotate(math.NewVec3(0, -offset, 0)))
	flat := rotation.Mul(math.NewQuatRotateX(math.K_HALF_PI))

	dst = appendArc(dst, top, flat, radius, 0, Segments)
	dst = appendArc(dst, bottom, flat, radius, 0, Segments)
	for i := 0; i < 4; i++ {
		side := flat.Rotate(circlePoint(radius, math.K_HALF_PI*float32(i)))
		dst = append(dst, top.Add(side), bottom.Add(side))
	}
	return dst
}

// WireCylinder appends the two end circles and four side lines of a cylinder
// whose axis is the local Y axis.
func WireCylinder(dst []math.Vec3, position math.Vec3, radius, height float32, rotation math.Quaternion) []math.Vec3 {
	return appendRings(dst, position, radius, height/2, rotation)
}

// WireCapsule3D appends a cylinder outline capped by two domes, each drawn as
// two crossing half circles. A capsule no taller than its diameter is drawn
// as a sphere.
func WireCapsule3D(dst []math.Vec3, position math.Vec3, radius, height float32, rotation math.Quaternion) []math.Vec3 {
	if height <= radius*2 {
		return WireSphere(dst, position, radius)
	}
	offset := height/2 - radius
	dst = appendRings(dst, position, radius, offset, rotation)

	top := position.Add(rotation.Rotate(math.NewVec3(0, offset, 0)))
	bottom := position.Add(rotation.Rotate(math.NewVec3(0, -offset, 0)))
	crossed := rotation.Mul(math.NewQuatRotateY(math.K_HALF_PI))

	dst = appendArc(dst, top, rotation, radius, 0, Segments/2)
	dst = appendArc(dst, top, crossed, radius, 0, Segments/2)
	dst = appendArc(dst, bottom, rotation, radius, math.K_PI, Segments/2)
	return appendArc(dst, bottom, crossed, radius, math.K_PI, Segments/2)
}
