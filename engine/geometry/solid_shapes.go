package geometry

import "github.com/spaghettifunk/drawbug/engine/math"

// capsuleSeamEpsilon decides which arc a capsule vertex belongs to. Points
// on the X axis go to the upper arc.
const capsuleSeamEpsilon = 0.00001

const (
	sphereRings = Segments
	domeRings   = Segments / 2
)

// SolidRectangle appends a two triangle quad in the XY plane of rotation.
func SolidRectangle(m Mesh, position math.Vec3, size math.Vec2, rotation math.Quaternion) Mesh {
	half := size.MulScalar(0.5)
	v := m.base()
	m.Vertices = append(m.Vertices,
		position.Add(rotation.Rotate(math.NewVec3(-half.X, -half.Y, 0))),
		position.Add(rotation.Rotate(math.NewVec3(half.X, -half.Y, 0))),
		position.Add(rotation.Rotate(math.NewVec3(half.X, half.Y, 0))),
		position.Add(rotation.Rotate(math.NewVec3(-half.X, half.Y, 0))),
	)
	m = m.triangle(v, v+2, v+1)
	return m.triangle(v, v+3, v+2)
}

// SolidCircle appends a fan of Segments vertices. The fan is anchored on
// the first vertex, which gives Segments-2 triangles.
func SolidCircle(m Mesh, position math.Vec3, radius float32, rotation math.Quaternion) Mesh {
	v := m.base()
	for i := 0; i < Segments; i++ {
		m.Vertices = append(m.Vertices, position.Add(rotation.Rotate(circlePoint(radius, segmentAngle(i)))))
		if i+2 < Segments {
			m = m.triangle(v, v+uint32(i)+2, v+uint32(i)+1)
		}
	}
	return m
}

// SolidHollowCircle appends a ring. The inner vertices come first, followed
// by the outer ones.
func SolidHollowCircle(m Mesh, position math.Vec3, innerRadius, outerRadius float32, rotation math.Quaternion) Mesh {
	v := m.base()
	for i := 0; i < Segments; i++ {
		m.Vertices = append(m.Vertices, position.Add(rotation.Rotate(circlePoint(innerRadius, segmentAngle(i)))))
	}
	for i := 0; i < Segments; i++ {
		m.Vertices = append(m.Vertices, position.Add(rotation.Rotate(circlePoint(outerRadius, segmentAngle(i)))))
	}
	const n = Segments
	for i := uint32(0); i < n; i++ {
		m = m.triangle(v+i, v+(i+1)%n, v+i+n)
		m = m.triangle(v+i, v+i+n, v+n+(n+i-1)%n)
	}
	return m
}

// SolidCapsule appends a flat capsule. The circle fan is split into an upper
// and a lower arc, and two extra vertices with two triangles close the
// straight sides.
func SolidCapsule(m Mesh, position math.Vec3, size math.Vec2, rotation math.Quaternion, isVertical bool) Mesh {
	radius, offset, rot := capsuleFrame(size, rotation, isVertical)
	lower := math.NewVec3(0, -offset, 0)
	upper := math.NewVec3(0, offset, 0)
	place := func(p math.Vec3) math.Vec3 {
		return position.Add(rot.Rotate(p))
	}

	v := m.base()
	for i := 0; i < Segments; i++ {
		p := circlePoint(radius, segmentAngle(i))
		if p.Y < -capsuleSeamEpsilon {
			p = p.Add(lower)
		} else {
			p = p.Add(upper)
		}
		m.Vertices = append(m.Vertices, place(p))
		if i+2 < Segments {
			m = m.triangle(v, v+uint32(i)+2, v+uint32(i)+1)
		}
	}

	const seam = Segments/2 + 1
	m.Vertices = append(m.Vertices,
		place(circlePoint(radius, segmentAngle(seam-1)).Add(lower)),
		place(circlePoint(radius, 0).Add(lower)),
	)
	m = m.triangle(v+seam, v+Segments, v+seam-1)
	return m.triangle(v, v+Segments+1, v+Segments-1)
}

var boxTriangles = [36]uint32{
	0, 1, 2, 0, 2, 3, // -Z
	7, 6, 4, 4, 6, 5, // +Z
	3, 2, 6, 3, 6, 7, // +X
	4, 5, 1, 4, 1, 0, // -X
	1, 5, 6, 1, 6, 2, // +Y
	0, 7, 4, 0, 3, 7, // -Y
}

// SolidBox appends the eight corners of a box and twelve outward facing
// triangles.
func SolidBox(m Mesh, position, size math.Vec3, rotation math.Quaternion) Mesh {
	v := m.base()
	corners := boxCorners(position, size, rotation)
	m.Vertices = append(m.Vertices, corners[:]...)
	for _, index := range boxTriangles {
		m.Indices = append(m.Indices, v+index)
	}
	return m
}

// appendGrid triangulates a (rings+1) x (Segments+1) vertex grid that
// starts at v. flip reverses the winding.
func appendGrid(m Mesh, v uint32, rings int, flip bool) Mesh {
	const row = Segments + 1
	for lat := uint32(0); lat < uint32(rings); lat++ {
		cur := v + lat*row
		next := v + (lat+1)*row
		for lon := uint32(0); lon < Segments; lon++ {
			if flip {
				m = m.triangle(cur+lon, cur+lon+1, next+lon+1)
				m = m.triangle(cur+lon, next+lon+1, next+lon)
			} else {
				m = m.triangle(cur+lon, next+lon+1, cur+lon+1)
				m = m.triangle(cur+lon, next+lon, next+lon+1)
			}
		}
	}
	return m
}

// SolidSphere appends a UV sphere with poles on the Z axis.
func SolidSphere(m Mesh, position math.Vec3, radius float32) Mesh {
	v := m.base()
	for lat := 0; lat <= sphereRings; lat++ {
		theta := float32(lat) / sphereRings * math.K_PI
		for lon := 0; lon <= Segments; lon++ {
			phi := float32(lon) / Segments * math.K_PI_2
			p := math.NewVec3(
				math.Sin(theta)*math.Cos(phi),
				math.Sin(theta)*math.Sin(phi),
				math.Cos(theta),
			)
			m.Vertices = append(m.Vertices, position.Add(p.MulScalar(radius)))
		}
	}
	return appendGrid(m, v, sphereRings, false)
}

// solidDome appends a half sphere around the local +Y axis.
func solidDome(m Mesh, position math.Vec3, radius float32, rotation math.Quaternion) Mesh {
	v := m.base()
	for lat := 0; lat <= domeRings; lat++ {
		theta := float32(lat) / domeRings * math.K_HALF_PI
		for lon := 0; lon <= Segments; lon++ {
			phi := float32(lon) / Segments * math.K_PI_2
			p := math.NewVec3(
				math.Sin(theta)*math.Cos(phi),
				math.Cos(theta),
				math.Sin(theta)*math.Sin(phi),
			)
			m.Vertices = append(m.Vertices, position.Add(rotation.Rotate(p.MulScalar(radius))))
		}
	}
	return appendGrid(m, v, domeRings, true)
}

// solidTube appends the side of a cylinder around the local Y axis. Top and
// bottom vertices alternate.
func solidTube(m Mesh, position math.Vec3, radius, height float32, rotation math.Quaternion) Mesh {
	half := height / 2
	v := m.base()
	for i := 0; i < Segments; i++ {
		a := segmentAngle(i)
		x := math.Cos(a) * radius
		z := math.Sin(a) * radius
		m.Vertices = append(m.Vertices,
			position.Add(rotation.Rotate(math.NewVec3(x, half, z))),
			position.Add(rotation.Rotate(math.NewVec3(x, -half, z))),
		)
	}
	for i := uint32(0); i < Segments; i++ {
		next := (i + 1) % Segments
		top1, bottom1 := v+i*2, v+i*2+1
		top2, bottom2 := v+next*2, v+next*2+1
		m = m.triangle(top1, top2, bottom1)
		m = m.triangle(top2, bottom2, bottom1)
	}
	return m
}

// SolidCylinder appends a closed cylinder whose axis is the local Y axis.
func SolidCylinder(m Mesh, position math.Vec3, radius, height float32, rotation math.Quaternion) Mesh {
	m = solidTube(m, position, radius, height, rotation)
	up := rotation.Rotate(math.NewVec3(0, height/2, 0))
	m = SolidCircle(m, position.Add(up), radius, rotation.Mul(math.NewQuatRotateX(math.K_HALF_PI)))
	return SolidCircle(m, position.Sub(up), radius, rotation.Mul(math.NewQuatRotateX(-math.K_HALF_PI)))
}

// SolidCapsule3D appends a tube capped by two domes. A capsule no taller than
// its diameter is two domes back to back.
func SolidCapsule3D(m Mesh, position math.Vec3, radius, height float32, rotation math.Quaternion) Mesh {
	flipped := rotation.Mul(math.NewQuatRotateX(math.K_PI))
	if height <= radius*2 {
		m = solidDome(m, position, radius, rotation)
		return solidDome(m, position, radius, flipped)
	}
	offset := height/2 - radius
	up := rotation.Rotate(math.NewVec3(0, offset, 0))
	m = solidTube(m, position, radius, offset*2, rotation)
	m = solidDome(m, position.Add(up), radius, rotation)
	return solidDome(m, position.Sub(up), radius, flipped)
}
