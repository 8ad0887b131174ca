package math

// FaceNormal returns the unit normal of the triangle (a, b, c). Counter-clockwise
// triangles seen from the tip of the normal are front facing.
func FaceNormal(a, b, c Vec3) Vec3 {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	return edge1.Cross(edge2).Normalized()
}

// ExtentsOf returns the axis aligned bounds of the given points. The zero
// Extents3D is returned for an empty slice.
func ExtentsOf(points []Vec3) Extents3D {
	if len(points) == 0 {
		return Extents3D{}
	}
	out := Extents3D{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		out.Min = Vec3{MinComponent(out.Min.X, p.X), MinComponent(out.Min.Y, p.Y), MinComponent(out.Min.Z, p.Z)}
		out.Max = Vec3{MaxComponent(out.Max.X, p.X), MaxComponent(out.Max.Y, p.Y), MaxComponent(out.Max.Z, p.Z)}
	}
	return out
}

// Expand grows the extents so they contain p.
func (e Extents3D) Expand(p Vec3) Extents3D {
	e.Min = Vec3{MinComponent(e.Min.X, p.X), MinComponent(e.Min.Y, p.Y), MinComponent(e.Min.Z, p.Z)}
	e.Max = Vec3{MaxComponent(e.Max.X, p.X), MaxComponent(e.Max.Y, p.Y), MaxComponent(e.Max.Z, p.Z)}
	return e
}

func (e Extents3D) Center() Vec3 {
	return e.Min.Add(e.Max).MulScalar(0.5)
}
