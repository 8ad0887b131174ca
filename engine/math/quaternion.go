package math

/**
 * @brief Creates an identity quaternion.
 */
func NewQuatIdentity() Quaternion {
	return Quaternion{0, 0, 0, 1.0}
}

/**
 * @brief Returns the normal of the provided quaternion.
 */
func (q Quaternion) Normal() float32 {
	return ksqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

/**
 * @brief Returns a normalized copy of the provided quaternion.
 */
func (q Quaternion) Normalize() Quaternion {
	normal := q.Normal()
	if normal == 0 {
		return NewQuatIdentity()
	}
	return Quaternion{
		q.X / normal,
		q.Y / normal,
		q.Z / normal,
		q.W / normal}
}

/**
 * @brief Returns the conjugate of the provided quaternion. That is,
 * The x, y and z elements are negated, but the w element is untouched.
 */
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

/**
 * @brief Multiplies the provided quaternions. The result rotates by other
 * first and then by q.
 */
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		X: q.X*other.W + q.Y*other.Z - q.Z*other.Y + q.W*other.X,
		Y: -q.X*other.Z + q.Y*other.W + q.Z*other.X + q.W*other.Y,
		Z: q.X*other.Y - q.Y*other.X + q.Z*other.W + q.W*other.Z,
		W: -q.X*other.X - q.Y*other.Y - q.Z*other.Z + q.W*other.W,
	}
}

/**
 * @brief Rotates the vector v by the quaternion q.
 *
 * @param v The vector to rotate.
 * @return The rotated vector.
 */
func (q Quaternion) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).MulScalar(2)
	return v.Add(t.MulScalar(q.W)).Add(u.Cross(t))
}

func (q Quaternion) Compare(other Quaternion, tolerance float32) bool {
	return kabs(q.X-other.X) <= tolerance &&
		kabs(q.Y-other.Y) <= tolerance &&
		kabs(q.Z-other.Z) <= tolerance &&
		kabs(q.W-other.W) <= tolerance
}

/**
 * @brief Creates a rotation matrix from the given quaternion. Each of the
 * first three rows holds the rotated image of the matching basis axis.
 */
func (q Quaternion) ToMat4() Mat4 {
	out := NewMat4Identity()
	n := q.Normalize()

	out.Data[0] = 1.0 - 2.0*(n.Y*n.Y+n.Z*n.Z)
	out.Data[1] = 2.0 * (n.X*n.Y + n.W*n.Z)
	out.Data[2] = 2.0 * (n.X*n.Z - n.W*n.Y)

	out.Data[4] = 2.0 * (n.X*n.Y - n.W*n.Z)
	out.Data[5] = 1.0 - 2.0*(n.X*n.X+n.Z*n.Z)
	out.Data[6] = 2.0 * (n.Y*n.Z + n.W*n.X)

	out.Data[8] = 2.0 * (n.X*n.Z + n.W*n.Y)
	out.Data[9] = 2.0 * (n.Y*n.Z - n.W*n.X)
	out.Data[10] = 1.0 - 2.0*(n.X*n.X+n.Y*n.Y)

	return out
}

/**
 * @brief Creates a quaternion from the given axis and angle.
 *
 * @param axis The axis of rotation.
 * @param angle The angle of rotation in radians.
 * @param normalize Indicates if the quaternion should be normalized.
 * @return A new quaternion.
 */
func NewQuatFromAxisAngle(axis Vec3, angle float32, normalize bool) Quaternion {
	halfAngle := 0.5 * angle
	s := ksin(halfAngle)
	c := kcos(halfAngle)

	q := Quaternion{s * axis.X, s * axis.Y, s * axis.Z, c}
	if normalize {
		q = q.Normalize()
	}
	return q
}

// NewQuatRotateX returns a rotation of angle radians around the X axis.
func NewQuatRotateX(angle float32) Quaternion {
	return NewQuatFromAxisAngle(Vec3{1, 0, 0}, angle, false)
}

// NewQuatRotateY returns a rotation of angle radians around the Y axis.
func NewQuatRotateY(angle float32) Quaternion {
	return NewQuatFromAxisAngle(Vec3{0, 1, 0}, angle, false)
}

// NewQuatRotateZ returns a rotation of angle radians around the Z axis.
func NewQuatRotateZ(angle float32) Quaternion {
	return NewQuatFromAxisAngle(Vec3{0, 0, 1}, angle, false)
}

/**
 * @brief Builds a rotation from euler angles in radians, applied Z, then X, then Y.
 */
func NewQuatFromEuler(x, y, z float32) Quaternion {
	return NewQuatRotateY(y).Mul(NewQuatRotateX(x)).Mul(NewQuatRotateZ(z))
}
