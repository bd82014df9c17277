package math

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a perspective projection matrix.
// fovY is in degrees, aspect is width/height. Degenerate input (zero depth
// range, zero field of view or zero aspect) yields the identity matrix.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	radians := fovY / 2 * math32.Pi / 180
	deltaZ := far - near
	sine := math32.Sin(radians)
	if deltaZ == 0 || sine == 0 || aspect == 0 {
		return Identity()
	}
	cotangent := math32.Cos(radians) / sine

	m := Identity()
	m[0] = cotangent / aspect
	m[5] = cotangent
	m[10] = -(far + near) / deltaZ
	m[11] = -1
	m[14] = -2 * near * far / deltaZ
	m[15] = 0
	return m
}

// LookAt returns a view matrix looking from eye to center with up direction.
func LookAt(eye, center, up Vec3) Mat4 {
	z := eye.Sub(center).Normalize()
	x := up.Cross(z)
	y := z.Cross(x)
	x = x.Normalize()
	y = y.Normalize()

	return Mat4{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		-x.Dot(eye), -y.Dot(eye), -z.Dot(eye), 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// TransformPoint transforms a point by this matrix (assumes w=1).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

// Ptr returns a pointer to the first element (for OpenGL matrix calls).
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}

// Rotate returns a rotation of angle radians around axis, matching glRotate.
// The axis is normalized first; a zero axis yields a uniform scale by cos(angle).
func Rotate(angle float32, axis Vec3) Mat4 {
	a := axis.Normalize()
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	t := 1 - c

	return Mat4{
		t*a.X*a.X + c, t*a.X*a.Y + a.Z*s, t*a.X*a.Z - a.Y*s, 0,
		t*a.X*a.Y - a.Z*s, t*a.Y*a.Y + c, t*a.Y*a.Z + a.X*s, 0,
		t*a.X*a.Z + a.Y*s, t*a.Y*a.Z - a.X*s, t*a.Z*a.Z + c, 0,
		0, 0, 0, 1,
	}
}

// TransformVector transforms a direction by this matrix (assumes w=0).
func (m Mat4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}
