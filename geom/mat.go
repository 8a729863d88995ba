package geom

import (
	"github.com/hupe1980/pixgo/internal/math32"
)

// Mat3 is a 3x3 float32 matrix in column-major order, i.e. element
// (row r, column c) is stored at index c*3+r.
type Mat3 [9]float32

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// At returns the element at row r, column c.
func (m Mat3) At(r, c int) float32 {
	return m[c*3+r]
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// Mat4 is a 4x4 float32 matrix in column-major order, i.e. element
// (row r, column c) is stored at index c*4+r. This matches the layout
// expected by common graphics APIs.
type Mat4 [16]float32

// Identity returns the 4x4 identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix by v.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z

	return m
}

// Scale returns a scaling matrix by v.
func Scale(v Vec3) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = v.X, v.Y, v.Z

	return m
}

// Perspective returns a right-handed perspective projection matrix with
// the given vertical field of view in radians, aspect ratio and near/far
// clip distances. Depth maps to [-1,1] (OpenGL convention).
func Perspective(fovy, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovy*0.5)

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / (near - far)
	m[11] = -1
	m[14] = (2 * far * near) / (near - far)

	return m
}

// Orthographic returns a right-handed orthographic projection matrix
// for the given clip volume. Depth maps to [-1,1] (OpenGL convention).
func Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	var m Mat4
	m[0] = 2 / (right - left)
	m[5] = 2 / (top - bottom)
	m[10] = -2 / (far - near)
	m[12] = -(right + left) / (right - left)
	m[13] = -(top + bottom) / (top - bottom)
	m[14] = -(far + near) / (far - near)
	m[15] = 1

	return m
}

// LookAt returns a right-handed view matrix for a camera at eye looking
// towards target with the given up direction.
func LookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// At returns the element at row r, column c.
func (m Mat4) At(r, c int) float32 {
	return m[c*4+r]
}

// Row returns row r as a Vec4.
func (m Mat4) Row(r int) Vec4 {
	return Vec4{m[r], m[4+r], m[8+r], m[12+r]}
}

// Column returns column c as a Vec4.
func (m Mat4) Column(c int) Vec4 {
	return Vec4{m[c*4], m[c*4+1], m[c*4+2], m[c*4+3]}
}

// Mat3 returns the upper-left 3x3 part of m.
func (m Mat4) Mat3() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4

	for c := 0; c < 4; c++ {
		x, y, z, w := o[c*4], o[c*4+1], o[c*4+2], o[c*4+3]
		r[c*4] = m[0]*x + m[4]*y + m[8]*z + m[12]*w
		r[c*4+1] = m[1]*x + m[5]*y + m[9]*z + m[13]*w
		r[c*4+2] = m[2]*x + m[6]*y + m[10]*z + m[14]*w
		r[c*4+3] = m[3]*x + m[7]*y + m[11]*z + m[15]*w
	}

	return r
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// TransformPoint applies m to the point p (w=1) and performs the
// perspective divide. If the resulting w is zero the undivided x/y/z
// part is returned.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]

	if w != 0 && w != 1 {
		inv := 1 / w
		return Vec3{x * inv, y * inv, z * inv}
	}

	return Vec3{x, y, z}
}

// TransformVector applies m to the direction v (w=0).
func (m Mat4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// Transpose returns the transpose of m.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// Determinant returns the determinant of m.
func (m Mat4) Determinant() float32 {
	b00 := m[0]*m[5] - m[1]*m[4]
	b01 := m[0]*m[6] - m[2]*m[4]
	b02 := m[0]*m[7] - m[3]*m[4]
	b03 := m[1]*m[6] - m[2]*m[5]
	b04 := m[1]*m[7] - m[3]*m[5]
	b05 := m[2]*m[7] - m[3]*m[6]
	b06 := m[8]*m[13] - m[9]*m[12]
	b07 := m[8]*m[14] - m[10]*m[12]
	b08 := m[8]*m[15] - m[11]*m[12]
	b09 := m[9]*m[14] - m[10]*m[13]
	b10 := m[9]*m[15] - m[11]*m[13]
	b11 := m[10]*m[15] - m[11]*m[14]

	return b00*b11 - b01*b10 + b02*b09 + b03*b08 - b04*b07 + b05*b06
}

// Inverse returns the inverse of m. ok is false if m is singular, in
// which case the zero matrix is returned.
func (m Mat4) Inverse() (Mat4, bool) {
	b00 := m[0]*m[5] - m[1]*m[4]
	b01 := m[0]*m[6] - m[2]*m[4]
	b02 := m[0]*m[7] - m[3]*m[4]
	b03 := m[1]*m[6] - m[2]*m[5]
	b04 := m[1]*m[7] - m[3]*m[5]
	b05 := m[2]*m[7] - m[3]*m[6]
	b06 := m[8]*m[13] - m[9]*m[12]
	b07 := m[8]*m[14] - m[10]*m[12]
	b08 := m[8]*m[15] - m[11]*m[12]
	b09 := m[9]*m[14] - m[10]*m[13]
	b10 := m[9]*m[15] - m[11]*m[13]
	b11 := m[10]*m[15] - m[11]*m[14]

	det := b00*b11 - b01*b10 + b02*b09 + b03*b08 - b04*b07 + b05*b06
	if det == 0 {
		return Mat4{}, false
	}

	inv := 1 / det

	return Mat4{
		(m[5]*b11 - m[6]*b10 + m[7]*b09) * inv,
		(m[2]*b10 - m[1]*b11 - m[3]*b09) * inv,
		(m[13]*b05 - m[14]*b04 + m[15]*b03) * inv,
		(m[10]*b04 - m[9]*b05 - m[11]*b03) * inv,
		(m[6]*b08 - m[4]*b11 - m[7]*b07) * inv,
		(m[0]*b11 - m[2]*b08 + m[3]*b07) * inv,
		(m[14]*b02 - m[12]*b05 - m[15]*b01) * inv,
		(m[8]*b05 - m[10]*b02 + m[11]*b01) * inv,
		(m[4]*b10 - m[5]*b08 + m[7]*b06) * inv,
		(m[1]*b08 - m[0]*b10 - m[3]*b06) * inv,
		(m[12]*b04 - m[13]*b02 + m[15]*b00) * inv,
		(m[9]*b02 - m[8]*b04 - m[11]*b00) * inv,
		(m[5]*b07 - m[4]*b09 - m[6]*b06) * inv,
		(m[0]*b09 - m[1]*b07 + m[2]*b06) * inv,
		(m[13]*b01 - m[12]*b03 - m[14]*b00) * inv,
		(m[8]*b03 - m[9]*b01 + m[10]*b00) * inv,
	}, true
}
