package math3d

import "math"

// Mat4 is a 4x4 matrix stored in row-major order and applied to column
// vectors, so m.MulVec4(v) computes M·v and a.Mul(b) applies b first.
//
// For a transform matrix:
// | Xx Yx Zx Tx |   X,Y,Z = basis vectors (rotation/scale)
// | Xy Yy Zy Ty |   T = translation
// | Xz Yz Zz Tz |
// | 0  0  0  1  |
type Mat4 [4][4]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		{1, 0, 0, v.X},
		{0, 1, 0, v.Y},
		{0, 0, 1, v.Z},
		{0, 0, 0, 1},
	}
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{
		{v.X, 0, 0, 0},
		{0, v.Y, 0, 0},
		{0, 0, v.Z, 0},
		{0, 0, 0, 1},
	}
}

// RotateX creates a rotation matrix around the X axis.
// It agrees with Vec3.RotateX.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateY creates a rotation matrix around the Y axis.
// It agrees with Vec3.RotateY.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateZ creates a rotation matrix around the Z axis.
// It agrees with Vec3.RotateZ.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// World composes scale, then rotation about X, Y and Z, then translation.
func World(scale, rotation, translation Vec3) Mat4 {
	return Translate(translation).
		Mul(RotateZ(rotation.Z)).
		Mul(RotateY(rotation.Y)).
		Mul(RotateX(rotation.X)).
		Mul(Scale(scale))
}

// LookAt creates a left-handed view matrix looking from eye towards target.
// In view space the camera sits at the origin looking down +Z, so larger Z
// means farther away.
func LookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize() // Forward
	r := up.Cross(f).Normalize()     // Right
	u := f.Cross(r)                  // Up (recomputed)

	return Mat4{
		{r.X, r.Y, r.Z, -r.Dot(eye)},
		{u.X, u.Y, u.Z, -u.Dot(eye)},
		{f.X, f.Y, f.Z, -f.Dot(eye)},
		{0, 0, 0, 1},
	}
}

// Perspective creates a left-handed perspective projection matrix.
// fov is the vertical field of view in radians.
// aspect is width/height.
// near and far map to depth 0 and 1 after the perspective divide.
// The view-space Z is copied into W so Project can keep it for depth sorting.
func Perspective(fov, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fov/2)
	fn := far / (far - near)

	return Mat4{
		{f / aspect, 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, fn, -near * fn},
		{0, 0, 1, 0},
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := range 4 {
		for col := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row][k] * b[k][col]
			}
			m[row][col] = sum
		}
	}
	return m
}

// MulVec4 transforms a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3]*v.W,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3]*v.W,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3]*v.W,
		m[3][0]*v.X + m[3][1]*v.Y + m[3][2]*v.Z + m[3][3]*v.W,
	}
}

// MulVec3 transforms a Vec3 as a point (w=1) and drops the resulting W.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 1)).Vec3()
}

// MulVec3Dir transforms a Vec3 as a direction (w=0, no translation).
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 0)).Vec3()
}

// Project multiplies v by a projection matrix and performs the perspective
// divide. The returned W is the pre-divide W, the view-space depth for a
// matrix built by Perspective.
func (m Mat4) Project(v Vec4) Vec4 {
	return m.MulVec4(v).PerspectiveDivide()
}

// Determinant returns the determinant of the matrix.
func (m Mat4) Determinant() float64 {
	var det float64
	sign := 1.0
	for col := range 4 {
		det += sign * m[0][col] * m.minor(0, col)
		sign = -sign
	}
	return det
}

// minor returns the determinant of the 3x3 matrix left after removing
// row r and column c.
func (m Mat4) minor(r, c int) float64 {
	var sub [3][3]float64
	i := 0
	for row := range 4 {
		if row == r {
			continue
		}
		j := 0
		for col := range 4 {
			if col == c {
				continue
			}
			sub[i][j] = m[row][col]
			j++
		}
		i++
	}
	return sub[0][0]*(sub[1][1]*sub[2][2]-sub[1][2]*sub[2][1]) -
		sub[0][1]*(sub[1][0]*sub[2][2]-sub[1][2]*sub[2][0]) +
		sub[0][2]*(sub[1][0]*sub[2][1]-sub[1][1]*sub[2][0])
}

// Get returns the element at (row, col).
// Translation extracts the translation component.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[0][3], m[1][3], m[2][3]}
}
