package math3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

const eps = 1e-9

func toR3(v Vec3) r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

func assertVec3(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "X")
	assert.InDelta(t, want.Y, got.Y, eps, "Y")
	assert.InDelta(t, want.Z, got.Z, eps, "Z")
}

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
	}{
		{"axis", V3(3, 0, 0)},
		{"diagonal", V3(1, 2, 3)},
		{"negative", V3(-4, 0.5, -7)},
		{"tiny", V3(1e-6, 2e-6, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.v.Normalize()
			assert.InDelta(t, 1.0, n.Len(), eps)
			assertVec3(t, Vec3(r3.Unit(toR3(tt.v))), n)
		})
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	n := Zero3().Normalize()
	assert.Equal(t, Zero3(), n)
	assert.False(t, math.IsNaN(n.X))
}

func TestVec3CrossAgainstGonum(t *testing.T) {
	pairs := [][2]Vec3{
		{V3(1, 0, 0), V3(0, 1, 0)},
		{V3(1, 2, 3), V3(4, 5, 6)},
		{V3(-2, 0.5, 9), V3(3, -1, 0.25)},
	}

	for _, p := range pairs {
		a, b := p[0], p[1]
		assertVec3(t, Vec3(r3.Cross(toR3(a), toR3(b))), a.Cross(b))
		// Anti-commutative.
		assertVec3(t, a.Cross(b).Negate(), b.Cross(a))
	}
}

func TestVec3Dot(t *testing.T) {
	a, b := V3(1, 2, 3), V3(-4, 5, 0.5)
	assert.InDelta(t, r3.Dot(toR3(a), toR3(b)), a.Dot(b), eps)
	assert.InDelta(t, a.Dot(b), b.Dot(a), eps)
}

func TestVec3Arithmetic(t *testing.T) {
	a, b := V3(1, 2, 3), V3(4, 5, 6)
	assert.Equal(t, V3(5, 7, 9), a.Add(b))
	assert.Equal(t, V3(-3, -3, -3), a.Sub(b))
	assert.Equal(t, V3(4, 10, 18), a.Mul(b))
	assert.Equal(t, V3(2, 4, 6), a.Scale(2))
	assert.Equal(t, V3(0.5, 1, 1.5), a.Div(2))
}

func TestVec3RotateZero(t *testing.T) {
	v := V3(1.5, -2, 3)
	assertVec3(t, v, v.RotateX(0))
	assertVec3(t, v, v.RotateY(0))
	assertVec3(t, v, v.RotateZ(0))
}

func TestVec3RotateRoundTrip(t *testing.T) {
	v := V3(1.5, -2, 3)
	for _, theta := range []float64{0.01, 0.5, math.Pi / 3, 2, -1.25} {
		assertVec3(t, v, v.RotateX(theta).RotateX(-theta))
		assertVec3(t, v, v.RotateY(theta).RotateY(-theta))
		assertVec3(t, v, v.RotateZ(theta).RotateZ(-theta))
	}
}

func TestVec3RotateQuarterTurn(t *testing.T) {
	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"x", V3(0, 1, 0).RotateX(math.Pi / 2), V3(0, 0, 1)},
		{"y", V3(1, 0, 0).RotateY(math.Pi / 2), V3(0, 0, 1)},
		{"z", V3(1, 0, 0).RotateZ(math.Pi / 2), V3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec3(t, tt.want, tt.got)
		})
	}
}

func TestVec3RotatePreservesLength(t *testing.T) {
	v := V3(3, -4, 12)
	r := v.RotateX(0.7).RotateY(1.1).RotateZ(-2.3)
	assert.InDelta(t, v.Len(), r.Len(), eps)
}

func TestVec2(t *testing.T) {
	a, b := V2(3, 4), V2(1, -2)
	assert.Equal(t, V2(4, 2), a.Add(b))
	assert.Equal(t, V2(2, 6), a.Sub(b))
	assert.Equal(t, V2(6, 8), a.Scale(2))
	assert.InDelta(t, 5.0, a.Len(), eps)
	assert.InDelta(t, -5.0, a.Dot(b), eps)
	assert.InDelta(t, 1.0, a.Normalize().Len(), eps)
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())
}

func TestVec4PerspectiveDivide(t *testing.T) {
	v := V4(2, 4, 6, 2).PerspectiveDivide()
	assert.Equal(t, V4(1, 2, 3, 2), v)

	zero := V4(2, 4, 6, 0)
	assert.Equal(t, zero, zero.PerspectiveDivide())
}
