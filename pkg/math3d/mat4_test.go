package math3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func dense(m Mat4) *mat.Dense {
	d := mat.NewDense(4, 4, nil)
	for r := range 4 {
		for c := range 4 {
			d.Set(r, c, m[r][c])
		}
	}
	return d
}

func assertMat4(t *testing.T, want, got Mat4) {
	t.Helper()
	for r := range 4 {
		for c := range 4 {
			assert.InDelta(t, want[r][c], got[r][c], eps, "m[%d][%d]", r, c)
		}
	}
}

func TestIdentityMul(t *testing.T) {
	m := World(V3(2, 3, 4), V3(0.1, 0.2, 0.3), V3(5, 6, 7))
	assertMat4(t, m, Identity().Mul(m))
	assertMat4(t, m, m.Mul(Identity()))

	v := V4(1, -2, 3, 1)
	assert.Equal(t, v, Identity().MulVec4(v))
}

func TestMulAgainstGonum(t *testing.T) {
	a := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	b := Scale(V3(2, 0.5, 3)).Mul(RotateX(-1.2))

	var want mat.Dense
	want.Mul(dense(a), dense(b))

	got := a.Mul(b)
	for r := range 4 {
		for c := range 4 {
			assert.InDelta(t, want.At(r, c), got[r][c], eps)
		}
	}
}

func TestDeterminantAgainstGonum(t *testing.T) {
	m := World(V3(2, 3, 4), V3(0.4, -0.2, 1.3), V3(5, 6, 7))
	assert.InDelta(t, mat.Det(dense(m)), m.Determinant(), 1e-6)
	// Rotations and translations preserve volume, scale multiplies it.
	assert.InDelta(t, 24.0, m.Determinant(), 1e-6)
}

func TestTranslation(t *testing.T) {
	assert.Equal(t, V3(1, 2, 3), Translate(V3(1, 2, 3)).Translation())
	m := World(V3(2, 2, 2), V3(0.3, 0.1, -0.4), V3(0, 42, 5))
	assert.Equal(t, V3(0, 42, 5), m.Translation())
}

func TestRotationMatchesVector(t *testing.T) {
	v := V3(1.5, -2, 3)
	for _, theta := range []float64{0.01, 0.7, math.Pi, -2.2} {
		assertVec3(t, v.RotateX(theta), RotateX(theta).MulVec3(v))
		assertVec3(t, v.RotateY(theta), RotateY(theta).MulVec3(v))
		assertVec3(t, v.RotateZ(theta), RotateZ(theta).MulVec3(v))
	}
}

func TestWorldOrder(t *testing.T) {
	scale := V3(2, 2, 2)
	rot := V3(0.3, 0.6, 0.9)
	pos := V3(0, 0, 5)
	v := V3(1, 1, 1)

	want := v.Mul(scale).RotateX(rot.X).RotateY(rot.Y).RotateZ(rot.Z).Add(pos)
	assertVec3(t, want, World(scale, rot, pos).MulVec3(v))
}

func TestMulVec3Dir(t *testing.T) {
	m := Translate(V3(10, 20, 30))
	assert.Equal(t, V3(1, 0, 0), m.MulVec3Dir(V3(1, 0, 0)))
	assert.Equal(t, V3(11, 20, 30), m.MulVec3(V3(1, 0, 0)))
}

func TestLookAt(t *testing.T) {
	t.Run("identity from origin", func(t *testing.T) {
		assertMat4(t, Identity(), LookAt(Zero3(), Forward(), Up()))
	})

	t.Run("target lands on +z", func(t *testing.T) {
		view := LookAt(V3(0, 0, -10), Zero3(), Up())
		assertVec3(t, V3(0, 0, 10), view.MulVec3(Zero3()))
	})

	t.Run("right stays right", func(t *testing.T) {
		view := LookAt(V3(0, 0, -10), Zero3(), Up())
		p := view.MulVec3(V3(1, 0, 0))
		assert.Greater(t, p.X, 0.0)
	})
}

func TestPerspectiveProject(t *testing.T) {
	near, far := 0.1, 100.0
	proj := Perspective(math.Pi/2, 1, near, far)

	t.Run("center stays centered", func(t *testing.T) {
		p := proj.Project(V4(0, 0, 5, 1))
		assert.InDelta(t, 0.0, p.X, eps)
		assert.InDelta(t, 0.0, p.Y, eps)
		assert.InDelta(t, 5.0, p.W, eps)
	})

	t.Run("depth range", func(t *testing.T) {
		assert.InDelta(t, 0.0, proj.Project(V4(0, 0, near, 1)).Z, eps)
		assert.InDelta(t, 1.0, proj.Project(V4(0, 0, far, 1)).Z, 1e-6)
	})

	t.Run("fov edge maps to one", func(t *testing.T) {
		// tan(45°) = 1, so x == z sits on the frustum edge.
		p := proj.Project(V4(5, 5, 5, 1))
		assert.InDelta(t, 1.0, p.X, eps)
		assert.InDelta(t, 1.0, p.Y, eps)
	})

	t.Run("farther shrinks", func(t *testing.T) {
		a := proj.Project(V4(1, 0, 2, 1))
		b := proj.Project(V4(1, 0, 4, 1))
		assert.Greater(t, a.X, b.X)
	})

	t.Run("zero w untouched", func(t *testing.T) {
		p := proj.Project(V4(1, 2, 0, 0))
		assert.Equal(t, 0.0, p.W)
		assert.False(t, math.IsNaN(p.X))
	})
}
