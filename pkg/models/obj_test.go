package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/scanline/pkg/math3d"
)

func TestLoadOBJCube(t *testing.T) {
	mesh, err := LoadOBJ("testdata/cube.obj")
	require.NoError(t, err)

	assert.Equal(t, "cube.obj", mesh.Name)
	assert.Equal(t, 8, mesh.VertexCount())
	assert.Equal(t, 12, mesh.TriangleCount())
	for i, f := range mesh.Faces {
		for _, idx := range []int{f.A, f.B, f.C} {
			assert.GreaterOrEqual(t, idx, 1, "face %d", i)
			assert.LessOrEqual(t, idx, 8, "face %d", i)
		}
		assert.Equal(t, DefaultFaceColor, f.Color)
	}

	assert.Equal(t, math3d.V3(-1, -1, -1), mesh.BoundsMin)
	assert.Equal(t, math3d.V3(1, 1, 1), mesh.BoundsMax)
	assert.Equal(t, math3d.V3(1, 1, 1), mesh.Scale)
}

func TestLoadOBJMissing(t *testing.T) {
	_, err := LoadOBJ("testdata/missing.obj")
	require.Error(t, err)
}

func TestParseOBJCornerForms(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
f 1/1 2/2 3/3
f 1//1 2//1 3//1
f 1/1/1 2/2/1 3/3/1
`
	mesh, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, mesh.Faces, 4)
	for _, f := range mesh.Faces {
		assert.Equal(t, [3]int{0, 1, 2}, f.Indices())
	}
}

func TestParseOBJVertexWeight(t *testing.T) {
	src := "v 1 2 3 0.5\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	mesh, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, math3d.V3(1, 2, 3), mesh.Vertices[0])
}

func TestParseOBJFan(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v -1 0.5 0
f 1 2 3 4 5
`
	mesh, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []Face{
		{A: 1, B: 2, C: 3, Color: DefaultFaceColor},
		{A: 1, B: 3, C: 4, Color: DefaultFaceColor},
		{A: 1, B: 4, C: 5, Color: DefaultFaceColor},
	}, mesh.Faces)
}

func TestParseOBJNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	mesh, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 1, mesh.Faces[0].A)
	assert.Equal(t, 2, mesh.Faces[0].B)
	assert.Equal(t, 3, mesh.Faces[0].C)
}

func TestParseOBJSkipsOtherDirectives(t *testing.T) {
	src := `# comment
mtllib cube.mtl
o thing
g group
usemtl red

v 0 0 0
vn 0 0 1
vt 0 0
v 1 0 0 1.0
v 0 1 0
s 1
f 1 2 3
`
	mesh, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 3, mesh.VertexCount())
	assert.Equal(t, 1, mesh.TriangleCount())
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
		line int
	}{
		{"bad float", "v 0 0 zero\n", ErrMalformedVertex, 1},
		{"short vertex", "v 0 0\n", ErrMalformedVertex, 1},
		{"bad w", "v 0 0 0 junk\n", ErrMalformedVertex, 1},
		{"long vertex", "v 0 0 0 1 2\n", ErrMalformedVertex, 1},
		{"bad index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 two 3\n", ErrMalformedFace, 4},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n", ErrMalformedFace, 3},
		{"bad texture index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/x/y 2/x/y 3/x/y\n", ErrMalformedFace, 4},
		{"bad normal index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//n 2//2 3//3\n", ErrMalformedFace, 4},
		{"too many slashes", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1/1/1 2 3\n", ErrMalformedFace, 4},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ErrMalformedFace, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestParseOBJIndexOutOfRange(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n"
	_, err := ParseOBJ(strings.NewReader(src))
	assert.ErrorIs(t, err, ErrFaceIndex)
}

func TestParseOBJEmpty(t *testing.T) {
	_, err := ParseOBJ(strings.NewReader("# nothing here\n"))
	assert.ErrorIs(t, err, ErrEmptyMesh)

	_, err = ParseOBJ(strings.NewReader("v 0 0 0\n"))
	assert.ErrorIs(t, err, ErrEmptyMesh)
}
