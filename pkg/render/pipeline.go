package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// Triangle is a face after transform and projection, ready to rasterize.
type Triangle struct {
	Points [3]math3d.Vec2
	// AvgDepth is the mean view-space Z of the three vertices. View-space Z
	// grows away from the camera, so a larger AvgDepth is farther.
	AvgDepth float64
	Color    color.RGBA
}

// ScreenPoints returns the vertices rounded to pixel coordinates.
func (t Triangle) ScreenPoints() (Point, Point, Point) {
	return roundPoint(t.Points[0]), roundPoint(t.Points[1]), roundPoint(t.Points[2])
}

func roundPoint(v math3d.Vec2) Point {
	return Point{int(math.Round(v.X)), int(math.Round(v.Y))}
}

// Verdict is the outcome of sending one face through the pipeline.
type Verdict uint8

const (
	// Visible faces produce a Triangle.
	Visible Verdict = iota
	// Culled faces point away from the camera.
	Culled
	// Clipped faces have a vertex in front of the near plane.
	Clipped
)

func (v Verdict) String() string {
	switch v {
	case Visible:
		return "visible"
	case Culled:
		return "culled"
	case Clipped:
		return "clipped"
	default:
		return fmt.Sprintf("Verdict(%d)", uint8(v))
	}
}

// FrameState is the fixed configuration of one frame. It is built once per
// Update and only read afterwards, so faces can be transformed concurrently.
type FrameState struct {
	// ModelView takes mesh space to view space, where the camera sits at the
	// origin looking down +Z.
	ModelView  math3d.Mat4
	Projection math3d.Mat4
	Width      int
	Height     int
	Near       float64

	CullBackfaces bool
	// Mirrored is set when the model transform flips handedness, which
	// reverses the winding of every face.
	Mirrored bool
	Shading  bool
	// LightDir is the unit light direction in view space.
	LightDir math3d.Vec3
}

// NewFrameState captures the camera, mesh pose and viewport for one frame.
func NewFrameState(cam Camera, world math3d.Mat4, width, height int, cull, shading bool, light Light) FrameState {
	view := cam.ViewMatrix()
	return FrameState{
		ModelView:     view.Mul(world),
		Projection:    cam.ProjectionMatrix(float64(width) / float64(height)),
		Width:         width,
		Height:        height,
		Near:          cam.Near,
		CullBackfaces: cull,
		Mirrored:      world.Determinant() < 0,
		Shading:       shading,
		LightDir:      view.MulVec3Dir(light.Direction).Normalize(),
	}
}

// TransformFace runs one face through transform, backface culling, the
// near-plane test and projection. The Triangle is only meaningful when the
// verdict is Visible.
//
// Face indices must lie in [1, len(vertices)]; anything else is corrupt
// input and panics.
func (s *FrameState) TransformFace(vertices []math3d.Vec3, face models.Face) (Triangle, Verdict) {
	idx := face.Indices()
	var v [3]math3d.Vec3
	for i, j := range idx {
		if j < 0 || j >= len(vertices) {
			panic(fmt.Sprintf("render: face (%d, %d, %d) references vertex %d of %d",
				face.A, face.B, face.C, j+1, len(vertices)))
		}
		v[i] = s.ModelView.MulVec3(vertices[j])
	}

	if s.CullBackfaces && IsBackFacing(v[0], v[1], v[2], math3d.Zero3()) != s.Mirrored {
		return Triangle{}, Culled
	}

	// Also rejects vertices at z == 0, where the divide would blow up.
	if v[0].Z < s.Near || v[1].Z < s.Near || v[2].Z < s.Near {
		return Triangle{}, Clipped
	}

	var tri Triangle
	for i := range v {
		p := s.Projection.Project(math3d.V4FromV3(v[i], 1))
		x, y := NDCToScreen(p.X, p.Y, s.Width, s.Height)
		tri.Points[i] = math3d.V2(x, y)
	}
	tri.AvgDepth = (v[0].Z + v[1].Z + v[2].Z) / 3

	tri.Color = face.Color
	if s.Shading {
		n := FaceNormal(v[0], v[1], v[2])
		if s.Mirrored {
			n = n.Negate()
		}
		tri.Color = ApplyIntensity(face.Color, Light{Direction: s.LightDir}.Intensity(n))
	}
	return tri, Visible
}

// FaceNormal returns the unit normal of triangle ABC from the normalized
// edges AB and AC.
func FaceNormal(a, b, c math3d.Vec3) math3d.Vec3 {
	ab := b.Sub(a).Normalize()
	ac := c.Sub(a).Normalize()
	return ab.Cross(ac).Normalize()
}

// IsBackFacing reports whether triangle ABC faces away from a camera at
// camera. Edge-on triangles (dot product exactly zero) are front-facing.
func IsBackFacing(a, b, c, camera math3d.Vec3) bool {
	return FaceNormal(a, b, c).Dot(camera.Sub(a)) < 0
}
