package render

import (
	"cmp"
	"fmt"
	"image/color"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// Mode selects what Draw puts on screen for each triangle.
type Mode uint8

const (
	// ModeWireVertices draws edges plus a small box on every vertex.
	ModeWireVertices Mode = iota
	// ModeWire draws edges only.
	ModeWire
	// ModeFilled draws solid triangles.
	ModeFilled
	// ModeFilledWire draws solid triangles outlined by their edges.
	ModeFilledWire
)

var modeNames = [...]string{"wire-vertices", "wire", "filled", "filled-wire"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode parses the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown render mode %q", s)
}

func (m Mode) filled() bool { return m == ModeFilled || m == ModeFilledWire }
func (m Mode) wire() bool   { return m != ModeFilled }

// FrameStats counts what happened to the faces of the last frame.
type FrameStats struct {
	FacesTested    int
	FacesCulled    int // Backfaces dropped
	FacesClipped   int // Dropped by the near plane
	TrianglesDrawn int
	MeshCulled     bool // Whole mesh outside the view frustum
	// Containment of the transformed mesh bounds in the view frustum.
	Containment Containment
}

// Palette holds the colors Draw uses besides the face colors.
type Palette struct {
	Background color.RGBA
	Outline    color.RGBA
	Vertex     color.RGBA
	Grid       color.RGBA
	Bounds     color.RGBA
}

// DefaultPalette returns a black background with green outlines.
func DefaultPalette() Palette {
	return Palette{
		Background: ColorBlack,
		Outline:    ColorGreen,
		Vertex:     ColorRed,
		Grid:       ColorGray,
		Bounds:     ColorBlue,
	}
}

// VertexBoxSize is the edge length of the boxes ModeWireVertices draws.
const VertexBoxSize = 4

// Renderer turns a mesh into a depth-ordered list of screen triangles each
// Update, and rasterizes that list into a framebuffer on Draw.
type Renderer struct {
	Mesh   *models.Mesh
	Camera Camera
	Width  int
	Height int

	Mode          Mode
	Palette       Palette
	CullBackfaces bool
	Shading       bool
	Light         Light
	// GridSpacing draws a dot grid every N pixels. Zero disables it.
	GridSpacing int
	ShowBounds  bool

	// Spin is added to the mesh rotation on every Update.
	Spin math3d.Vec3
	// Offset is the mesh translation, reapplied on every Update.
	Offset math3d.Vec3

	// Workers > 1 spreads face transforms over that many goroutines.
	Workers int

	triangles []Triangle
	verdicts  []Verdict
	scratch   []Triangle
	world     math3d.Mat4
	stats     FrameStats
}

// NewRenderer creates a renderer with the default camera, palette and pose:
// the mesh five units in front of the camera, spinning 0.01 radians per
// frame on every axis.
func NewRenderer(mesh *models.Mesh, width, height int) *Renderer {
	r := &Renderer{
		Camera:        DefaultCamera(),
		Width:         width,
		Height:        height,
		Mode:          ModeFilledWire,
		Palette:       DefaultPalette(),
		CullBackfaces: true,
		Light:         DefaultLight(),
		Spin:          math3d.V3(0.01, 0.01, 0.01),
		Offset:        math3d.V3(0, 0, 5),
		Workers:       1,
	}
	r.SetMesh(mesh)
	return r
}

// SetMesh swaps the mesh, keeping the current rotation so reloads do not
// jump.
func (r *Renderer) SetMesh(mesh *models.Mesh) {
	if r.Mesh != nil && mesh != nil {
		mesh.Rotation = r.Mesh.Rotation
	}
	r.Mesh = mesh
	if mesh != nil && cap(r.triangles) < len(mesh.Faces) {
		r.triangles = make([]Triangle, 0, len(mesh.Faces))
	}
}

// Resize changes the viewport used for projection. Frame calls it when the
// target framebuffer has a different size.
func (r *Renderer) Resize(width, height int) {
	r.Width = width
	r.Height = height
}

// Stats returns the counters of the last Update.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// Triangles returns the triangles of the last Update in draw order,
// farthest first. The slice is reused by the next frame.
func (r *Renderer) Triangles() []Triangle {
	return r.triangles
}

// Update advances the mesh pose and rebuilds the triangle list: transform,
// cull, project, then sort by descending depth.
func (r *Renderer) Update() {
	r.triangles = r.triangles[:0]
	r.stats = FrameStats{}
	if r.Mesh == nil || r.Width <= 0 || r.Height <= 0 {
		return
	}

	mesh := r.Mesh
	mesh.Rotation = mesh.Rotation.Add(r.Spin)
	mesh.Translation = r.Offset
	r.world = mesh.WorldMatrix()

	aspect := float64(r.Width) / float64(r.Height)
	bounds := AABB{Min: mesh.BoundsMin, Max: mesh.BoundsMax}.Transform(r.world)
	r.stats.Containment = r.Camera.Frustum(aspect).Classify(bounds)
	if r.stats.Containment == Outside {
		r.stats.MeshCulled = true
		return
	}

	fs := NewFrameState(r.Camera, r.world, r.Width, r.Height, r.CullBackfaces, r.Shading, r.Light)
	if r.Workers > 1 && len(mesh.Faces) > r.Workers {
		r.transformParallel(&fs)
	} else {
		r.transformSequential(&fs)
	}

	SortByDepth(r.triangles)
	r.stats.TrianglesDrawn = len(r.triangles)
}

func (r *Renderer) transformSequential(fs *FrameState) {
	for _, face := range r.Mesh.Faces {
		tri, verdict := fs.TransformFace(r.Mesh.Vertices, face)
		r.record(tri, verdict)
	}
}

// transformParallel splits the faces into contiguous chunks, one goroutine
// each, then compacts the results in face order so the output matches the
// sequential path exactly.
func (r *Renderer) transformParallel(fs *FrameState) {
	faces := r.Mesh.Faces
	vertices := r.Mesh.Vertices
	n := len(faces)
	if cap(r.scratch) < n {
		r.scratch = make([]Triangle, n)
		r.verdicts = make([]Verdict, n)
	}
	out := r.scratch[:n]
	verdicts := r.verdicts[:n]

	var g errgroup.Group
	g.SetLimit(r.Workers)
	chunk := (n + r.Workers - 1) / r.Workers
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				out[i], verdicts[i] = fs.TransformFace(vertices, faces[i])
			}
			return nil
		})
	}
	// Workers never fail; a bad index panics instead.
	_ = g.Wait()

	for i := range out {
		r.record(out[i], verdicts[i])
	}
}

func (r *Renderer) record(tri Triangle, verdict Verdict) {
	r.stats.FacesTested++
	switch verdict {
	case Culled:
		r.stats.FacesCulled++
	case Clipped:
		r.stats.FacesClipped++
	default:
		r.triangles = append(r.triangles, tri)
	}
}

// SortByDepth orders triangles farthest first for the painter's algorithm.
// Equal depths keep their relative order.
func SortByDepth(tris []Triangle) {
	slices.SortStableFunc(tris, func(a, b Triangle) int {
		return cmp.Compare(b.AvgDepth, a.AvgDepth)
	})
}

// Draw clears fb and rasterizes the triangles of the last Update back to
// front, then empties the triangle list.
func (r *Renderer) Draw(fb *Framebuffer) {
	fb.Clear(r.Palette.Background)
	if r.GridSpacing > 0 {
		fb.DrawGrid(r.GridSpacing, r.Palette.Grid)
	}

	for _, tri := range r.triangles {
		p0, p1, p2 := tri.ScreenPoints()
		if r.Mode.filled() {
			fb.FillTriangle(p0, p1, p2, tri.Color)
		}
		if r.Mode.wire() {
			fb.DrawTriangle(p0, p1, p2, r.Palette.Outline)
		}
		if r.Mode == ModeWireVertices {
			const half = VertexBoxSize / 2
			for _, p := range [3]Point{p0, p1, p2} {
				fb.DrawRect(p.X-half, p.Y-half, VertexBoxSize, VertexBoxSize, r.Palette.Vertex)
			}
		}
	}

	if r.ShowBounds && r.Mesh != nil && !r.stats.MeshCulled {
		w := NewWireframe(r.Camera, fb)
		w.DrawBox(AABB{Min: r.Mesh.BoundsMin, Max: r.Mesh.BoundsMax}, r.world, r.Palette.Bounds)
		w.DrawAxes(r.world, r.Mesh.Radius())
	}

	r.triangles = r.triangles[:0]
}

// Frame runs Update then Draw, projecting to the size of fb.
func (r *Renderer) Frame(fb *Framebuffer) {
	if fb.Width != r.Width || fb.Height != r.Height {
		r.Resize(fb.Width, fb.Height)
	}
	r.Update()
	r.Draw(fb)
}
