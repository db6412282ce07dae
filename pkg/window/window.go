// Package window presents the renderer in a desktop window with ebiten.
package window

import (
	"context"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/scanline/pkg/controls"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// keyActions binds window keys to viewer actions.
var keyActions = map[ebiten.Key]controls.Action{
	ebiten.KeyEscape:         controls.Quit,
	ebiten.KeyDigit1:         controls.ModeWireVertices,
	ebiten.KeyDigit2:         controls.ModeWire,
	ebiten.KeyDigit3:         controls.ModeFilled,
	ebiten.KeyDigit4:         controls.ModeFilledWire,
	ebiten.KeyC:              controls.CullOn,
	ebiten.KeyD:              controls.CullOff,
	ebiten.KeyL:              controls.ToggleShading,
	ebiten.KeyB:              controls.ToggleBounds,
	ebiten.KeyG:              controls.ToggleGrid,
	ebiten.KeyEqual:          controls.ZoomIn,
	ebiten.KeyNumpadAdd:      controls.ZoomIn,
	ebiten.KeyMinus:          controls.ZoomOut,
	ebiten.KeyNumpadSubtract: controls.ZoomOut,
	ebiten.KeySpace:          controls.Impulse,
	ebiten.KeyR:              controls.Reset,
}

// Game is an ebiten.Game that renders one frame per tick into a fixed-size
// framebuffer and uploads it to the screen.
type Game struct {
	ctrl   *controls.Controller
	fb     *render.Framebuffer
	logger *slog.Logger
	fps    int

	reload chan *models.Mesh
	done   <-chan struct{}
	keys   []ebiten.Key
	frames int
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithFPS sets the tick rate. The default is 60.
func WithFPS(fps int) Option {
	return func(g *Game) { g.fps = fps }
}

// New wraps r. The renderer's Spin becomes the base spin and its Offset.Z
// the starting distance.
func New(r *render.Renderer, opts ...Option) *Game {
	g := &Game{
		fb:     render.NewFramebuffer(r.Width, r.Height),
		logger: slog.Default(),
		fps:    60,
		reload: make(chan *models.Mesh, 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.fps <= 0 {
		g.fps = 60
	}
	g.ctrl = controls.New(r, g.fps, g.logger)
	return g
}

// Reload queues a mesh to replace the current one on the next tick. It is
// safe to call from any goroutine; only the newest queued mesh is kept.
func (g *Game) Reload(mesh *models.Mesh) {
	for {
		select {
		case g.reload <- mesh:
			return
		default:
		}
		select {
		case <-g.reload:
		default:
		}
	}
}

// Framebuffer returns the buffer frames are drawn into.
func (g *Game) Framebuffer() *render.Framebuffer {
	return g.fb
}

// Update handles input and renders the next frame.
func (g *Game) Update() error {
	select {
	case <-g.done:
		return ebiten.Termination
	default:
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if !g.ctrl.Apply(keyActions[k]) {
			return ebiten.Termination
		}
	}

	g.step(1 / float64(g.fps))
	return nil
}

// Draw uploads the framebuffer.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.fb.Pix)
}

// Layout keeps the logical screen at the framebuffer size; ebiten scales
// it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.fb.Width, g.fb.Height
}

// Run opens a window scale times the framebuffer size and blocks until it
// is closed, Escape is pressed or ctx is done.
func (g *Game) Run(ctx context.Context, title string, scale int) error {
	g.done = ctx.Done()
	scale = max(scale, 1)
	ebiten.SetWindowSize(g.fb.Width*scale, g.fb.Height*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(g.fps)
	return ebiten.RunGame(g)
}

// step swaps in a reloaded mesh if one is queued, advances animation by dt
// seconds and renders a frame.
func (g *Game) step(dt float64) {
	select {
	case mesh := <-g.reload:
		g.ctrl.Renderer.SetMesh(mesh)
	default:
	}

	g.ctrl.Step(dt, g.fb)

	g.frames++
	if g.frames%g.fps == 0 {
		s := g.ctrl.Renderer.Stats()
		g.logger.Debug("frame",
			"tested", s.FacesTested,
			"culled", s.FacesCulled,
			"clipped", s.FacesClipped,
			"drawn", s.TrianglesDrawn,
			"mesh_culled", s.MeshCulled,
		)
	}
}
