// Package controls maps viewer actions onto a renderer so the terminal and
// window front ends share one set of key bindings.
package controls

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/motion"
	"github.com/taigrr/scanline/pkg/render"
)

// Action is one thing the user can ask the viewer to do.
type Action uint8

// Actions a front end can trigger.
const (
	None Action = iota
	Quit
	ModeWireVertices
	ModeWire
	ModeFilled
	ModeFilledWire
	CullOn
	CullOff
	ToggleShading
	ToggleBounds
	ToggleGrid
	ZoomIn
	ZoomOut
	Impulse
	Reset
)

var actionNames = [...]string{
	"none", "quit",
	"mode-wire-vertices", "mode-wire", "mode-filled", "mode-filled-wire",
	"cull-on", "cull-off",
	"toggle-shading", "toggle-bounds", "toggle-grid",
	"zoom-in", "zoom-out",
	"impulse", "reset",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Keys maps key names, as terminals report them, to actions.
var Keys = map[string]Action{
	"esc":    Quit,
	"escape": Quit,
	"q":      Quit,
	"ctrl+c": Quit,
	"1":      ModeWireVertices,
	"2":      ModeWire,
	"3":      ModeFilled,
	"4":      ModeFilledWire,
	"c":      CullOn,
	"d":      CullOff,
	"l":      ToggleShading,
	"b":      ToggleBounds,
	"g":      ToggleGrid,
	"+":      ZoomIn,
	"=":      ZoomIn,
	"-":      ZoomOut,
	"_":      ZoomOut,
	"space":  Impulse,
	" ":      Impulse,
	"r":      Reset,
}

// DefaultGridSpacing is used when the grid is toggled on from a config
// that had it off.
const DefaultGridSpacing = 10

// ImpulseStrength bounds each axis of a random spin impulse, radians per
// frame.
const ImpulseStrength = 0.1

// Controller applies actions and animation to a renderer. It is not safe
// for concurrent use; front ends call it from their frame loop.
type Controller struct {
	Renderer *render.Renderer
	Spinner  *motion.Spinner
	Zoom     *motion.Zoom

	logger *slog.Logger
	grid   int
}

// New creates a controller for r stepped fps times per second. The
// renderer's Spin becomes the base spin and Offset.Z the starting zoom.
func New(r *render.Renderer, fps int, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	grid := r.GridSpacing
	if grid == 0 {
		grid = DefaultGridSpacing
	}
	return &Controller{
		Renderer: r,
		Spinner:  motion.NewSpinner(fps, r.Spin),
		Zoom:     motion.NewZoom(r.Offset.Z),
		logger:   logger,
		grid:     grid,
	}
}

// Apply performs a. It reports false once the viewer should quit.
func (c *Controller) Apply(a Action) bool {
	r := c.Renderer
	switch a {
	case None:
		return true
	case Quit:
		return false
	case ModeWireVertices:
		r.Mode = render.ModeWireVertices
	case ModeWire:
		r.Mode = render.ModeWire
	case ModeFilled:
		r.Mode = render.ModeFilled
	case ModeFilledWire:
		r.Mode = render.ModeFilledWire
	case CullOn:
		r.CullBackfaces = true
	case CullOff:
		r.CullBackfaces = false
	case ToggleShading:
		r.Shading = !r.Shading
	case ToggleBounds:
		r.ShowBounds = !r.ShowBounds
	case ToggleGrid:
		if r.GridSpacing > 0 {
			r.GridSpacing = 0
		} else {
			r.GridSpacing = c.grid
		}
	case ZoomIn:
		c.Zoom.In()
	case ZoomOut:
		c.Zoom.Out()
	case Impulse:
		c.Spinner.Impulse(math3d.V3(
			(rand.Float64()-0.5)*ImpulseStrength,
			(rand.Float64()-0.5)*ImpulseStrength,
			(rand.Float64()-0.5)*ImpulseStrength,
		))
	case Reset:
		c.Spinner.Reset()
		if r.Mesh != nil {
			r.Mesh.Rotation = math3d.Vec3{}
		}
	}
	c.logger.Debug("action", "action", a, "mode", r.Mode, "cull", r.CullBackfaces, "shading", r.Shading)
	return true
}

// Step advances spin and zoom by dt seconds and renders a frame into fb.
func (c *Controller) Step(dt float64, fb *render.Framebuffer) {
	r := c.Renderer
	r.Spin = c.Spinner.Update()
	r.Offset.Z = c.Zoom.Update(dt)
	r.Frame(fb)
}
