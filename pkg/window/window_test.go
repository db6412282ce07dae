package window

import (
	"image/color"
	"io"
	"log/slog"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/taigrr/scanline/pkg/controls"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

func quad() *models.Mesh {
	m := models.NewMesh("quad")
	m.Vertices = []math3d.Vec3{
		{X: -1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: -1},
	}
	m.Faces = []models.Face{
		{A: 1, B: 2, C: 3, Color: models.DefaultFaceColor},
		{A: 1, B: 3, C: 4, Color: models.DefaultFaceColor},
	}
	m.CalculateBounds()
	return m
}

func newGame(t *testing.T) *Game {
	t.Helper()
	r := render.NewRenderer(quad(), 100, 60)
	r.Spin = math3d.Vec3{}
	return New(r, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), WithFPS(30))
}

func TestKeyBindings(t *testing.T) {
	assert.Equal(t, controls.Quit, keyActions[ebiten.KeyEscape])
	assert.Equal(t, controls.ModeWire, keyActions[ebiten.KeyDigit2])
	assert.Equal(t, controls.CullOff, keyActions[ebiten.KeyD])
	assert.Equal(t, controls.ZoomIn, keyActions[ebiten.KeyEqual])
	assert.Equal(t, controls.None, keyActions[ebiten.KeyF12], "unbound keys do nothing")
}

func TestStepRendersFrame(t *testing.T) {
	g := newGame(t)
	g.step(1.0 / 30)

	assert.Equal(t, 2, g.ctrl.Renderer.Stats().TrianglesDrawn)
	fb := g.Framebuffer()
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, fb.GetPixel(48, 28), "quad is filled")
	assert.Equal(t, render.ColorBlack, fb.GetPixel(0, 0))
}

func TestStepAppliesZoom(t *testing.T) {
	g := newGame(t)
	g.ctrl.Apply(controls.ZoomOut)
	for range 30 {
		g.step(1.0 / 30)
	}
	assert.Equal(t, 5.5, g.ctrl.Renderer.Offset.Z)
}

func TestReloadKeepsNewest(t *testing.T) {
	g := newGame(t)
	first, second := quad(), quad()
	second.Name = "second"
	g.Reload(first)
	g.Reload(second)

	g.step(1.0 / 30)
	assert.Same(t, second, g.ctrl.Renderer.Mesh)
}

func TestLayout(t *testing.T) {
	g := newGame(t)
	w, h := g.Layout(1920, 1080)
	assert.Equal(t, 100, w)
	assert.Equal(t, 60, h)
}
