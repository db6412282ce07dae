// Package config loads viewer settings from TOML or YAML files and turns
// them into a configured renderer.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

var (
	// ErrUnsupportedConfig is returned for config files that are neither
	// TOML nor YAML.
	ErrUnsupportedConfig = errors.New("unsupported config format")
	// ErrInvalidConfig wraps every Validate failure.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config holds everything the viewer can be told from a file or flags.
type Config struct {
	Window WindowConfig `toml:"window" yaml:"window"`
	Camera CameraConfig `toml:"camera" yaml:"camera"`
	Model  ModelConfig  `toml:"model" yaml:"model"`
	Render RenderConfig `toml:"render" yaml:"render"`
	Colors ColorConfig  `toml:"colors" yaml:"colors"`
}

// WindowConfig is the framebuffer size and frame rate.
type WindowConfig struct {
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`
	FPS    int `toml:"fps" yaml:"fps"`
}

// CameraConfig describes the camera. FOV is the vertical field of view in
// degrees.
type CameraConfig struct {
	Position []float64 `toml:"position" yaml:"position"`
	Target   []float64 `toml:"target" yaml:"target"`
	FOV      float64   `toml:"fov" yaml:"fov"`
	Near     float64   `toml:"near" yaml:"near"`
	Far      float64   `toml:"far" yaml:"far"`
}

// ModelConfig controls the mesh pose.
type ModelConfig struct {
	// Distance is how far in front of the camera the mesh sits.
	Distance float64 `toml:"distance" yaml:"distance"`
	// Spin is the rotation added every frame, radians per axis.
	Spin      []float64 `toml:"spin" yaml:"spin"`
	Scale     float64   `toml:"scale" yaml:"scale"`
	Normalize bool      `toml:"normalize" yaml:"normalize"`
	// Palette gives every face its own color.
	Palette bool `toml:"palette" yaml:"palette"`
}

// RenderConfig toggles pipeline stages and overlays.
type RenderConfig struct {
	Mode    string    `toml:"mode" yaml:"mode"`
	Cull    bool      `toml:"cull" yaml:"cull"`
	Shading bool      `toml:"shading" yaml:"shading"`
	Light   []float64 `toml:"light" yaml:"light"`
	Grid    int       `toml:"grid" yaml:"grid"`
	Bounds  bool      `toml:"bounds" yaml:"bounds"`
	Workers int       `toml:"workers" yaml:"workers"`
}

// ColorConfig holds hex colors such as "#00ff00". An empty Fill keeps the
// colors the mesh was loaded with.
type ColorConfig struct {
	Background string `toml:"background" yaml:"background"`
	Fill       string `toml:"fill" yaml:"fill"`
	Outline    string `toml:"outline" yaml:"outline"`
	Vertex     string `toml:"vertex" yaml:"vertex"`
	Grid       string `toml:"grid" yaml:"grid"`
	Bounds     string `toml:"bounds" yaml:"bounds"`
}

// Default returns the stock viewer: a 500x300 black window with the mesh
// five units away, spinning 0.01 radians per frame on every axis, drawn
// filled with green outlines.
func Default() Config {
	return Config{
		Window: WindowConfig{Width: 500, Height: 300, FPS: 60},
		Camera: CameraConfig{
			Position: []float64{0, 0, 0},
			Target:   []float64{0, 0, 1},
			FOV:      60,
			Near:     0.1,
			Far:      100,
		},
		Model: ModelConfig{
			Distance: 5,
			Spin:     []float64{0.01, 0.01, 0.01},
			Scale:    1,
		},
		Render: RenderConfig{
			Mode:    render.ModeFilledWire.String(),
			Cull:    true,
			Light:   []float64{0, 0, 1},
			Workers: 1,
		},
		Colors: ColorConfig{
			Background: "#000000",
			Outline:    "#00ff00",
			Vertex:     "#ff0000",
			Grid:       "#808080",
			Bounds:     "#0000ff",
		},
	}
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file over the defaults
// and validates the result. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
		if errors.Is(err, io.EOF) {
			// Empty document
			err = nil
		}
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnsupportedConfig, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks sizes, clip planes, vectors, colors and the render mode,
// and that the camera can see the model's starting position.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.Window.FPS > 0, "fps %d must be positive", c.Window.FPS)
	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "fov %g must be in (0, 180)", c.Camera.FOV)
	check(c.Camera.Near > 0, "near %g must be positive", c.Camera.Near)
	check(c.Camera.Far > c.Camera.Near, "far %g must be beyond near %g", c.Camera.Far, c.Camera.Near)
	check(c.Model.Scale > 0, "scale %g must be positive", c.Model.Scale)
	check(c.Render.Grid >= 0, "grid spacing %d must not be negative", c.Render.Grid)
	check(c.Render.Workers >= 0, "workers %d must not be negative", c.Render.Workers)

	for _, v := range []struct {
		name string
		val  []float64
	}{
		{"camera.position", c.Camera.Position},
		{"camera.target", c.Camera.Target},
		{"model.spin", c.Model.Spin},
		{"render.light", c.Render.Light},
	} {
		check(len(v.val) == 3, "%s needs 3 components, got %d", v.name, len(v.val))
	}
	if len(c.Camera.Position) == 3 && len(c.Camera.Target) == 3 {
		check(vec3(c.Camera.Position) != vec3(c.Camera.Target), "camera position and target coincide")
	}
	if len(errs) == 0 {
		// The model starts on the Z axis; a camera that cannot see it there
		// renders nothing but background.
		aspect := float64(c.Window.Width) / float64(c.Window.Height)
		start := math3d.V3(0, 0, c.Model.Distance)
		check(c.RenderCamera().Frustum(aspect).ContainsPoint(start),
			"model at distance %g is outside the camera view", c.Model.Distance)
	}

	if _, err := render.ParseMode(c.Render.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Palette(); err != nil {
		errs = append(errs, err)
	}
	if c.Colors.Fill != "" {
		if _, err := ParseColor(c.Colors.Fill); err != nil {
			errs = append(errs, fmt.Errorf("fill: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// ParseColor parses a "#rrggbb" hex color into opaque RGBA.
func ParseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return render.RGB(c.RGB255()), nil
}

// Palette parses the overlay colors.
func (c Config) Palette() (render.Palette, error) {
	var p render.Palette
	for _, f := range []struct {
		name string
		hex  string
		dst  *color.RGBA
	}{
		{"background", c.Colors.Background, &p.Background},
		{"outline", c.Colors.Outline, &p.Outline},
		{"vertex", c.Colors.Vertex, &p.Vertex},
		{"grid", c.Colors.Grid, &p.Grid},
		{"bounds", c.Colors.Bounds, &p.Bounds},
	} {
		col, err := ParseColor(f.hex)
		if err != nil {
			return p, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = col
	}
	return p, nil
}

// RenderCamera builds the camera described by the config.
func (c Config) RenderCamera() render.Camera {
	cam := render.DefaultCamera()
	cam.Position = vec3(c.Camera.Position)
	cam.Target = vec3(c.Camera.Target)
	cam.FOV = c.Camera.FOV * math.Pi / 180
	cam.Near = c.Camera.Near
	cam.Far = c.Camera.Far
	return cam
}

// PrepareMesh applies the model settings that change the mesh itself:
// normalization, scale and face colors.
func (c Config) PrepareMesh(mesh *models.Mesh) error {
	if c.Model.Normalize {
		mesh.Normalize()
	}
	mesh.Scale = math3d.V3(c.Model.Scale, c.Model.Scale, c.Model.Scale)

	switch {
	case c.Colors.Fill != "":
		fill, err := ParseColor(c.Colors.Fill)
		if err != nil {
			return fmt.Errorf("fill: %w", err)
		}
		mesh.Paint(fill)
	case c.Model.Palette:
		mesh.PaintPalette()
	}
	return nil
}

// NewRenderer prepares mesh and returns a renderer configured from c.
// The config must already be valid.
func (c Config) NewRenderer(mesh *models.Mesh) (*render.Renderer, error) {
	if mesh != nil {
		if err := c.PrepareMesh(mesh); err != nil {
			return nil, err
		}
	}

	mode, err := render.ParseMode(c.Render.Mode)
	if err != nil {
		return nil, err
	}
	palette, err := c.Palette()
	if err != nil {
		return nil, err
	}

	r := render.NewRenderer(mesh, c.Window.Width, c.Window.Height)
	r.Camera = c.RenderCamera()
	r.Mode = mode
	r.Palette = palette
	r.CullBackfaces = c.Render.Cull
	r.Shading = c.Render.Shading
	r.Light = render.Light{Direction: vec3(c.Render.Light).Normalize()}
	r.GridSpacing = c.Render.Grid
	r.ShowBounds = c.Render.Bounds
	r.Spin = vec3(c.Model.Spin)
	r.Offset = math3d.V3(0, 0, c.Model.Distance)
	r.Workers = max(c.Render.Workers, 1)
	return r, nil
}

// LevelFromFlags maps the --verbose and --quiet flags to a log level.
// Quiet wins when both are set.
func LevelFromFlags(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelError
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func vec3(v []float64) math3d.Vec3 {
	if len(v) != 3 {
		return math3d.Vec3{}
	}
	return math3d.V3(v[0], v[1], v[2])
}
