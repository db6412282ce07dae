// scanline - software 3D rasterizer
// Renders OBJ and glTF models with a painter's-algorithm scanline pipeline
// in the terminal, in a window, or to a PNG.
//
// Controls (view and window):
//
//	1-4    - Wire + vertices, wire, filled, filled + wire
//	C/D    - Enable/disable backface culling
//	L      - Toggle flat shading
//	B      - Toggle bounding box overlay
//	G      - Toggle dot grid
//	+/-    - Zoom
//	Space  - Random spin impulse
//	R      - Reset rotation
//	Esc    - Quit
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/pkg/config"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

var version = "dev"

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	verbose    bool
	quiet      bool

	// Overrides for config values, applied only when the flag is set.
	width     int
	height    int
	mode      string
	noCull    bool
	shading   bool
	grid      int
	bounds    bool
	workers   int
	distance  float64
	fill      string
	palette   bool
	normalize bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "scanline",
		Short:         "Software 3D rasterizer for OBJ and glTF models",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file (.toml, .yaml)")
	pf.BoolVar(&opts.verbose, "verbose", false, "debug logging")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "only log errors")
	pf.IntVar(&opts.width, "width", 0, "framebuffer width")
	pf.IntVar(&opts.height, "height", 0, "framebuffer height")
	pf.StringVarP(&opts.mode, "mode", "m", "", "render mode: wire-vertices, wire, filled, filled-wire")
	pf.BoolVar(&opts.noCull, "no-cull", false, "disable backface culling")
	pf.BoolVar(&opts.shading, "shading", false, "flat shading from the light direction")
	pf.IntVar(&opts.grid, "grid", 0, "dot grid spacing in pixels (0 disables)")
	pf.BoolVar(&opts.bounds, "bounds", false, "draw the bounding box and axes")
	pf.IntVarP(&opts.workers, "workers", "j", 0, "goroutines for the transform stage")
	pf.Float64Var(&opts.distance, "distance", 0, "model distance from the camera")
	pf.StringVar(&opts.fill, "fill", "", "paint every face this hex color")
	pf.BoolVar(&opts.palette, "palette", false, "give every face its own color")
	pf.BoolVar(&opts.normalize, "normalize", false, "center the model and fit it in a 2-unit cube")

	root.AddCommand(
		newViewCmd(opts),
		newWindowCmd(opts),
		newSnapshotCmd(opts),
		newInfoCmd(opts),
	)
	return root
}

// logger builds the process logger from --verbose and --quiet.
func (o *globalOptions) logger() *slog.Logger {
	level := config.LevelFromFlags(o.verbose, o.quiet)
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads --config if given and applies flag overrides.
func (o *globalOptions) loadConfig(cmd *cobra.Command, logger *slog.Logger) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		cfg, err = config.Load(o.configPath)
		if err != nil {
			return cfg, err
		}
		logger.Debug("loaded config", "path", o.configPath)
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Window.Width = o.width
	}
	if flags.Changed("height") {
		cfg.Window.Height = o.height
	}
	if flags.Changed("mode") {
		cfg.Render.Mode = o.mode
	}
	if flags.Changed("no-cull") {
		cfg.Render.Cull = !o.noCull
	}
	if flags.Changed("shading") {
		cfg.Render.Shading = o.shading
	}
	if flags.Changed("grid") {
		cfg.Render.Grid = o.grid
	}
	if flags.Changed("bounds") {
		cfg.Render.Bounds = o.bounds
	}
	if flags.Changed("workers") {
		cfg.Render.Workers = o.workers
	}
	if flags.Changed("distance") {
		cfg.Model.Distance = o.distance
	}
	if flags.Changed("fill") {
		cfg.Colors.Fill = o.fill
	}
	if flags.Changed("palette") {
		cfg.Model.Palette = o.palette
	}
	if flags.Changed("normalize") {
		cfg.Model.Normalize = o.normalize
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadMesh loads the model at path and logs its size.
func loadMesh(path string, logger *slog.Logger) (*models.Mesh, error) {
	mesh, err := models.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	logger.Info("loaded mesh", "path", path, "vertices", mesh.VertexCount(), "faces", mesh.TriangleCount())
	return mesh, nil
}

// setup is the common start of the rendering commands: logger, config,
// mesh and renderer.
func (o *globalOptions) setup(cmd *cobra.Command, path string) (*slog.Logger, config.Config, *render.Renderer, error) {
	logger := o.logger()
	cfg, err := o.loadConfig(cmd, logger)
	if err != nil {
		return nil, cfg, nil, err
	}
	mesh, err := loadMesh(path, logger)
	if err != nil {
		return nil, cfg, nil, err
	}
	r, err := cfg.NewRenderer(mesh)
	if err != nil {
		return nil, cfg, nil, err
	}
	return logger, cfg, r, nil
}

// watchModel reloads path in the background until ctx is done, preparing
// each fresh mesh with cfg before handing it to reload.
func watchModel(ctx context.Context, path string, cfg config.Config, logger *slog.Logger, reload func(*models.Mesh)) {
	go func() {
		err := models.Watch(ctx, path, logger, func(mesh *models.Mesh) {
			if err := cfg.PrepareMesh(mesh); err != nil {
				logger.Error("prepare mesh", "path", path, "err", err)
				return
			}
			reload(mesh)
		})
		if err != nil {
			logger.Error("watch model", "path", path, "err", err)
		}
	}()
}
