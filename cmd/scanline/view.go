package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/pkg/config"
	"github.com/taigrr/scanline/pkg/controls"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

func newViewCmd(opts *globalOptions) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "view <model>",
		Short: "Show the model in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cfg, r, err := opts.setup(cmd, args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			reload := make(chan *models.Mesh, 1)
			if watch {
				watchModel(ctx, args[0], cfg, logger, func(mesh *models.Mesh) {
					select {
					case reload <- mesh:
					case <-ctx.Done():
					}
				})
			}
			return runTerminal(ctx, cfg, r, reload, logger)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the model when the file changes")
	return cmd
}

// keyAction resolves a terminal key press.
func keyAction(ev uv.KeyPressEvent) controls.Action {
	for name, a := range controls.Keys {
		if ev.MatchString(name) {
			return a
		}
	}
	return controls.None
}

// runTerminal draws frames into the terminal at the configured rate until
// the user quits or ctx is done. The framebuffer keeps its configured size
// and is scaled to whatever the terminal offers.
func runTerminal(ctx context.Context, cfg config.Config, r *render.Renderer, reload <-chan *models.Mesh, logger *slog.Logger) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown terminal", "err", err)
		}
	}()

	ctrl := controls.New(r, cfg.Window.FPS, logger)
	fb := render.NewFramebuffer(cfg.Window.Width, cfg.Window.Height)
	frame := time.Second / time.Duration(cfg.Window.FPS)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := term.Events()
	frames := 0
	for {
		select {
		case <-ctx.Done():
			return nil

		case mesh := <-reload:
			r.SetMesh(mesh)

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
			case uv.KeyPressEvent:
				if !ctrl.Apply(keyAction(ev)) {
					return nil
				}
			}

		case <-ticker.C:
			ctrl.Step(frame.Seconds(), fb)
			fb.DrawScaled(term, uv.Rect(0, 0, width, height))
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}

			frames++
			if frames%cfg.Window.FPS == 0 {
				s := r.Stats()
				logger.Debug("frame", "tested", s.FacesTested, "culled", s.FacesCulled, "clipped", s.FacesClipped, "drawn", s.TrianglesDrawn)
			}
		}
	}
}
