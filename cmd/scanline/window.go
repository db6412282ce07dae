package main

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/pkg/window"
)

func newWindowCmd(opts *globalOptions) *cobra.Command {
	var (
		scale int
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "window <model>",
		Short: "Show the model in a desktop window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cfg, r, err := opts.setup(cmd, args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			game := window.New(r, window.WithLogger(logger), window.WithFPS(cfg.Window.FPS))
			if watch {
				watchModel(ctx, args[0], cfg, logger, game.Reload)
			}
			return game.Run(ctx, "scanline - "+filepath.Base(args[0]), scale)
		},
	}
	cmd.Flags().IntVarP(&scale, "scale", "s", 2, "window size as a multiple of the framebuffer")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the model when the file changes")
	return cmd
}
