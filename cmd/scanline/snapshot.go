package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/pkg/render"
)

func newSnapshotCmd(opts *globalOptions) *cobra.Command {
	var (
		output string
		frames int
		scale  int
	)
	cmd := &cobra.Command{
		Use:   "snapshot <model>",
		Short: "Render a number of frames and save the last one as a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames < 1 {
				return fmt.Errorf("frames %d: must be at least 1", frames)
			}
			logger, cfg, r, err := opts.setup(cmd, args[0])
			if err != nil {
				return err
			}

			fb := render.NewFramebuffer(cfg.Window.Width, cfg.Window.Height)
			for range frames {
				r.Frame(fb)
			}
			s := r.Stats()
			logger.Debug("last frame", "tested", s.FacesTested, "culled", s.FacesCulled, "clipped", s.FacesClipped, "drawn", s.TrianglesDrawn)

			if err := fb.SaveSnapshot(output, scale); err != nil {
				return err
			}
			logger.Info("wrote snapshot", "path", output, "frames", frames, "scale", scale)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "scanline.png", "PNG file to write")
	cmd.Flags().IntVarP(&frames, "frames", "n", 1, "frames to render before saving")
	cmd.Flags().IntVarP(&scale, "scale", "s", 1, "integer upscale of the saved image")
	return cmd
}
