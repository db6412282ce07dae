package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newInfoCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <model>",
		Short: "Print mesh statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mesh, err := loadMesh(args[0], opts.logger())
			if err != nil {
				return err
			}

			lo, hi := mesh.GetBounds()
			size := mesh.Size()
			center := mesh.Center()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "name\t%s\n", mesh.Name)
			fmt.Fprintf(w, "vertices\t%d\n", mesh.VertexCount())
			fmt.Fprintf(w, "triangles\t%d\n", mesh.TriangleCount())
			fmt.Fprintf(w, "bounds min\t%.4g %.4g %.4g\n", lo.X, lo.Y, lo.Z)
			fmt.Fprintf(w, "bounds max\t%.4g %.4g %.4g\n", hi.X, hi.Y, hi.Z)
			fmt.Fprintf(w, "size\t%.4g %.4g %.4g\n", size.X, size.Y, size.Z)
			fmt.Fprintf(w, "center\t%.4g %.4g %.4g\n", center.X, center.Y, center.Z)
			fmt.Fprintf(w, "radius\t%.4g\n", mesh.Radius())
			return w.Flush()
		},
	}
}
