package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/printcost/pkg/loader"
	"github.com/chazu/printcost/pkg/mesh"
	"github.com/chazu/printcost/pkg/stl"
)

func newExportCmd(e *env) *cobra.Command {
	var (
		out       string
		scaleFlag string
		text      bool
	)
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Rewrite an STL file with a scale baked into its vertices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			if !loader.IsSTL(in) {
				return fmt.Errorf("%s: %w", filepath.Base(in), loader.ErrNotSTL)
			}
			scale, err := parseScale(scaleFlag)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			m, _, err := stl.DecodeMesh(filepath.Base(in), data)
			if err != nil {
				return err
			}
			if out == "" {
				out = strings.TrimSuffix(in, filepath.Ext(in)) + "-scaled.stl"
			}

			format := stl.FormatBinary
			if text {
				format = stl.FormatText
			}
			name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
			baked := mesh.Bake(m, scale)
			if err := os.WriteFile(out, stl.Encode(format, name, baked.Triangles()), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d triangles, %s mm)\n",
				out, format, baked.TriangleCount(), formatVec(mesh.Dimensions(baked, mesh.Identity)))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "", "output path (default: FILE-scaled.stl)")
	f.StringVar(&scaleFlag, "scale", "1", "scale factor, uniform or x,y,z")
	f.BoolVar(&text, "text", false, "write the text format instead of binary")
	return cmd
}
