package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chazu/printcost/pkg/estimate"
	"github.com/chazu/printcost/pkg/loader"
	"github.com/chazu/printcost/pkg/mesh"
)

func newInfoCmd(e *env) *cobra.Command {
	var scaleFlag string
	cmd := &cobra.Command{
		Use:   "info FILE...",
		Short: "Show geometry and estimated weight of STL files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scale, err := parseScale(scaleFlag)
			if err != nil {
				return err
			}
			snap := e.settings.Snapshot()
			f := snap.Filament()
			infill := snap.Print.InfillFraction()

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range loader.New(e.cfg.LoadWorkers).Load(context.Background(), args) {
				if r.Err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
					failed++
					continue
				}
				printInfo(out, r, estimate.Analyze(r.Mesh, scale, f.Density, infill), f.Name, infill)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&scaleFlag, "scale", "1", "scale factor, uniform or x,y,z")
	return cmd
}

func printInfo(w io.Writer, r loader.Result, est estimate.Estimate, filament string, infill float64) {
	fmt.Fprintf(w, "%s (%s STL)\n", r.Name, r.Format)
	fmt.Fprintf(w, "  Triangles:     %d\n", est.Triangles)
	fmt.Fprintf(w, "  Dimensions:    %s mm\n", formatVec(est.Dimensions))
	fmt.Fprintf(w, "  Volume:        %.3f cm3\n", est.VolumeCm3)
	fmt.Fprintf(w, "  Weight:        %.2f g (%s, %.0f%% infill)\n", est.WeightGrams, filament, infill*100)
	fmt.Fprintf(w, "  Dominant face: %s\n", est.DominantFace)
	fmt.Fprintf(w, "  Lay flat:      %s deg\n", formatVec(est.LayFlat))
	fmt.Fprintf(w, "  Rest offset:   %.3f mm\n", est.RestOffset)
}

func formatVec(v mesh.Vec3) string {
	return fmt.Sprintf("%.2f x %.2f x %.2f", v.X, v.Y, v.Z)
}
