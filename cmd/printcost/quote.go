package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/printcost/pkg/job"
	"github.com/chazu/printcost/pkg/loader"
	"github.com/chazu/printcost/pkg/quote"
)

type quoteFlags struct {
	scale    string
	copies   int
	filament string
	printer  string
	infill   float64
	hours    float64
	json     bool
}

func newQuoteCmd(e *env) *cobra.Command {
	var fl quoteFlags
	cmd := &cobra.Command{
		Use:   "quote FILE...",
		Short: "Price STL files with the stored cost settings",
		Long: "Price STL files with the stored cost settings. Flags override the\n" +
			"stored filament, printer, infill and print time for this quote only.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scale, err := parseScale(fl.scale)
			if err != nil {
				return err
			}
			if fl.copies < 1 {
				return fmt.Errorf("copies must be at least 1, got %d", fl.copies)
			}

			snap := e.settings.Snapshot()
			overrides := job.New()
			overrides.FilamentID = fl.filament
			overrides.PrinterID = fl.printer
			if cmd.Flags().Changed("infill") {
				if fl.infill < 0 || fl.infill > 100 {
					return fmt.Errorf("infill must be between 0 and 100, got %g", fl.infill)
				}
				overrides.Infill = &fl.infill
			}
			hours := fl.hours
			if hours <= 0 {
				hours = e.cfg.DefaultPrintHours
			}
			o := quote.FromSettings(snap, hours).ForJob(overrides, snap)

			var items []quote.Item
			for _, r := range loader.New(e.cfg.LoadWorkers).Load(context.Background(), args) {
				if r.Err != nil {
					return fmt.Errorf("%s: %w", r.Path, r.Err)
				}
				items = append(items, quote.Price(r.Name, r.Mesh, scale, fl.copies, o))
			}
			q := quote.Build(items, o)

			if fl.json {
				return writeJSON(cmd.OutOrStdout(), q)
			}
			renderQuote(cmd.OutOrStdout(), q)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&fl.scale, "scale", "1", "scale factor, uniform or x,y,z")
	f.IntVar(&fl.copies, "copies", 1, "copies of each file")
	f.StringVar(&fl.filament, "filament", "", "filament id (default: stored selection)")
	f.StringVar(&fl.printer, "printer", "", "printer id (default: stored selection)")
	f.Float64Var(&fl.infill, "infill", 0, "infill percent (default: stored print settings)")
	f.Float64Var(&fl.hours, "hours", 0, "print hours per copy (default: configuration)")
	f.BoolVar(&fl.json, "json", false, "print the quote as JSON")
	return cmd
}
