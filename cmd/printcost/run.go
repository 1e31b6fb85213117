package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chazu/printcost/pkg/engine"
	"github.com/chazu/printcost/pkg/kernel/sdfx"
	"github.com/chazu/printcost/pkg/loader"
	"github.com/chazu/printcost/pkg/logging"
	"github.com/chazu/printcost/pkg/script"
)

func newRunCmd(e *env) *cobra.Command {
	var (
		hours  float64
		cells  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "run SCRIPT",
		Short: "Evaluate a quote script and price the parts it declares",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			eng := engine.NewEngine()
			eng.Timeout = e.cfg.EvalTimeout()
			k := sdfx.New()
			if cells > 0 {
				k.Cells = cells
			}
			r := &script.Runner{
				Engine:       eng,
				Kernel:       k,
				Loader:       loader.New(e.cfg.LoadWorkers),
				DefaultHours: e.cfg.DefaultPrintHours,
			}

			out, err := r.Run(context.Background(), string(src), filepath.Dir(path), e.settings.Snapshot(), hours)
			if err != nil {
				return err
			}
			for _, w := range out.Warnings {
				logging.Warnf("%s: %s", path, w)
			}
			if len(out.Errors) > 0 {
				for _, ev := range out.Errors {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, ev)
				}
				return fmt.Errorf("%s: %d error(s)", path, len(out.Errors))
			}
			if out.Quote == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s declares no parts\n", path)
				return nil
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out.Quote)
			}
			renderQuote(cmd.OutOrStdout(), *out.Quote)
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&hours, "hours", 0, "print hours per copy, overriding the script")
	f.IntVar(&cells, "cells", 0, "tessellation resolution for parametric parts")
	f.BoolVar(&asJSON, "json", false, "print the quote as JSON")
	return cmd
}
