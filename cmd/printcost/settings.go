package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/printcost/pkg/config"
	"github.com/chazu/printcost/pkg/logging"
	"github.com/chazu/printcost/pkg/settings"
)

func newSettingsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect or reset stored settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print every stored record as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), e.settings.Snapshot())
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Overwrite every record with its default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.settings.SaveSnapshot(settings.Defaults()); err != nil {
				return err
			}
			logging.Infof("reset %d settings records", len(settings.Keys()))
			fmt.Fprintf(cmd.OutOrStdout(), "settings reset in %s\n", e.cfg.SettingsDir)
			return nil
		},
	}

	initCfg := &cobra.Command{
		Use:   "init-config",
		Short: "Write the current configuration to the --config path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(e.configPath, e.cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", e.configPath)
			return nil
		},
	}

	cmd.AddCommand(show, reset, initCfg)
	return cmd
}
