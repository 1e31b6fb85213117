package main

import (
	"github.com/spf13/cobra"

	"github.com/chazu/printcost/pkg/config"
	"github.com/chazu/printcost/pkg/logging"
	"github.com/chazu/printcost/pkg/settings"
)

// env is what every subcommand shares once flags are parsed.
type env struct {
	configPath  string
	settingsDir string
	logLevel    string

	cfg      config.Config
	settings *settings.Manager
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "printcost",
		Short:         "Estimate material use and price 3D prints from STL files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup()
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&e.configPath, "config", config.DefaultPath(), "configuration file")
	flags.StringVar(&e.settingsDir, "settings-dir", "", "settings directory (overrides the configuration)")
	flags.StringVar(&e.logLevel, "log-level", "", "debug, info, warn or error (overrides the configuration)")

	root.AddCommand(
		newInfoCmd(e),
		newQuoteCmd(e),
		newRunCmd(e),
		newExportCmd(e),
		newSettingsCmd(e),
	)
	return root
}

func (e *env) setup() error {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return err
	}
	if e.settingsDir != "" {
		cfg.SettingsDir = e.settingsDir
	}
	if e.logLevel != "" {
		cfg.LogLevel = e.logLevel
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return err
	}
	store, err := settings.NewFileStore(cfg.SettingsDir)
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.settings = settings.NewManager(store)
	logging.Debugf("settings from %s", cfg.SettingsDir)
	return nil
}
