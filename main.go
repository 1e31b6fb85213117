package main

import (
	"embed"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/chazu/printcost/pkg/config"
	"github.com/chazu/printcost/pkg/logging"
	"github.com/chazu/printcost/pkg/settings"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		logging.Warnf("using default configuration: %v", err)
		cfg = config.Default()
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		logging.Warnf("bad log_level %q: %v", cfg.LogLevel, err)
	}

	var store settings.Store
	fs, err := settings.NewFileStore(cfg.SettingsDir)
	if err != nil {
		logging.Errorf("settings unavailable, changes will not persist: %v", err)
		store = settings.NewMemoryStore()
	} else {
		store = fs
		logging.Infof("settings in %s", fs.Dir)
	}

	app := NewApp(cfg, store)
	err = wails.Run(&options.App{
		Title:  "printcost",
		Width:  1280,
		Height: 800,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup:  app.startup,
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		logging.Errorf("wails: %v", err)
	}
}
