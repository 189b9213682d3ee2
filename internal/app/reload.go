package app

import (
	"github.com/PasinduAnjana/TextEditor/internal/config"
	"github.com/PasinduAnjana/TextEditor/internal/config/watcher"
	"github.com/PasinduAnjana/TextEditor/internal/renderer"
)

// watchConfig starts reporting changes of the configuration file to the
// event loop.
func (app *Application) watchConfig() error {
	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		app.logger.Warn("config watcher: %v", err)
	}))
	if err != nil {
		return err
	}
	if err := w.Watch(app.configPath); err != nil {
		w.Stop()
		return err
	}
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			return
		}
		if err := app.post(configChanged{}); err != nil {
			app.logger.Debug("config change not delivered: %v", err)
		}
	})
	w.Start()
	app.watcher = w
	return nil
}

// reloadConfig re-reads the configuration file and applies the settings
// that can change at run time. An invalid file keeps the current settings.
func (app *Application) reloadConfig() {
	cfg, err := config.Load(app.configPath)
	if err != nil {
		app.logger.Warn("reloading config: %v", err)
		app.notice = "Config not reloaded: " + err.Error()
		return
	}
	if app.logLevel != "" {
		cfg.Logging.Level = app.logLevel
	}

	theme, err := renderer.ThemeByName(cfg.Theme.Name)
	if err != nil {
		app.fail(err)
		return
	}
	app.theme = theme
	if app.renderer != nil {
		app.renderer.SetTheme(theme)
	}
	app.saver.SetEnabled(cfg.Autosave.Enabled)
	app.state.SetAutoInsert(cfg.Editor.AutoInsert)
	app.state.History().SetMaxEntries(cfg.Editor.HistoryLimit)
	app.logger.SetLevel(cfg.Logging.LogLevel())

	app.config = cfg
	app.notice = "Configuration reloaded"
	app.logger.Info("configuration reloaded from %s", app.configPath)
}
