package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dshills/interlace/internal/config"
	"github.com/dshills/interlace/internal/engine"
)

// App owns one editor session: the loaded configuration, the grammar
// registry built from it, and the edit engine. A config watcher can swap
// the registry live so newly declared languages become available to
// AddLanguageBox without a restart.
type App struct {
	cfg     *config.Config
	cfgPath string
	log     *Logger
	editor  *engine.Editor
	watcher *config.Watcher
}

// New loads the configuration at cfgPath (falling back to built-in defaults
// when the file does not exist) and creates an editor whose main document
// uses mainLanguage.
func New(cfgPath, mainLanguage string, log *Logger) (*App, error) {
	if log == nil {
		log = NullLogger
	}

	cfg, err := config.Load(cfgPath)
	switch {
	case errors.Is(err, config.ErrFileNotFound):
		log.Info("no config at %s, using defaults", cfgPath)
		cfg = config.Default()
	case err != nil:
		return nil, err
	}

	registry, err := cfg.Registry()
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}

	ed, err := engine.New(registry, mainLanguage, engine.WithUndoLimit(cfg.Editor.UndoLimit))
	if err != nil {
		return nil, err
	}

	log.Info("editor ready, main language %q, %d grammars", mainLanguage, len(registry.Names()))
	return &App{
		cfg:     cfg,
		cfgPath: cfgPath,
		log:     log,
		editor:  ed,
	}, nil
}

// Editor returns the edit engine.
func (a *App) Editor() *engine.Editor { return a.editor }

// Config returns the active configuration.
func (a *App) Config() *config.Config { return a.cfg }

// OpenFile imports a file into the editor, replacing the current document.
func (a *App) OpenFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if err := a.editor.LoadString(string(data)); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	a.log.Info("opened %s: %d lines", path, a.editor.LineCount())
	return nil
}

// SaveFile exports the document to path using the configured line ending.
func (a *App) SaveFile(path string) error {
	text := a.editor.Text()
	if a.cfg.Editor.LineEnding == "crlf" {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	a.editor.ClearChanged()
	return nil
}

// WatchConfig reloads the configuration on file changes until the context
// is canceled. Only the grammar registry is applied live; other settings
// take effect on the next session.
func (a *App) WatchConfig(ctx context.Context) error {
	w, err := config.NewWatcher(a.cfgPath)
	if err != nil {
		return err
	}
	w.OnChange(func(cfg *config.Config, err error) {
		if err != nil {
			a.log.Warn("config reload failed: %v", err)
			return
		}
		registry, err := cfg.Registry()
		if err != nil {
			a.log.Warn("config reload failed: %v", err)
			return
		}
		a.cfg = cfg
		a.editor.SetRegistry(registry)
		a.log.Info("config reloaded, %d grammars", len(registry.Names()))
	})
	w.Start(ctx)
	a.watcher = w
	return nil
}

// Close stops the config watcher if one is running.
func (a *App) Close() error {
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}
