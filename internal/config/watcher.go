package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher reloads the config file when it changes on disk. Only runtime
// tunables (log level, rate interval) are expected to take effect; credentials
// and storage paths require a restart.
type Watcher struct {
	loader   *Loader
	logger   zerolog.Logger
	onReload func(*Config)
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
}

// NewWatcher creates a config watcher. onReload is called with the freshly
// loaded config after every successful reload.
func NewWatcher(loader *Loader, logger zerolog.Logger, onReload func(*Config)) *Watcher {
	return &Watcher{
		loader:   loader,
		logger:   logger.With().Str("component", "config-watcher").Logger(),
		onReload: onReload,
		stopCh:   make(chan struct{}),
	}
}

// Start begins watching the config file directory
func (w *Watcher) Start() error {
	configPath, err := w.loader.Path()
	if err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	w.watcher = fw

	// Watch the directory: editors replace files, which breaks per-file watches.
	if err := fw.Add(filepath.Dir(configPath)); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	go w.run(configPath)

	w.logger.Info().Str("path", configPath).Msg("Config watcher started")
	return nil
}

func (w *Watcher) run(configPath string) {
	// Debounce: editors emit several events per save.
	var timer *time.Timer

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(configPath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(200*time.Millisecond, func() {
				w.reload()
			})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("Config watcher error")
		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := w.loader.Load()
	if err != nil {
		w.logger.Warn().Err(err).Msg("Config reload failed, keeping previous config")
		return
	}

	w.logger.Info().Msg("Config reloaded")

	if w.onReload != nil {
		w.onReload(cfg)
	}
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	close(w.stopCh)
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
