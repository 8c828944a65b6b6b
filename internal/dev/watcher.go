package dev

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before a reload
// is broadcast.
const DefaultDebounce = 100 * time.Millisecond

// Broadcaster sends a stylesheet reload to live sessions.
// *server.Server implements it.
type Broadcaster interface {
	BroadcastCSSReload(href string) int
}

// CSSWatcherConfig configures a CSSWatcher.
type CSSWatcherConfig struct {
	// File is the stylesheet path on disk.
	File string

	// Href is the URL clients load the stylesheet from.
	Href string

	// Debounce is the quiet period before broadcasting. Default: 100ms.
	Debounce time.Duration

	Logger *slog.Logger
}

// CSSWatcher broadcasts a reload when a stylesheet file changes.
type CSSWatcher struct {
	config  CSSWatcherConfig
	target  Broadcaster
	logger  *slog.Logger
	reloads atomic.Uint64
}

// NewCSSWatcher creates a watcher for config.File that notifies target.
func NewCSSWatcher(config CSSWatcherConfig, target Broadcaster) (*CSSWatcher, error) {
	if config.File == "" || config.Href == "" {
		return nil, errors.New("dev: stylesheet file and href are required")
	}
	if target == nil {
		return nil, errors.New("dev: broadcaster is required")
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	abs, err := filepath.Abs(config.File)
	if err != nil {
		return nil, err
	}
	config.File = abs

	return &CSSWatcher{
		config: config,
		target: target,
		logger: config.Logger.With("component", "css-watcher", "file", abs),
	}, nil
}

// Reloads returns how many reloads have been broadcast.
func (w *CSSWatcher) Reloads() uint64 {
	return w.reloads.Load()
}

// Run watches until ctx is done. The parent directory is watched rather
// than the file, so editors that save by renaming a temp file over the
// original are still seen.
func (w *CSSWatcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.config.File)); err != nil {
		return err
	}
	w.logger.Info("watching stylesheet", "href", w.config.Href)

	timer := time.NewTimer(w.config.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("stylesheet changed", "op", ev.Op.String())
			timer.Reset(w.config.Debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-timer.C:
			sent := w.target.BroadcastCSSReload(w.config.Href)
			w.reloads.Add(1)
			w.logger.Info("stylesheet reloaded", "sessions", sent)
		}
	}
}

func (w *CSSWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.config.File {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
