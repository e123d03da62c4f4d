package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Armavica/vis/internal/vislog"
)

// Watcher reloads Config from disk whenever its backing file changes, so a
// long-running host session picks up edits to key-binding overrides
// without restarting (§9 ambient stack).
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	onChange  chan Config
	done      chan struct{}
	log       *vislog.Logger
}

// NewWatcher creates a watcher over path, debouncing successive fsnotify
// events the way a save followed by an editor's atomic rename often fires
// more than one event for a single logical change.
func NewWatcher(path string, log *vislog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsWatcher: fsw,
		path:      path,
		debounce:  100 * time.Millisecond,
		onChange:  make(chan Config, 1),
		done:      make(chan struct{}),
		log:       log,
	}, nil
}

// Start begins watching the directory containing path and returns a
// channel that receives the freshly reloaded Config after each debounced
// change.
func (w *Watcher) Start() (<-chan Config, error) {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}
	w.log.Info(vislog.CatWatcher, "started watching", "dir", dir)
	go w.loop()
	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var pending bool

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C
		}

		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.log.Debug(vislog.CatWatcher, "file event", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = true

		case <-timerC:
			if pending {
				cfg, err := Load(w.path)
				if err != nil {
					w.log.Error(vislog.CatWatcher, "reload failed", "error", err.Error())
				} else {
					select {
					case w.onChange <- cfg:
					default:
					}
				}
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Error(vislog.CatWatcher, "watcher error", "error", err.Error())

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}
