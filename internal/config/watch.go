package config

import (
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the configuration when the file on disk changes and
// delivers the new effective config on C. Editors often replace the file
// rather than writing in place, so the parent directory is watched and
// events are debounced.
type Watcher struct {
	C chan *Config

	path    string
	fsw     *fsnotify.Watcher
	done    chan struct{}
	stopped chan struct{}
}

const watchDebounce = 200 * time.Millisecond

// NewWatcher starts watching the config file at path. Pass the result of
// DefaultConfigPath for the standard location.
func NewWatcher(path string) (*Watcher, error) {
	canon, err := canonicalPath(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(canon)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		C:       make(chan *Config, 1),
		path:    canon,
		fsw:     fsw,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.stopped)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerC = timer.C
			} else {
				timer.Reset(watchDebounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("config watch error: %v", err)
		case <-timerC:
			timer = nil
			timerC = nil
			res, err := LoadFromPath(w.path)
			if err != nil {
				log.Printf("config reload skipped: %v", err)
				continue
			}
			select {
			case w.C <- res.Config:
			default:
				// Drop if the receiver is behind; the next change wins.
			}
		}
	}
}

// Close stops the watcher and releases the inotify resources.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fsw.Close()
	<-w.stopped
	return err
}
