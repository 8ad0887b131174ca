package config

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/drawbug/engine/core"
)

var ErrWatcherClosed = errors.New("settings watcher already closed")

// Watcher reloads a settings file whenever it changes on disk and delivers
// the parsed result on Updates. Files that fail to parse are reported on
// Errors and the previous settings stay in effect.
type Watcher struct {
	path string

	mutex    sync.Mutex
	fsnotify *fsnotify.Watcher
	isClosed bool
	done     chan struct{}
	stopped  chan struct{}

	updates chan *Settings
	errors  chan error
}

// NewWatcher starts watching path. The parent directory is watched so that
// editors which replace the file on save are followed.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		updates:  make(chan *Settings, 1),
		errors:   make(chan error, 1),
	}
	go w.start()
	return w, nil
}

// Updates delivers every successfully reloaded settings value.
func (w *Watcher) Updates() <-chan *Settings {
	return w.updates
}

func (w *Watcher) Errors() <-chan error {
	return w.errors
}

func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) start() {
	defer close(w.stopped)
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.reload()
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("settings watcher: %s", err)
			w.send(nil, err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	s, err := Load(w.path)
	if err != nil {
		core.LogError("settings reload failed: %s", err)
		w.send(nil, err)
		return
	}
	core.LogInfo("settings reloaded from %s", w.path)
	w.send(s, nil)
}

// send delivers the newest result, replacing one the consumer has not read.
func (w *Watcher) send(s *Settings, err error) {
	if err != nil {
		select {
		case <-w.errors:
		default:
		}
		select {
		case w.errors <- err:
		case <-w.done:
		}
		return
	}
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- s:
	case <-w.done:
	}
}

// Close stops watching. The Updates and Errors channels are closed once the
// watch loop has exited.
func (w *Watcher) Close() error {
	w.mutex.Lock()
	if w.isClosed {
		w.mutex.Unlock()
		return ErrWatcherClosed
	}
	w.isClosed = true
	w.mutex.Unlock()

	close(w.done)
	<-w.stopped
	err := w.fsnotify.Close()
	close(w.updates)
	close(w.errors)
	return err
}
