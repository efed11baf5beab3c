// Package watch provides the minimal fsnotify-backed hook an editor
// integration drives a reload/reparse callback from: watch a grammar
// source file and/or a document file, and invoke a callback whenever
// either changes on disk. This is the primitive a real indexer would be
// built on; the indexer itself is out of scope (spec Non-goals).
package watch

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/opal-lang/langkit/internal/xlog"
)

// Callback is invoked with the path that changed.
type Callback func(path string)

// Watcher watches a fixed set of files and invokes a Callback on write or
// create events. Every such event triggers one callback; rapid repeated
// events (e.g. from editors that write via rename-into-place) are not
// coalesced.
type Watcher struct {
	fsw *fsnotify.Watcher
	log xlog.Logger
	cb  Callback
	done chan struct{}
}

// Option configures a Watcher at construction, following the functional
// options style the lexer uses.
type Option func(*Watcher)

// WithLogger overrides the default component logger.
func WithLogger(l xlog.Logger) Option {
	return func(w *Watcher) { w.log = l }
}

// New creates a Watcher over paths, invoking cb whenever any of them
// changes. The watcher is not yet running; call Start.
func New(paths []string, cb Callback, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}
	w := &Watcher{fsw: fsw, log: xlog.Component("watch"), cb: cb, done: make(chan struct{})}
	for _, o := range opts {
		o(w)
	}
	for _, p := range paths {
		if err := fsw.Add(p); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch: add %q: %w", p, err)
		}
	}
	return w, nil
}

// Start runs the watch loop until Stop is called. Intended to be run in
// its own goroutine.
func (w *Watcher) Start() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.log.Debug("grammar source changed", "path", ev.Name, "op", ev.Op.String())
			w.cb(ev.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "err", err)
		case <-w.done:
			return
		}
	}
}

// Stop terminates Start's loop and releases the underlying fsnotify
// watcher.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsw.Close()
}
