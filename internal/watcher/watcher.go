// Package watcher monitors an inbox directory for dropped review CSV
// files and feeds them through the import path as they appear.
package watcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// debounceDelay is how long a file must be quiet after its last write
// before it is imported. Scrapers write CSVs incrementally; importing on
// the first event would read a partial file.
const debounceDelay = 500 * time.Millisecond

// ImportFunc ingests one CSV file. It is called once per settled file.
type ImportFunc func(path string) error

// Watcher watches a directory for new CSV files and imports each one
// after its writes settle.
type Watcher struct {
	dir      string
	importFn ImportFunc
	log      *logrus.Logger

	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	wg     sync.WaitGroup

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a Watcher over dir that calls importFn for each settled
// CSV file.
func New(dir string, importFn ImportFunc, log *logrus.Logger) (*Watcher, error) {
	if importFn == nil {
		return nil, fmt.Errorf("import function cannot be nil")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}

	return &Watcher{
		dir:      dir,
		importFn: importFn,
		log:      log,
		fsw:      fsw,
		stopCh:   make(chan struct{}),
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Start begins watching the inbox directory.
func (w *Watcher) Start() error {
	if err := w.fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.log.WithField("dir", w.dir).Info("watching for review CSV files")

	w.wg.Add(1)
	go w.run()
	return nil
}

// run processes filesystem events until Stop is called.
func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".csv") {
				continue
			}
			w.schedule(event.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("filesystem watcher error")

		case <-w.stopCh:
			return
		}
	}
}

// schedule (re)arms the debounce timer for a file. Each write resets the
// timer, so the import fires once, after the last write settles.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Reset(debounceDelay)
		return
	}

	w.timers[path] = time.AfterFunc(debounceDelay, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		log := w.log.WithField("file", filepath.Base(path))
		if err := w.importFn(path); err != nil {
			log.WithError(err).Error("import failed")
			return
		}
		log.Info("imported")
	})
}

// Stop halts the watcher and waits for the event loop to exit. Pending
// debounce timers are cancelled.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	err := w.fsw.Close()
	w.wg.Wait()

	w.mu.Lock()
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()

	return err
}
