package library

import (
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes the music directory and coalesces filesystem churn into a
// single rescan request. Copying an album in produces hundreds of events; the
// debounce window makes that one notify call.
type Watcher struct {
	logger   *slog.Logger
	fs       *fsnotify.Watcher
	debounce time.Duration
	notify   func()
	done     chan struct{}
	stopped  chan struct{}
}

// NewWatcher starts watching root. notify is called from the watcher
// goroutine after events settle; the caller is expected to forward it onto
// the control loop (typically as a Rescan command).
func NewWatcher(logger *slog.Logger, root string, debounce time.Duration, notify func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(root); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		logger:   logger,
		fs:       fsw,
		debounce: debounce,
		notify:   notify,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.stopped)

	// Timer is created stopped; the first relevant event arms it.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			w.logger.Debug("music directory changed", slog.String("event", event.String()))
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", slog.Any("error", err))

		case <-timer.C:
			w.notify()
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fs.Close()
	<-w.stopped
	return err
}
