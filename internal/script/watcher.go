package script

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/NBAH79/XConsole/internal/logging"
)

// Watcher calls a function whenever a file is written, created or renamed
// into place. It watches the parent directory so editors that replace the
// file on save are seen too.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func()
	log      *logging.Logger

	mu       sync.Mutex
	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewWatcher starts watching path.
func NewWatcher(path string, onChange func(), log *logging.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Null()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		path:     abs,
		onChange: onChange,
		log:      log.WithComponent("watcher"),
		closeCh:  make(chan struct{}),
	}
	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. Closing twice is a no-op.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()
	return w.watcher.Close()
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
				w.log.Debug("%s: %s", ev.Op, ev.Name)
				w.onChange()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error: %v", err)
		}
	}
}
