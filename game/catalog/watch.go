package catalog

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/wricardo/mcp-training/sokoban/game/level"
)

// debounceWindow collapses the burst of events editors emit on save
const debounceWindow = 100 * time.Millisecond

// Watcher reports level files that change on disk. Every reported id has
// already been invalidated in the manager's cache.
type Watcher struct {
	watcher *fsnotify.Watcher
	manager *Manager
	Events  chan int
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching the manager's directory
func (m *Manager) Watch() (*Watcher, error) {
	if m.dir == "" {
		return nil, fmt.Errorf("%w: manager has no directory to watch", ErrLevelsDirNotFound)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(m.dir); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		manager: m,
		Events:  make(chan int, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and closes its channels
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// run reports a file once no event has arrived for it within debounceWindow,
// so a save that truncates and then writes is seen after the final write
func (w *Watcher) run() {
	defer close(w.done)

	pending := make(map[string]*time.Timer)
	settled := make(chan string)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if _, ok := level.IDFromFileName(filepath.Base(event.Name)); !ok {
				continue
			}
			if t, ok := pending[event.Name]; ok {
				t.Reset(debounceWindow)
				continue
			}
			name := event.Name
			pending[name] = time.AfterFunc(debounceWindow, func() {
				select {
				case settled <- name:
				case <-w.done:
				}
			})

		case name := <-settled:
			delete(pending, name)
			id, _ := level.IDFromFileName(filepath.Base(name))
			w.manager.Invalidate(id)
			select {
			case w.Events <- id:
			case <-w.closeCh:
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}

		case <-w.closeCh:
			return
		}
	}
}
