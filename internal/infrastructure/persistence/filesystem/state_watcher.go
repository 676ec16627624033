package filesystem

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// StateWatcher reports changes to one state file made by other processes.
// The parent directory is watched because SafeWrite replaces the file by rename.
type StateWatcher struct {
	watcher   *fsnotify.Watcher
	fileName  string
	changes   chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewStateWatcher starts watching the file that backs key
func NewStateWatcher(pathBuilder *PathBuilder, key string) (*StateWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(pathBuilder.DataRoot()); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch data directory: %w", err)
	}

	w := &StateWatcher{
		watcher:  watcher,
		fileName: filepath.Base(pathBuilder.StateFile(key)),
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Changes delivers one signal per burst of writes; pending signals coalesce
func (w *StateWatcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher and closes the Changes channel
func (w *StateWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
		close(w.changes)
	})
	return err
}

func (w *StateWatcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != w.fileName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("state file changed")
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("state watcher error")
		}
	}
}
