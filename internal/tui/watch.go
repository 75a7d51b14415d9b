package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/arise/internal/logger"
	"github.com/julianstephens/arise/internal/scheduler"
)

type signalMsg scheduler.Signal

type storeChangedMsg struct {
	Path string
}

func waitForSignal(ch <-chan scheduler.Signal) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		sig, ok := <-ch
		if !ok {
			return nil
		}
		return signalMsg(sig)
	}
}

// watchStore watches the directory holding the store file. The JSON store
// replaces its file by rename, which drops a watch on the file itself.
func watchStore(path string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

func waitForStoreChange(w *fsnotify.Watcher, path string) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if touchesStore(ev, path) {
					return storeChangedMsg{Path: ev.Name}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				logger.Warn("Store watcher error", "error", err)
			}
		}
	}
}

// touchesStore matches writes to the store file or its SQLite write-ahead log.
func touchesStore(ev fsnotify.Event, path string) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(ev.Name)
	path = filepath.Clean(path)
	return name == path || name == path+"-wal"
}
