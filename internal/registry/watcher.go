package registry

import (
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes the plugins directory for new or removed
// FastX-Tui-Plugin-* entries and reports them over a channel, so the host
// can re-run Discover without polling (§4.3 supplemental: live discovery).
type Watcher struct {
	fsw *fsnotify.Watcher
	out chan string
}

// WatchPluginsDir starts watching pluginsDir; each create/remove event for
// a FastX-Tui-Plugin-* entry sends that entry's ID on the returned channel.
// Callers should call Discover after receiving from it. The channel closes
// once Close is called.
func WatchPluginsDir(pluginsDir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(pluginsDir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{fsw: fsw, out: make(chan string, 16)}
	go w.pump()
	return w, nil
}

func (w *Watcher) pump() {
	defer close(w.out)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			name := baseName(event.Name)
			if !strings.HasPrefix(name, CandidatePrefix) {
				continue
			}
			w.out <- strings.TrimPrefix(name, CandidatePrefix)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

func baseName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Events returns the channel of changed plugin IDs.
func (w *Watcher) Events() <-chan string { return w.out }

// Close stops watching and releases the underlying fsnotify handle.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
