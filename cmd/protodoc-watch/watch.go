package main

import (
	"log"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// fsChangeMsg is sent when the watched protocol file changes.
type fsChangeMsg struct{}

// debounceInterval coalesces the burst of filesystem events editors
// produce when saving a file.
const debounceInterval = 200 * time.Millisecond

// watchFile creates a filesystem watcher for the protocol file. The
// file's directory is watched rather than the file itself, because many
// editors replace the file on save. Returns nil when watching is
// unavailable; the preview then simply stops auto-refreshing.
func watchFile(path string) tea.Cmd {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("fsnotify: failed to create watcher: %v (live reload disabled)", err)
		return nil
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		log.Printf("fsnotify: failed to watch %s: %v (live reload disabled)", path, err)
		return nil
	}
	return runWatcher(watcher, filepath.Base(path))
}

// runWatcher returns a tea.Cmd that delivers one debounced fsChangeMsg
// for events touching the watched file, then closes the watcher. The
// model re-arms the watch after each reload.
func runWatcher(watcher *fsnotify.Watcher, base string) tea.Cmd {
	return func() tea.Msg {
		defer watcher.Close()

		timer := time.NewTimer(time.Hour)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		armed := false
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if armed && !timer.Stop() {
					<-timer.C
				}
				timer.Reset(debounceInterval)
				armed = true

			case <-timer.C:
				return fsChangeMsg{}

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Printf("fsnotify: watcher error: %v", err)
				return nil
			}
		}
	}
}
