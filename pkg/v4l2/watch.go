//go:build linux

package v4l2

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reports removal of the device node while streaming. The
// returned channel delivers at most one error and is closed when the
// context ends.
func (d *Device) Watch(ctx context.Context) (<-chan error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(d.path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	gone := make(chan error, 1)
	go func() {
		defer close(gone)
		defer func() { _ = watcher.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-watcher.Events:
				if ev.Name == d.path && ev.Op&fsnotify.Remove != 0 {
					gone <- fmt.Errorf("device node %s was removed", d.path)
					return
				}
			case err := <-watcher.Errors:
				if err != nil {
					gone <- err
				}
				return
			}
		}
	}()
	return gone, nil
}
