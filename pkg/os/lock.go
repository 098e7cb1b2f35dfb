package os

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

type Flock struct {
	f *flock.Flock
}

// NewFileLock creates the lock file at path if needed and returns
// an unacquired lock for it.
func NewFileLock(path string) (*Flock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	_ = f.Close()
	return &Flock{f: flock.New(path)}, nil
}

// TryLock attempts to take the lock without blocking and fails
// if another process holds it.
func (f *Flock) TryLock() error {
	ok, err := f.f.TryLock()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("lock %v is held by another process", f.f.Path())
	}
	return nil
}

func (f *Flock) Unlock() error { return f.f.Unlock() }
