package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/meysam81/oneoffctl/internal/logger"
	"github.com/meysam81/oneoffctl/internal/utils"
)

// File persists the store as one JSON document. Each operation reloads the
// document under a file lock so several processes can share it; concurrent
// writers to the same key are last-write-wins.
type File struct {
	path string
	lock *flock.Flock
	mu   sync.Mutex
	opts options
}

func NewFile(path string, opts ...Option) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	return &File{
		path: path,
		lock: flock.New(path + ".lock"),
		opts: buildOptions(opts),
	}, nil
}

// Path returns the document location.
func (f *File) Path() string { return f.path }

func (f *File) Get(key string) ([]byte, bool, error) {
	var (
		v  []byte
		ok bool
	)
	err := f.withShared(func(m map[string][]byte) {
		v, ok = m[key]
	})
	return v, ok, err
}

func (f *File) Set(key string, value []byte) error {
	return f.withExclusive(func(m map[string][]byte) (bool, error) {
		if f.opts.maxBytes > 0 && sizeAfterSet(m, key, value) > f.opts.maxBytes {
			return false, ErrQuotaExceeded
		}
		m[key] = append([]byte(nil), value...)
		return true, nil
	})
}

func (f *File) Delete(key string) error {
	return f.withExclusive(func(m map[string][]byte) (bool, error) {
		if _, ok := m[key]; !ok {
			return false, nil
		}
		delete(m, key)
		return true, nil
	})
}

func (f *File) Keys() ([]string, error) {
	var keys []string
	err := f.withShared(func(m map[string][]byte) {
		keys = sortedKeys(m)
	})
	return keys, err
}

// --- internals ---

func (f *File) withShared(fn func(map[string][]byte)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.lock.RLock(); err != nil {
		return fmt.Errorf("kvstore: shared lock: %w", err)
	}
	defer utils.Try(f.lock.Unlock)

	m, err := f.load()
	if err != nil {
		return err
	}
	fn(m)
	return nil
}

func (f *File) withExclusive(fn func(map[string][]byte) (bool, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("kvstore: exclusive lock: %w", err)
	}
	defer utils.Try(f.lock.Unlock)

	m, err := f.load()
	if err != nil {
		return err
	}
	changed, err := fn(m)
	if err != nil || !changed {
		return err
	}
	return utils.WriteJSON(f.path, m, 0o600)
}

func (f *File) load() (map[string][]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string][]byte), nil
		}
		return nil, fmt.Errorf("kvstore: read %s: %w", f.path, err)
	}

	m := make(map[string][]byte)
	if len(data) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		// A torn or hand-edited document is discarded rather than wedging every caller.
		logger.Warn("kvstore: discarding unreadable %s: %v", f.path, err)
		return make(map[string][]byte), nil
	}
	return m, nil
}
