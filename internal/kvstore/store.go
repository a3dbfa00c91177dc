// Package kvstore is a synchronous, process-local key-value byte store with
// the semantics of browser local storage: single-key get/set/delete, key
// enumeration, an optional size quota and no multi-key transactions.
package kvstore

import (
	"errors"
	"sort"
)

// ErrQuotaExceeded is returned by Set when the write would push the store
// above its configured byte budget.
var ErrQuotaExceeded = errors.New("kvstore: quota exceeded")

type Store interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Keys lists every key currently stored, sorted.
	Keys() ([]string, error)
}

type options struct {
	maxBytes int64
}

type Option func(*options)

// WithMaxBytes caps the total size of keys plus values. Zero disables the cap.
func WithMaxBytes(n int64) Option {
	return func(o *options) { o.maxBytes = n }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// sizeAfterSet returns the byte total of m once key is replaced by value.
func sizeAfterSet(m map[string][]byte, key string, value []byte) int64 {
	var total int64
	for k, v := range m {
		if k == key {
			continue
		}
		total += int64(len(k) + len(v))
	}
	return total + int64(len(key)+len(value))
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
