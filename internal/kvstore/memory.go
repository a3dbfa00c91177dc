package kvstore

import "sync"

// Memory keeps everything in a map. It never touches disk.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
	opts options
}

func NewMemory(opts ...Option) *Memory {
	return &Memory{
		data: make(map[string][]byte),
		opts: buildOptions(opts),
	}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.opts.maxBytes > 0 && sizeAfterSet(m.data, key, value) > m.opts.maxBytes {
		return ErrQuotaExceeded
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.data), nil
}
