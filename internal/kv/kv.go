// Package kv is the persistence primitive: a flat key-value store the
// application state is serialized into, one JSON blob per key.
package kv

// Store is a get/set boundary so the state layer never sees the backing
// engine. Get reports whether the key existed.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}

// Memory is a map-backed Store for tests.
type Memory struct {
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *Memory) Close() error { return nil }
