package repository

import "time"

// MockCache is an in-process CacheRepository for local runs and tests. TTLs
// are honored lazily on read.
type MockCache struct {
	Data    map[string]string
	expires map[string]time.Time
}

func NewMockCache() *MockCache {
	return &MockCache{
		Data:    make(map[string]string),
		expires: make(map[string]time.Time),
	}
}

func (m *MockCache) Get(key string) (string, bool) {
	if deadline, ok := m.expires[key]; ok && time.Now().After(deadline) {
		delete(m.Data, key)
		delete(m.expires, key)
		return "", false
	}
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value string, ttl time.Duration) error {
	m.Data[key] = value
	if ttl != 0 {
		m.expires[key] = time.Now().Add(ttl)
	} else {
		delete(m.expires, key)
	}
	return nil
}
