package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-memory TTL cache with a byte-size cap. All state is
// guarded by one mutex; entries past their deadline count as misses and
// a background janitor reclaims them.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*entry
	size    int64
	maxSize int64
	stats   Stats
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

type entry struct {
	value    []byte
	deadline time.Time
	size     int64
}

// NewMemory creates a memory cache capped at maxSizeMB megabytes. A
// zero or negative cap disables eviction by size.
func NewMemory(maxSizeMB int64) *Memory {
	m := &Memory{
		entries: make(map[string]*entry),
		maxSize: maxSizeMB * 1024 * 1024,
		stopCh:  make(chan struct{}),
	}

	m.wg.Add(1)
	go m.janitor()

	return m
}

// Get retrieves a value from the cache
func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok || time.Now().After(e.deadline) {
		if ok {
			m.removeLocked(key, e)
		}
		m.stats.Misses++
		return nil, false
	}

	m.stats.Hits++
	return e.value, true
}

// Set stores a value in the cache with a TTL
func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	e := &entry{
		value:    value,
		deadline: time.Now().Add(ttl),
		size:     int64(len(key) + len(value)),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.entries[key]; ok {
		m.size -= old.size
	}
	m.evictForLocked(e.size)
	m.entries[key] = e
	m.size += e.size
	m.stats.Sets++
	return nil
}

// Delete removes a value from the cache
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[key]; ok {
		m.removeLocked(key, e)
	}
	return nil
}

// Clear removes all values from the cache
func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*entry)
	m.size = 0
	return nil
}

// Stats returns cache statistics
func (m *Memory) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats
	s.Size = m.size
	s.MaxSize = m.maxSize
	return s
}

// Stop gracefully shuts down the cache
func (m *Memory) Stop() {
	close(m.stopCh)
	m.wg.Wait()
}

func (m *Memory) removeLocked(key string, e *entry) {
	delete(m.entries, key)
	m.size -= e.size
}

// evictForLocked frees room for an incoming entry: expired entries
// first, then arbitrary ones until the cap holds.
func (m *Memory) evictForLocked(incoming int64) {
	if m.maxSize <= 0 || m.size+incoming <= m.maxSize {
		return
	}

	now := time.Now()
	for key, e := range m.entries {
		if now.After(e.deadline) {
			m.removeLocked(key, e)
			m.stats.Evictions++
		}
	}

	for key, e := range m.entries {
		if m.size+incoming <= m.maxSize {
			break
		}
		m.removeLocked(key, e)
		m.stats.Evictions++
	}
}

// janitor reclaims expired entries periodically.
func (m *Memory) janitor() {
	defer m.wg.Done()
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for key, e := range m.entries {
				if now.After(e.deadline) {
					m.removeLocked(key, e)
					m.stats.Evictions++
				}
			}
			m.mu.Unlock()
		case <-m.stopCh:
			return
		}
	}
}
