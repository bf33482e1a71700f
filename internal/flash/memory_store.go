package flash

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	messages []Message
	expires  time.Time
}

// MemoryStore keeps messages in process. Suitable for a single instance.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*memoryEntry),
	}
}

func (m *MemoryStore) Push(ctx context.Context, sessionID string, msg Message) error {
	if sessionID == "" {
		return ErrEmptySession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.evictExpired(now)

	entry, ok := m.entries[sessionID]
	if !ok {
		entry = &memoryEntry{}
		m.entries[sessionID] = entry
	}
	entry.messages = append(entry.messages, msg)
	entry.expires = now.Add(m.ttl)

	return nil
}

func (m *MemoryStore) Pop(ctx context.Context, sessionID string) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[sessionID]
	if !ok {
		return []Message{}, nil
	}
	delete(m.entries, sessionID)

	if m.now().After(entry.expires) {
		return []Message{}, nil
	}
	return entry.messages, nil
}

func (m *MemoryStore) evictExpired(now time.Time) {
	for id, entry := range m.entries {
		if now.After(entry.expires) {
			delete(m.entries, id)
		}
	}
}
