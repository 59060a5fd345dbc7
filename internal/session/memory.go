package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]Session
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]Session),
	}
}

func (m *MemoryStore) TTL() time.Duration { return m.ttl }

func (m *MemoryStore) Create(_ context.Context) (Session, error) {
	s := Session{
		ID:        uuid.NewString(),
		ExpiresAt: m.now().Add(m.ttl),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.Expired(m.now()) {
		return Session{}, ErrNotFound
	}
	s.Notices = slices.Clone(s.Notices)
	return s, nil
}

func (m *MemoryStore) SetAuthenticated(_ context.Context, id string, v bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	cur.Authenticated = v
	m.sessions[id] = cur
	return nil
}

func (m *MemoryStore) SaveNotices(_ context.Context, id string, notices []Notice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	cur.Notices = slices.Clone(notices)
	m.sessions[id] = cur
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}
