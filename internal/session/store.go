package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/google/uuid"
)

type Store interface {
	Create(ctx context.Context, user models.UserProfile) (*Session, error)
	Get(ctx context.Context, id string) (*Session, bool)
	Delete(ctx context.Context, id string)
	Len() int
}

type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore(ttl time.Duration, now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}

	return &MemoryStore{
		ttl:      ttl,
		now:      now,
		sessions: make(map[string]*Session),
	}
}

func (m *MemoryStore) Create(_ context.Context, user models.UserProfile) (*Session, error) {
	s := New(uuid.NewString(), user, m.now(), m.ttl)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s, nil
}

// Get returns live sessions only; an expired session is treated as missing
// until the sweeper removes it.
func (m *MemoryStore) Get(_ context.Context, id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || s.Expired(m.now()) {
		return nil, false
	}

	return s, true
}

func (m *MemoryStore) Delete(_ context.Context, id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// Sweep ends and removes every expired session, returning how many were removed.
func (m *MemoryStore) Sweep() int {
	now := m.now()

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.Expired(now) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Lock()
		s.End()
		s.Unlock()
	}

	return len(expired)
}

// Run sweeps on every tick until ctx is done.
func (m *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				slog.Info("Expired sessions removed", slog.Int("count", n))
			}
		}
	}
}

// Close ends every session so no dwell timer fires after shutdown.
func (m *MemoryStore) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Lock()
		s.End()
		s.Unlock()
	}
}
