// Package service contains the business logic for the costing service.
package service

import (
	"sync"
	"time"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/metrics"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/wizard"
)

// sessionEntry guards one stored session. The per-entry mutex serializes
// wizard steps so concurrent requests against the same session cannot
// interleave transitions.
type sessionEntry struct {
	mu        sync.Mutex
	session   *wizard.Session
	expiresAt time.Time
}

// sessionStore is an in-memory TTL store for open costing sessions.
// Sessions are short-lived by design; an idle session is evicted after the
// configured TTL, and the store refuses new sessions at capacity.
type sessionStore struct {
	mu       sync.RWMutex
	capacity int
	ttl      time.Duration
	items    map[string]*sessionEntry
	stopCh   chan struct{}
	stopOnce sync.Once
}

func newSessionStore(capacity int, ttl time.Duration) *sessionStore {
	s := &sessionStore{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*sessionEntry, capacity),
		stopCh:   make(chan struct{}),
	}
	go s.startCleanup()
	return s
}

// Put stores a new session. Returns false when the store is at capacity.
func (s *sessionStore) Put(id string, session *wizard.Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) >= s.capacity {
		if !s.evictExpiredLocked() {
			metrics.RecordSessionOperation("put", "full")
			return false
		}
	}

	s.items[id] = &sessionEntry{
		session:   session,
		expiresAt: time.Now().Add(s.ttl),
	}
	metrics.RecordSessionOperation("put", "success")
	metrics.SetOpenSessions(len(s.items))
	return true
}

// Get returns the entry for a session ID, refreshing its TTL. The expiry
// check and refresh share one critical section: expiresAt is only ever read
// or written under the store lock.
func (s *sessionStore) Get(id string) (*sessionEntry, bool) {
	s.mu.Lock()
	entry, ok := s.items[id]
	if !ok {
		s.mu.Unlock()
		metrics.RecordSessionOperation("get", "miss")
		return nil, false
	}

	if time.Now().After(entry.expiresAt) {
		delete(s.items, id)
		metrics.SetOpenSessions(len(s.items))
		s.mu.Unlock()
		metrics.RecordSessionOperation("get", "expired")
		return nil, false
	}

	entry.expiresAt = time.Now().Add(s.ttl)
	s.mu.Unlock()
	metrics.RecordSessionOperation("get", "hit")
	return entry, true
}

// Delete removes a session from the store.
func (s *sessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; ok {
		delete(s.items, id)
		metrics.RecordSessionOperation("delete", "success")
		metrics.SetOpenSessions(len(s.items))
	}
}

// Len returns the number of open sessions.
func (s *sessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Stop shuts down the background cleanup goroutine.
func (s *sessionStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// evictExpiredLocked drops expired entries. Caller holds the write lock.
// Returns true if any entry was removed.
func (s *sessionStore) evictExpiredLocked() bool {
	removed := false
	currentTime := time.Now()
	for id, entry := range s.items {
		if currentTime.After(entry.expiresAt) {
			delete(s.items, id)
			removed = true
			metrics.RecordSessionOperation("evict", "expired")
		}
	}
	if removed {
		metrics.SetOpenSessions(len(s.items))
	}
	return removed
}

func (s *sessionStore) startCleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			s.evictExpiredLocked()
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}
