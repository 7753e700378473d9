package otp

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process backend for single-replica runs and tests.
// Codes do not survive a restart.
type MemoryStore struct {
	mu    sync.Mutex
	codes map[string]memoryEntry
}

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{codes: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Put(ctx context.Context, k, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[k] = memoryEntry{code: code, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, k string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.codes[k]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.codes, k)
		return "", ErrCodeNotFound
	}
	return entry.code, nil
}

func (s *MemoryStore) Consume(ctx context.Context, k string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.codes[k]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.codes, k)
		return "", ErrCodeNotFound
	}
	delete(s.codes, k)
	return entry.code, nil
}

// MemoryLimiter tracks request timestamps per key in process memory.
type MemoryLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{requests: make(map[string][]time.Time)}
}

func (l *MemoryLimiter) Allow(ctx context.Context, k string, max int, window time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-window)
	kept := l.requests[k][:0]
	for _, t := range l.requests[k] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= max {
		l.requests[k] = kept
		return false, nil
	}

	l.requests[k] = append(kept, time.Now())
	return true, nil
}
