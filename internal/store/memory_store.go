package store

import (
	"sync"
	"time"

	"github.com/housefest/board-service/internal/domain/board"
)

// PlaceholderLabel is shown as "last updated" before the first accepted snapshot.
const PlaceholderLabel = "..."

// Meta describes the currently held snapshot.
type Meta struct {
	AcceptedAt  time.Time `json:"acceptedAt"`
	LastUpdated string    `json:"lastUpdated"`
	Version     uint64    `json:"version"`
}

// MemoryStore holds the current snapshot. Snapshots are replaced wholesale and never
// mutated, so readers may keep the value they got.
type MemoryStore struct {
	mu    sync.RWMutex
	snap  board.Snapshot
	meta  Meta
	ready bool
}

// NewMemoryStore constructs a store that reports not-ready until the first Replace.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snap: board.EmptySnapshot(),
		meta: Meta{LastUpdated: PlaceholderLabel},
	}
}

// Replace swaps in snap, stamped with its acceptance time and display label.
func (s *MemoryStore) Replace(snap board.Snapshot, acceptedAt time.Time, label string) Meta {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = snap
	s.meta = Meta{
		AcceptedAt:  acceptedAt,
		LastUpdated: label,
		Version:     s.meta.Version + 1,
	}
	s.ready = true
	return s.meta
}

// Current returns the held snapshot and its metadata. ok is false until the first
// snapshot was accepted; the returned snapshot is then the empty one.
func (s *MemoryStore) Current() (board.Snapshot, Meta, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.meta, s.ready
}
