package collections

import (
	"sync/atomic"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// Store publishes immutable corpus snapshots via an atomic swap. Readers hold
// the pointer returned by Current for the duration of their request; a
// concurrent rescan replaces the snapshot wholesale and never blocks readers.
// Failed or cancelled scans simply never publish, leaving the previous
// snapshot authoritative.
type Store struct {
	current atomic.Pointer[interfaces.Corpus]
}

// NewStore returns an empty snapshot store.
func NewStore() *Store {
	return &Store{}
}

// Current returns the most recently published snapshot, or nil before the
// first successful scan.
func (s *Store) Current() *interfaces.Corpus {
	if s == nil {
		return nil
	}
	return s.current.Load()
}

// Publish replaces the current snapshot. Publishing nil is a no-op so a
// failed build can never clear a good snapshot.
func (s *Store) Publish(corpus *interfaces.Corpus) {
	if s == nil || corpus == nil {
		return
	}
	s.current.Store(corpus)
}

var _ interfaces.SnapshotSource = (*Store)(nil)
