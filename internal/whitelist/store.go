package whitelist

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gregsantos/ip-derivative-agent/internal/domain"
)

// Store is the persistence contract for whitelist entries. Implementations
// must keep batch mutations all-or-nothing: the first conflicting entry
// aborts the whole batch with no partial mutation.
type Store interface {
	Add(ctx context.Context, terms Terms) error
	Remove(ctx context.Context, terms Terms) error
	AddBatch(ctx context.Context, entries []Terms) error
	RemoveBatch(ctx context.Context, entries []Terms) error
	Has(ctx context.Context, key common.Hash) (bool, error)
	List(ctx context.Context, limit, offset int) ([]Terms, error)
}

// MemoryStore keeps whitelist entries in process memory behind an RWMutex.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[common.Hash]Terms
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[common.Hash]Terms),
	}
}

// Add inserts the exact-tuple key, failing if it is already present.
func (s *MemoryStore) Add(_ context.Context, terms Terms) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := terms.Key()
	if _, ok := s.entries[key]; ok {
		return NewAlreadyWhitelistedError(terms)
	}
	s.entries[key] = terms
	return nil
}

// Remove deletes the exact-tuple key, failing if it is absent. The wildcard
// key is never consulted here.
func (s *MemoryStore) Remove(_ context.Context, terms Terms) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := terms.Key()
	if _, ok := s.entries[key]; !ok {
		return NewNotWhitelistedError(terms)
	}
	delete(s.entries, key)
	return nil
}

// AddBatch inserts every entry or none. Conflicts with existing entries and
// duplicates within the batch both abort before any mutation.
func (s *MemoryStore) AddBatch(_ context.Context, entries []Terms) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make(map[common.Hash]Terms, len(entries))
	for _, t := range entries {
		key := t.Key()
		if _, ok := s.entries[key]; ok {
			return NewAlreadyWhitelistedError(t)
		}
		if _, ok := staged[key]; ok {
			return NewAlreadyWhitelistedError(t)
		}
		staged[key] = t
	}

	for key, t := range staged {
		s.entries[key] = t
	}
	return nil
}

// RemoveBatch deletes every entry or none. A missing entry, or the same
// entry listed twice, aborts before any mutation.
func (s *MemoryStore) RemoveBatch(_ context.Context, entries []Terms) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make(map[common.Hash]struct{}, len(entries))
	for _, t := range entries {
		key := t.Key()
		if _, ok := s.entries[key]; !ok {
			return NewNotWhitelistedError(t)
		}
		if _, ok := staged[key]; ok {
			return NewNotWhitelistedError(t)
		}
		staged[key] = struct{}{}
	}

	for key := range staged {
		delete(s.entries, key)
	}
	return nil
}

// Has reports whether the given key is present.
func (s *MemoryStore) Has(_ context.Context, key common.Hash) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[key]
	return ok, nil
}

// List returns stored entries ordered by key for stable pagination.
func (s *MemoryStore) List(_ context.Context, limit, offset int) ([]Terms, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]common.Hash, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) < 0
	})

	if offset >= len(keys) {
		return []Terms{}, nil
	}
	end := len(keys)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	result := make([]Terms, 0, end-offset)
	for _, key := range keys[offset:end] {
		result = append(result, s.entries[key])
	}
	return result, nil
}

// NewAlreadyWhitelistedError builds the duplicate-entry error for terms.
func NewAlreadyWhitelistedError(t Terms) error {
	return &domain.AlreadyWhitelistedError{
		ParentIPID:      t.ParentIPID,
		ChildIPID:       t.ChildIPID,
		LicenseTemplate: t.LicenseTemplate,
		LicenseTermsID:  t.LicenseTermsID,
		Licensee:        t.Licensee,
	}
}

// NewNotWhitelistedError builds the missing-entry error for terms.
func NewNotWhitelistedError(t Terms) error {
	return &domain.NotWhitelistedError{
		ParentIPID:      t.ParentIPID,
		ChildIPID:       t.ChildIPID,
		LicenseTemplate: t.LicenseTemplate,
		LicenseTermsID:  t.LicenseTermsID,
		Licensee:        t.Licensee,
	}
}
