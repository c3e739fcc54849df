package notebook

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store, used in tests and as a fallback when no
// database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []DictEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ Store = (*MemoryStore)(nil)

func key(term, sourceLang, targetLang string) string {
	return NormalizeTerm(term) + "\x00" + sourceLang + "\x00" + targetLang
}

func (s *MemoryStore) Save(ctx context.Context, entry DictEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(entry.SourceTerm, entry.SourceLang, entry.TargetLang)
	for _, e := range s.entries {
		if key(e.SourceTerm, e.SourceLang, e.TargetLang) == k {
			return fmt.Errorf("%w for %q", ErrDuplicate, entry.SourceTerm)
		}
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *MemoryStore) Unsave(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unknown entry %s", id)
}

func (s *MemoryStore) List(ctx context.Context) ([]DictEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]DictEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *MemoryStore) Lookup(ctx context.Context, term, sourceLang, targetLang string) (*DictEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k := key(term, sourceLang, targetLang)
	for _, e := range s.entries {
		if key(e.SourceTerm, e.SourceLang, e.TargetLang) == k {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) SetImageRef(ctx context.Context, id, imageRef string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].ImageRef = imageRef
			return nil
		}
	}
	return fmt.Errorf("unknown entry %s", id)
}
