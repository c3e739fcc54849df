package notebook

import (
	"context"
	"errors"
	"strings"
	"time"

	"ai-vocab-coach/internal/oracle"
)

// ErrDuplicate reports a save that collides with an already saved
// (normalized term, language pair) key. Anything else out of Save is an
// infrastructure failure.
var ErrDuplicate = errors.New("duplicate entry")

// DictEntry is the persisted unit of vocabulary knowledge. Immutable after
// creation except for a later image backfill.
type DictEntry struct {
	ID               string           `json:"id"`
	SourceTerm       string           `json:"source_term"`
	SourceLang       string           `json:"source_lang"`
	TargetLang       string           `json:"target_lang"`
	TargetTerm       string           `json:"target_term"`
	Phonetic         string           `json:"phonetic"`
	NativeDefinition string           `json:"native_definition"`
	Examples         []oracle.Example `json:"examples"`
	UsageNote        string           `json:"usage_note"`
	ImageRef         string           `json:"image_ref,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// NormalizeTerm produces the comparison key for a term: trimmed and
// casefolded. Display casing is preserved on the entry itself.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Store is an ordered collection of saved entries. Mutated only by explicit
// Save/Unsave; Lookup reads serve the resolver's cache check. Uniqueness is
// per (normalized term, source language, target language).
type Store interface {
	// Save appends the entry. Saving a duplicate key is an error.
	Save(ctx context.Context, entry DictEntry) error

	// Unsave removes the entry with the given id, if present.
	Unsave(ctx context.Context, id string) error

	// List returns all entries in save order.
	List(ctx context.Context) ([]DictEntry, error)

	// Lookup returns the saved entry matching the normalized term and
	// language pair, or nil on a miss.
	Lookup(ctx context.Context, term, sourceLang, targetLang string) (*DictEntry, error)

	// SetImageRef backfills the image reference on an already saved entry.
	SetImageRef(ctx context.Context, id, imageRef string) error
}
