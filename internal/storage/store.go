package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/estlin/paperbill/internal/model"
)

// KV is the durable key/value backing a Store mirrors itself to.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}

// Store holds one kind's ordered record sequence in memory and mirrors it to
// durable storage under a fixed key on every mutation.
//
// A Store is owned by a single application instance and is not safe for
// concurrent use; all mutation happens within one command's execution.
type Store struct {
	kv   KV
	kind model.Kind
	key  string
	docs []model.Document
}

// Open loads the record sequence for kind from the key/value backing.
// Absent, unreadable, or malformed content is treated as an empty sequence,
// never as an error; the next successful save rewrites the key.
func Open(ctx context.Context, kv KV, kind model.Kind) (*Store, error) {
	s := &Store{kv: kv, kind: kind, key: kind.StorageKey()}

	payload, err := s.kv.Load(ctx, s.key)
	if err != nil {
		slog.Debug("ignoring unreadable store payload", "key", s.key, "error", err)
		return s, nil
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &s.docs); err != nil {
			slog.Debug("ignoring unparsable store payload", "key", s.key, "error", err)
			s.docs = nil
		}
	}

	return s, nil
}

// Kind returns the document kind this store holds.
func (s *Store) Kind() model.Kind {
	return s.kind
}

// Len returns the number of records in the sequence.
func (s *Store) Len() int {
	return len(s.docs)
}

// Documents returns a copy of the full record sequence in storage order.
func (s *Store) Documents() []model.Document {
	out := make([]model.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Find returns the record with the given number, if present.
func (s *Store) Find(number string) (model.Document, bool) {
	for _, d := range s.docs {
		if d.Number == number {
			return d, true
		}
	}
	return model.Document{}, false
}

// Exists reports whether a record with the given number is in the sequence.
func (s *Store) Exists(number string) bool {
	_, ok := s.Find(number)
	return ok
}

// NextNumber computes the identifying number the next record should carry.
func (s *Store) NextNumber() string {
	return model.NextNumber(s.kind, s.docs)
}

// Upsert inserts doc, or replaces the record sharing its number in place.
// The updated sequence is persisted before Upsert returns. It reports
// whether an existing record was replaced.
//
// Callers are responsible for confirming overwrites with the user first;
// Exists is the hook for that.
func (s *Store) Upsert(ctx context.Context, doc model.Document) (bool, error) {
	if err := doc.Validate(); err != nil {
		return false, err
	}

	replaced := false
	for i, d := range s.docs {
		if d.Number == doc.Number {
			s.docs[i] = doc
			replaced = true
			break
		}
	}
	if !replaced {
		s.docs = append(s.docs, doc)
	}

	if err := s.persist(ctx); err != nil {
		return replaced, err
	}
	return replaced, nil
}

// Delete removes the record with the given number and persists the result.
// Deleting an absent number is a no-op; the sequence is not rewritten.
func (s *Store) Delete(ctx context.Context, number string) (bool, error) {
	idx := -1
	for i, d := range s.docs {
		if d.Number == number {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	s.docs = append(s.docs[:idx], s.docs[idx+1:]...)
	if err := s.persist(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// persist writes the entire sequence back to durable storage. Mutations are
// visible to the rest of the app only together with a completed write.
func (s *Store) persist(ctx context.Context) error {
	payload, err := json.Marshal(s.docs)
	if err != nil {
		return fmt.Errorf("failed to encode %s store: %w", s.key, err)
	}
	if err := s.kv.Save(ctx, s.key, payload); err != nil {
		return fmt.Errorf("failed to persist %s store: %w", s.key, err)
	}
	return nil
}
