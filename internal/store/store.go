// Package store reads and writes the booking collections as JSON documents in
// named storage slots. Anything in a slot that does not decode is treated as
// an empty collection.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"medical-booking/internal/storage"
)

type Store struct {
	slots storage.Slots
	log   *slog.Logger
}

func New(slots storage.Slots, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{slots: slots, log: log}
}

// load decodes slot key into a T. It reports false when the slot is absent
// or holds something that is not valid JSON for T; the zero T comes back then.
func load[T any](ctx context.Context, s *Store, key string) (T, bool, error) {
	var v T
	raw, err := s.slots.Get(ctx, key)
	if err != nil {
		return v, false, err
	}
	if len(raw) == 0 {
		return v, false, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Warn("malformed slot, treating as empty", "slot", key, "err", err)
		var zero T
		return zero, false, nil
	}
	return v, true, nil
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.slots.Put(ctx, key, b)
}
