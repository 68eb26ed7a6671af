package credential

import (
	"context"
	"errors"
	"log/slog"
)

// LayeredStore reads from primary and falls back to fallback on a miss.
// Writes and clears go to both.
type LayeredStore struct {
	primary  Store
	fallback Store
}

// NewLayeredStore combines primary and fallback. A nil fallback is allowed.
func NewLayeredStore(primary, fallback Store) *LayeredStore {
	return &LayeredStore{primary: primary, fallback: fallback}
}

// Get implements Store.
func (s *LayeredStore) Get(ctx context.Context, id string) (string, bool) {
	if pw, ok := s.primary.Get(ctx, id); ok {
		return pw, true
	}
	if s.fallback == nil {
		return "", false
	}
	return s.fallback.Get(ctx, id)
}

// Set implements Store. It fails only when no layer accepted the password.
func (s *LayeredStore) Set(ctx context.Context, id, password string) error {
	primaryErr := s.primary.Set(ctx, id, password)
	if s.fallback == nil {
		return primaryErr
	}
	if err := s.fallback.Set(ctx, id, password); err != nil {
		if primaryErr != nil {
			return errors.Join(primaryErr, err)
		}
		slog.Warn("Failed to write fallback password", "claim_id", id, "error", err)
		return nil
	}
	if primaryErr != nil {
		slog.Warn("Failed to write password cookie, kept in fallback store", "claim_id", id, "error", primaryErr)
	}
	return nil
}

// Clear implements Store.
func (s *LayeredStore) Clear(ctx context.Context, id string) error {
	err := s.primary.Clear(ctx, id)
	if s.fallback != nil {
		err = errors.Join(err, s.fallback.Clear(ctx, id))
	}
	return err
}
