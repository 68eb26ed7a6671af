package credential

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Veraticus/claimflow/internal/common"
)

// KV is the key-value persistence KVStore needs.
type KV interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key, value string) error
	DeleteValue(ctx context.Context, key string) error
}

// KVStore keeps passwords under "claim:<id>:password" keys. It is the legacy
// location and is consulted only when the cookie file has no entry.
type KVStore struct {
	kv KV
}

// NewKVStore wraps kv.
func NewKVStore(kv KV) *KVStore {
	return &KVStore{kv: kv}
}

// KVKey returns the key holding id's password.
func KVKey(id string) string {
	return "claim:" + id + ":password"
}

// Get implements Store. An empty stored value counts as missing.
func (s *KVStore) Get(ctx context.Context, id string) (string, bool) {
	if id == "" {
		return "", false
	}
	pw, err := s.kv.GetValue(ctx, KVKey(id))
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			slog.Warn("Failed to read stored password", "claim_id", id, "error", err)
		}
		return "", false
	}
	if pw == "" {
		return "", false
	}
	return pw, true
}

// Set implements Store.
func (s *KVStore) Set(ctx context.Context, id, password string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.kv.SetValue(ctx, KVKey(id), password)
}

// Clear implements Store.
func (s *KVStore) Clear(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.kv.DeleteValue(ctx, KVKey(id))
}
