package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/claimflow/internal/common"
)

// GetValue returns the value stored under key, or common.ErrNotFound.
func (s *SQLiteStorage) GetValue(ctx context.Context, key string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(key, "key"); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get value: %w", err)
	}
	return value, nil
}

// SetValue inserts or replaces the value under key.
func (s *SQLiteStorage) SetValue(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}
	return nil
}

// DeleteValue removes key. Deleting a missing key is not an error.
func (s *SQLiteStorage) DeleteValue(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}
	return nil
}
