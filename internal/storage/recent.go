package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/claimflow/internal/model"
)

// RecentClaim is a claim this client has opened before.
type RecentClaim struct {
	OpenedAt time.Time
	ID       string
	Title    string
	Status   model.ClaimStatus
}

// RecordClaim upserts id into the recent list with the current time.
// Content is only recorded after the claim has been shown, so the title is
// never known for a claim whose password was never supplied.
func (s *SQLiteStorage) RecordClaim(ctx context.Context, claim *model.Claim) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if claim == nil {
		return fmt.Errorf("%w: claim", ErrEmptyString)
	}
	if err := validateString(claim.ID, "claim.ID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recent_claims (id, title, status, opened_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			status = excluded.status,
			opened_at = excluded.opened_at
	`, claim.ID, claim.Title, string(claim.Status), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record claim: %w", err)
	}
	return nil
}

// RecentClaims returns up to limit claims, most recently opened first.
func (s *SQLiteStorage) RecentClaims(ctx context.Context, limit int) ([]RecentClaim, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, status, opened_at FROM recent_claims
		ORDER BY opened_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent claims: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var claims []RecentClaim
	for rows.Next() {
		var rc RecentClaim
		var status string
		if err := rows.Scan(&rc.ID, &rc.Title, &status, &rc.OpenedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent claim: %w", err)
		}
		rc.Status = model.ParseClaimStatus(status)
		claims = append(claims, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recent claims: %w", err)
	}
	return claims, nil
}

// ForgetClaim removes id from the recent list.
func (s *SQLiteStorage) ForgetClaim(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM recent_claims WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to forget claim: %w", err)
	}
	return nil
}
