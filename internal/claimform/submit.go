package claimform

import (
	"context"
	"log/slog"

	"github.com/Veraticus/claimflow/internal/credential"
	"github.com/Veraticus/claimflow/internal/model"
)

// ClaimCreator creates claims.
type ClaimCreator interface {
	CreateClaim(ctx context.Context, req model.ClaimRequest) (*model.Claim, error)
}

// Submit validates in, creates the claim with the photos of finished uploads
// and stores the password against the new id. Nothing is sent when
// validation fails.
func Submit(ctx context.Context, client ClaimCreator, creds credential.Store, in Input, uploads []Item, known []model.Tag) (*model.Claim, error) {
	if err := in.Validate(known); err != nil {
		return nil, err
	}

	req, err := in.Request(PhotoIDs(uploads))
	if err != nil {
		return nil, err
	}

	created, err := client.CreateClaim(ctx, req)
	if err != nil {
		return nil, err
	}
	slog.Info("Claim created", "claim_id", created.ID, "photos", len(req.PhotoIDs))

	if req.Password != "" && creds != nil {
		if err := creds.Set(ctx, created.ID, req.Password); err != nil {
			slog.Warn("Failed to store claim password", "claim_id", created.ID, "error", err)
		}
	}
	return created, nil
}
