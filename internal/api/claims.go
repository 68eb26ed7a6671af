package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Veraticus/claimflow/internal/model"
)

// CreateClaim submits a new claim and returns it with its server-assigned id.
func (c *Client) CreateClaim(ctx context.Context, req model.ClaimRequest) (*model.Claim, error) {
	var claim model.Claim
	if err := c.do(ctx, http.MethodPost, "/api/claims", nil, req, &claim); err != nil {
		return nil, err
	}
	return &claim, nil
}

// GetClaim fetches a claim. An empty password sends none.
// A protected claim answers 401/403 when the password is missing or wrong.
func (c *Client) GetClaim(ctx context.Context, id, password string) (*model.Claim, error) {
	var query url.Values
	if password != "" {
		query = url.Values{"password": {password}}
	}
	var claim model.Claim
	if err := c.do(ctx, http.MethodGet, "/api/claims/"+url.PathEscape(id), query, nil, &claim); err != nil {
		return nil, err
	}
	return &claim, nil
}

// PatchClaim applies a partial update, typically a status change.
func (c *Client) PatchClaim(ctx context.Context, id string, req model.ClaimPatchRequest) (*model.Claim, error) {
	var claim model.Claim
	if err := c.do(ctx, http.MethodPatch, "/api/claims/"+url.PathEscape(id), nil, req, &claim); err != nil {
		return nil, err
	}
	return &claim, nil
}

// ListTags returns the tag reference data.
func (c *Client) ListTags(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	if err := c.do(ctx, http.MethodGet, "/api/tags", nil, nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
