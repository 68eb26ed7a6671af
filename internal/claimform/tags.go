package claimform

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Veraticus/claimflow/internal/model"
)

// TagLister fetches the tag reference data.
type TagLister interface {
	ListTags(ctx context.Context) ([]model.Tag, error)
}

// TagCatalog fetches tags once and serves them from memory afterwards.
// A failed fetch is not cached.
type TagCatalog struct {
	api  TagLister
	tags []model.Tag
	mu   sync.Mutex
	ok   bool
}

// NewTagCatalog creates a catalog backed by client.
func NewTagCatalog(client TagLister) *TagCatalog {
	return &TagCatalog{api: client}
}

// Tags returns all tags.
func (c *TagCatalog) Tags(ctx context.Context) ([]model.Tag, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ok {
		return slices.Clone(c.tags), nil
	}
	tags, err := c.api.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	c.tags, c.ok = tags, true
	return slices.Clone(tags), nil
}

// Resolve maps each reference, a tag id or a case-insensitive label, to a tag id.
func (c *TagCatalog) Resolve(ctx context.Context, refs []string) ([]string, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	tags, err := c.Tags(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		i := slices.IndexFunc(tags, func(t model.Tag) bool {
			return t.ID == ref || strings.EqualFold(t.Label, ref)
		})
		if i < 0 {
			return nil, &ValidationError{Field: FieldTags, Message: fmt.Sprintf("unknown tag %q", ref)}
		}
		if !slices.Contains(ids, tags[i].ID) {
			ids = append(ids, tags[i].ID)
		}
	}
	return ids, nil
}
