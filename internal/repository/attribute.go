package repository

import (
	"context"
	"encoding/json"

	"pimapi/internal/model"
)

// UpdateAttributeGroupParams carries a partial update; nil fields are left
// unchanged.
type UpdateAttributeGroupParams struct {
	Name   *string
	Values json.RawMessage
}

// AttributeGroupRepository defines data access for attribute groups.
type AttributeGroupRepository interface {
	Create(ctx context.Context, ag *model.AttributeGroup) (*model.AttributeGroup, error)

	// FindByID returns a live attribute group by id.
	FindByID(ctx context.Context, id string) (*model.AttributeGroup, error)

	// FindByIDs resolves ids to live attribute groups, silently skipping
	// unknown or soft-deleted ids. Results are ordered ascending by id.
	FindByIDs(ctx context.Context, ids []string) ([]model.AttributeGroup, error)

	// List returns live attribute groups, optionally filtered by a
	// case-insensitive name substring.
	List(ctx context.Context, search string) ([]model.AttributeGroup, error)

	Update(ctx context.Context, id string, p UpdateAttributeGroupParams) (*model.AttributeGroup, error)

	// SoftDelete marks the attribute group deleted and retires its live
	// family associations in the same transaction.
	SoftDelete(ctx context.Context, id string) error
}
