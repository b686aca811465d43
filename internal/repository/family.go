package repository

import (
	"context"

	"pimapi/internal/model"
)

// FamilyRepository defines data access for product families and their
// attribute-group associations. Multi-row mutations (Create, ReplaceAttributes,
// SoftDelete) are transactional: either every row changes or none does.
type FamilyRepository interface {
	// Create inserts the family and one association row per attribute group
	// id in a single transaction.
	Create(ctx context.Context, family *model.ProductFamily, attributeGroupIDs []string) (*model.ProductFamily, error)

	FindByID(ctx context.Context, id string) (*model.ProductFamily, error)

	// ExistsByName reports whether a live family already uses the name
	// (exact, case-sensitive match).
	ExistsByName(ctx context.Context, name string) (bool, error)

	List(ctx context.Context, search string) ([]model.ProductFamily, error)

	UpdateName(ctx context.Context, id, name string) (*model.ProductFamily, error)

	// ListEffectiveAttributes returns the attribute groups reachable via a
	// live association whose target group is itself live, ordered ascending
	// by attribute group id.
	ListEffectiveAttributes(ctx context.Context, familyID string) ([]model.AttributeGroup, error)

	// ReplaceAttributes retires every live association of the family and
	// inserts fresh rows for exactly the given ids, in one transaction.
	// Callers resolve ids beforehand; an empty slice is rejected.
	ReplaceAttributes(ctx context.Context, familyID string, attributeGroupIDs []string) error

	// SoftDelete marks the family deleted and cascades the marker to its
	// live associations in the same transaction.
	SoftDelete(ctx context.Context, id string) error
}
