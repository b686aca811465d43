package model

import "time"

// ProductFamily is a template grouping zero or more attribute groups.
// Name is unique among live (non-deleted) families.
type ProductFamily struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// FamilyAttribute links a family to an attribute group. At most one live row
// may exist per (family, attribute group) pair; soft-deleting either side of
// the pair retires the link without removing history.
type FamilyAttribute struct {
	ID               string     `json:"id"`
	FamilyID         string     `json:"family_id"`
	AttributeGroupID string     `json:"attribute_group_id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        *time.Time `json:"-"`
}
