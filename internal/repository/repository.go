package repository

import "errors"

// Package repository contains data access layer abstractions. Implementations
// live in subpackages (e.g. postgres) inside this directory. All reads exclude
// soft-deleted rows unless a method documents otherwise.

// ErrDuplicate is returned when an insert or update violates a live-row
// uniqueness constraint (product sku, family name, user email).
var ErrDuplicate = errors.New("duplicate value for unique column")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// Total counts all rows matching the same filter, unpaginated.
type PageResult[T any] struct {
	Items []T
	Total int
}

// ProductFilter composes the product search predicates. The zero value
// matches every live product. All set predicates are ANDed together, so
// requesting Archived and Published simultaneously typically matches nothing.
type ProductFilter struct {
	// Search matches a case-insensitive substring of the product name.
	Search string
	// Archived restricts to is_archived AND NOT is_published.
	Archived bool
	// Published restricts to is_published.
	Published bool
}

// UserFilter composes the user search predicates.
type UserFilter struct {
	// Search matches a case-insensitive substring of name, email or role.
	Search string
}
