package postgres

import (
	"fmt"
	"strings"

	"pimapi/internal/repository"
)

// The WHERE builders translate composable search filters into SQL. Every
// predicate is ANDed onto the soft-delete base condition, so combining
// archived and published yields their conjunction rather than a union.

func buildProductWhere(f repository.ProductFilter) (string, []any) {
	conds := []string{"deleted_at IS NULL"}
	args := []any{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if f.Archived {
		conds = append(conds, "is_archived = TRUE AND is_published = FALSE")
	}
	if f.Published {
		conds = append(conds, "is_published = TRUE")
	}

	return strings.Join(conds, " AND "), args
}

func buildUserWhere(f repository.UserFilter) (string, []any) {
	conds := []string{"deleted_at IS NULL"}
	args := []any{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR role ILIKE $%d)", n, n, n))
	}

	return strings.Join(conds, " AND "), args
}
