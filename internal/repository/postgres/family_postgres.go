package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"pimapi/internal/model"
	"pimapi/internal/repository"
)

const familyColumns = `id, name, created_at, updated_at`

// FamilyPostgres is a PostgreSQL implementation of repository.FamilyRepository.
// Multi-row mutations run inside a transaction so a family and its
// associations change together or not at all.
type FamilyPostgres struct {
	db *sql.DB
}

// NewFamilyPostgres creates a new FamilyPostgres repository.
func NewFamilyPostgres(db *sql.DB) *FamilyPostgres {
	return &FamilyPostgres{db: db}
}

var _ repository.FamilyRepository = (*FamilyPostgres)(nil)

func scanFamily(row interface{ Scan(...any) error }) (*model.ProductFamily, error) {
	var f model.ProductFamily
	if err := row.Scan(&f.ID, &f.Name, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts the family and one association row per attribute group id in
// a single transaction.
func (r *FamilyPostgres) Create(ctx context.Context, family *model.ProductFamily, attributeGroupIDs []string) (*model.ProductFamily, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO product_families (id, name)
		VALUES ($1, $2)
		RETURNING ` + familyColumns
	out, err := scanFamily(tx.QueryRowContext(ctx, q, family.ID, family.Name))
	if err != nil {
		return nil, translateError(err)
	}

	for _, agID := range attributeGroupIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO family_attributes (id, family_id, attribute_group_id) VALUES ($1, $2, $3)`,
			uuid.NewString(), out.ID, agID); err != nil {
			return nil, translateError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID fetches a single live family by its ID.
func (r *FamilyPostgres) FindByID(ctx context.Context, id string) (*model.ProductFamily, error) {
	const q = `
		SELECT ` + familyColumns + `
		FROM product_families
		WHERE id = $1 AND deleted_at IS NULL
	`
	return scanFamily(r.db.QueryRowContext(ctx, q, id))
}

// ExistsByName reports whether a live family already uses the name.
func (r *FamilyPostgres) ExistsByName(ctx context.Context, name string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM product_families WHERE name = $1 AND deleted_at IS NULL)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// List returns live families, optionally filtered by name substring.
func (r *FamilyPostgres) List(ctx context.Context, search string) ([]model.ProductFamily, error) {
	q := `
		SELECT ` + familyColumns + `
		FROM product_families
		WHERE deleted_at IS NULL
	`
	args := []any{}
	if search != "" {
		args = append(args, "%"+search+"%")
		q += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	q += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ProductFamily, 0)
	for rows.Next() {
		f, err := scanFamily(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	return items, rows.Err()
}

// UpdateName renames a live family and returns the stored record.
func (r *FamilyPostgres) UpdateName(ctx context.Context, id, name string) (*model.ProductFamily, error) {
	const q = `
		UPDATE product_families
		SET name = $1, updated_at = now()
		WHERE id = $2 AND deleted_at IS NULL
		RETURNING ` + familyColumns
	out, err := scanFamily(r.db.QueryRowContext(ctx, q, name, id))
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// ListEffectiveAttributes returns the attribute groups reachable via a live
// association whose target group is itself live, ordered by attribute group
// id for a stable result.
func (r *FamilyPostgres) ListEffectiveAttributes(ctx context.Context, familyID string) ([]model.AttributeGroup, error) {
	const q = `
		SELECT ag.id, ag.name, ag."values", ag.created_at, ag.updated_at
		FROM attribute_groups ag
		JOIN family_attributes fa ON fa.attribute_group_id = ag.id
		WHERE fa.family_id = $1 AND fa.deleted_at IS NULL AND ag.deleted_at IS NULL
		ORDER BY ag.id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.AttributeGroup, 0)
	for rows.Next() {
		ag, err := scanAttributeGroup(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *ag)
	}
	return items, rows.Err()
}

// ReplaceAttributes retires every live association of the family and inserts
// fresh rows for exactly the given ids, in one transaction. The delete/insert
// sequence never interleaves with a concurrent caller thanks to the
// transaction boundary.
func (r *FamilyPostgres) ReplaceAttributes(ctx context.Context, familyID string, attributeGroupIDs []string) error {
	if len(attributeGroupIDs) == 0 {
		return fmt.Errorf("replace attributes: empty attribute group set")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE family_attributes SET deleted_at = now(), updated_at = now() WHERE family_id = $1 AND deleted_at IS NULL`,
		familyID); err != nil {
		return err
	}

	for _, agID := range attributeGroupIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO family_attributes (id, family_id, attribute_group_id) VALUES ($1, $2, $3)`,
			uuid.NewString(), familyID, agID); err != nil {
			return translateError(err)
		}
	}

	return tx.Commit()
}

// SoftDelete marks the family deleted and cascades the marker to its live
// associations in the same transaction.
func (r *FamilyPostgres) SoftDelete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE product_families SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE family_attributes SET deleted_at = now(), updated_at = now() WHERE family_id = $1 AND deleted_at IS NULL`, id); err != nil {
		return err
	}

	return tx.Commit()
}
