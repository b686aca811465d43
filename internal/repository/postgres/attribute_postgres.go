package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pimapi/internal/model"
	"pimapi/internal/repository"
)

const attributeGroupColumns = `id, name, "values", created_at, updated_at`

// AttributeGroupPostgres is a PostgreSQL implementation of
// repository.AttributeGroupRepository.
type AttributeGroupPostgres struct {
	db *sql.DB
}

// NewAttributeGroupPostgres creates a new AttributeGroupPostgres repository.
func NewAttributeGroupPostgres(db *sql.DB) *AttributeGroupPostgres {
	return &AttributeGroupPostgres{db: db}
}

var _ repository.AttributeGroupRepository = (*AttributeGroupPostgres)(nil)

func scanAttributeGroup(row interface{ Scan(...any) error }) (*model.AttributeGroup, error) {
	var ag model.AttributeGroup
	var values []byte
	if err := row.Scan(&ag.ID, &ag.Name, &values, &ag.CreatedAt, &ag.UpdatedAt); err != nil {
		return nil, err
	}
	ag.Values = values
	return &ag, nil
}

// Create inserts a new attribute group row and returns the stored record.
func (r *AttributeGroupPostgres) Create(ctx context.Context, ag *model.AttributeGroup) (*model.AttributeGroup, error) {
	const q = `
		INSERT INTO attribute_groups (id, name, "values")
		VALUES ($1, $2, $3)
		RETURNING ` + attributeGroupColumns
	row := r.db.QueryRowContext(ctx, q, ag.ID, ag.Name, []byte(ag.Values))
	out, err := scanAttributeGroup(row)
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// FindByID fetches a single live attribute group by its ID.
func (r *AttributeGroupPostgres) FindByID(ctx context.Context, id string) (*model.AttributeGroup, error) {
	const q = `
		SELECT ` + attributeGroupColumns + `
		FROM attribute_groups
		WHERE id = $1 AND deleted_at IS NULL
	`
	return scanAttributeGroup(r.db.QueryRowContext(ctx, q, id))
}

// FindByIDs resolves ids to live attribute groups, skipping unknown and
// soft-deleted ids. One lookup per id keeps the query shape simple; the id
// lists involved are small (a family's attribute set).
func (r *AttributeGroupPostgres) FindByIDs(ctx context.Context, ids []string) ([]model.AttributeGroup, error) {
	out := make([]model.AttributeGroup, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		// An id that is not a valid uuid cannot match a row; skip it
		// without a round trip. The column type would reject it with a
		// syntax error otherwise.
		if _, err := uuid.Parse(id); err != nil {
			continue
		}

		ag, err := r.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, err
		}
		out = append(out, *ag)
	}
	return out, nil
}

// List returns live attribute groups, optionally filtered by name substring.
func (r *AttributeGroupPostgres) List(ctx context.Context, search string) ([]model.AttributeGroup, error) {
	q := `
		SELECT ` + attributeGroupColumns + `
		FROM attribute_groups
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

// Update applies the non-nil fields and returns the stored record.
func (r *AttributeGroupPostgres) Update(ctx context.Context, id string, p repository.UpdateAttributeGroupParams) (*model.AttributeGroup, error) {
	set := []string{"updated_at = now()"}
	args := []any{}
	if p.Name != nil {
		args = append(args, *p.Name)
		set = append(set, fmt.Sprintf("name = $%d", len(args)))
	}
	if p.Values != nil {
		args = append(args, []byte(p.Values))
		set = append(set, fmt.Sprintf(`"values" = $%d`, len(args)))
	}
	args = append(args, id)

	q := fmt.Sprintf(`
		UPDATE attribute_groups
		SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING %s`, strings.Join(set, ", "), len(args), attributeGroupColumns)

	return scanAttributeGroup(r.db.QueryRowContext(ctx, q, args...))
}

// SoftDelete marks the attribute group deleted and retires its live family
// associations in one transaction.
func (r *AttributeGroupPostgres) SoftDelete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE attribute_groups SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE family_attributes SET deleted_at = now(), updated_at = now() WHERE attribute_group_id = $1 AND deleted_at IS NULL`, id); err != nil {
		return err
	}

	return tx.Commit()
}
