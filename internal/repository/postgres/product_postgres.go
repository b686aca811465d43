package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"pimapi/internal/model"
	"pimapi/internal/repository"
)

const productColumns = `id, sku, name, description, price, family_id, details, images, is_archived, is_published, created_at, updated_at`

// ProductPostgres is a PostgreSQL implementation of repository.ProductRepository.
type ProductPostgres struct {
	db *sql.DB
}

// NewProductPostgres creates a new ProductPostgres repository.
func NewProductPostgres(db *sql.DB) *ProductPostgres {
	return &ProductPostgres{db: db}
}

var _ repository.ProductRepository = (*ProductPostgres)(nil)

func encodeImages(images []string) (any, error) {
	if images == nil {
		return nil, nil
	}
	b, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("encode images: %w", err)
	}
	return b, nil
}

func scanProduct(row interface{ Scan(...any) error }) (*model.Product, error) {
	var p model.Product
	var familyID sql.NullString
	var details, images []byte
	if err := row.Scan(
		&p.ID,
		&p.SKU,
		&p.Name,
		&p.Description,
		&p.Price,
		&familyID,
		&details,
		&images,
		&p.IsArchived,
		&p.IsPublished,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if familyID.Valid {
		p.FamilyID = &familyID.String
	}
	p.Details = details
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, fmt.Errorf("decode images: %w", err)
		}
	}
	return &p, nil
}

// Create inserts a new product row and returns the stored record.
func (r *ProductPostgres) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	images, err := encodeImages(p.Images)
	if err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO products (id, sku, name, description, price, family_id, details, images, is_archived, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + productColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.SKU,
		p.Name,
		p.Description,
		p.Price,
		p.FamilyID,
		[]byte(p.Details),
		images,
		p.IsArchived,
		p.IsPublished,
	)
	out, err := scanProduct(row)
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// CreateBulk inserts all products in one transaction and returns the number
// of rows inserted.
func (r *ProductPostgres) CreateBulk(ctx context.Context, ps []model.Product) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO products (id, sku, name, description, price, family_id, details, images, is_archived, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for i := range ps {
		p := &ps[i]
		images, err := encodeImages(p.Images)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx, q,
			p.ID,
			p.SKU,
			p.Name,
			p.Description,
			p.Price,
			p.FamilyID,
			[]byte(p.Details),
			images,
			p.IsArchived,
			p.IsPublished,
		); err != nil {
			return 0, translateError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(ps), nil
}

// FindByID fetches a single live product by its ID.
func (r *ProductPostgres) FindByID(ctx context.Context, id string) (*model.Product, error) {
	const q = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1 AND deleted_at IS NULL
	`
	return scanProduct(r.db.QueryRowContext(ctx, q, id))
}

// ExistsBySKU reports whether a live product already uses the sku.
func (r *ProductPostgres) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM products WHERE sku = $1 AND deleted_at IS NULL)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, sku).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// List returns a page of products plus the total count over the same filter.
// Count and page are read inside one transaction so the pagination math sees
// a consistent snapshot.
func (r *ProductPostgres) List(ctx context.Context, f repository.ProductFilter, pq repository.PageQuery) (*repository.PageResult[model.Product], error) {
	where, args := buildProductWhere(f)

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var total int
	qCount := "SELECT COUNT(*) FROM products WHERE " + where
	if err := tx.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	listArgs := append(append([]any{}, args...), pq.Limit, pq.Offset)
	qList := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`, productColumns, where, len(listArgs)-1, len(listArgs))

	rows, err := tx.QueryContext(ctx, qList, listArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Product]{Items: items, Total: total}, nil
}

// Update applies the non-nil fields and returns the stored record.
func (r *ProductPostgres) Update(ctx context.Context, id string, p repository.UpdateProductParams) (*model.Product, error) {
	set := []string{"updated_at = now()"}
	args := []any{}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.SKU != nil {
		add("sku", *p.SKU)
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if p.FamilyID != nil {
		add("family_id", *p.FamilyID)
	}
	if p.Details != nil {
		add("details", []byte(p.Details))
	}
	if p.Images != nil {
		images, err := encodeImages(*p.Images)
		if err != nil {
			return nil, err
		}
		add("images", images)
	}
	if p.IsArchived != nil {
		add("is_archived", *p.IsArchived)
	}
	if p.IsPublished != nil {
		add("is_published", *p.IsPublished)
	}
	args = append(args, id)

	q := fmt.Sprintf(`
		UPDATE products
		SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING %s`, strings.Join(set, ", "), len(args), productColumns)

	out, err := scanProduct(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// SoftDelete marks the product deleted.
func (r *ProductPostgres) SoftDelete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
