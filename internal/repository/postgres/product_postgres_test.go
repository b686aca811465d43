package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pimapi/internal/model"
	"pimapi/internal/repository"
)

func productRows(now time.Time, ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "sku", "name", "description", "price", "family_id",
		"details", "images", "is_archived", "is_published", "created_at", "updated_at",
	})
	for _, id := range ids {
		rows.AddRow(id, "SKU-"+id, "boot "+id, "", 19.99, nil, []byte(`{}`), []byte(`[]`), false, false, now, now)
	}
	return rows
}

func TestProductPostgres_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewProductPostgres(db)
		now := time.Now().UTC()

		mock.ExpectQuery("INSERT INTO products").
			WithArgs("p-1", "SKU-p-1", "boot p-1", "", 19.99, nil, []byte(`{}`), []byte(`["http://blob/pim/a.jpg"]`), false, false).
			WillReturnRows(productRows(now, "p-1"))

		out, err := repo.Create(ctx, &model.Product{
			ID:      "p-1",
			SKU:     "SKU-p-1",
			Name:    "boot p-1",
			Price:   19.99,
			Details: []byte(`{}`),
			Images:  []string{"http://blob/pim/a.jpg"},
		})

		assert.NoError(t, err)
		assert.Equal(t, "SKU-p-1", out.SKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate sku maps to ErrDuplicate", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewProductPostgres(db)

		mock.ExpectQuery("INSERT INTO products").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err = repo.Create(ctx, &model.Product{ID: "p-1", SKU: "SKU-1", Name: "boot"})

		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})
}

func TestProductPostgres_CreateBulk(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductPostgres(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO products").
		WithArgs("p-1", "SKU-1", "boot", "", 0.0, nil, []byte(nil), nil, false, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO products").
		WithArgs("p-2", "SKU-2", "sandal", "", 0.0, nil, []byte(nil), nil, false, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := repo.CreateBulk(ctx, []model.Product{
		{ID: "p-1", SKU: "SKU-1", Name: "boot"},
		{ID: "p-2", SKU: "SKU-2", Name: "sandal"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductPostgres_ExistsBySKU(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("SKU-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsBySKU(ctx, "SKU-1")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductPostgres_List(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("count and page share one snapshot", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewProductPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
		mock.ExpectQuery("SELECT (.+) FROM products").
			WithArgs(10, 20).
			WillReturnRows(productRows(now, "p-21", "p-22", "p-23", "p-24", "p-25"))
		mock.ExpectCommit()

		page, err := repo.List(ctx, repository.ProductFilter{}, repository.PageQuery{Limit: 10, Offset: 20})

		assert.NoError(t, err)
		assert.Equal(t, 25, page.Total)
		assert.Len(t, page.Items, 5)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search filter binds the same pattern to count and page", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewProductPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
			WithArgs("%boot%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM products").
			WithArgs("%boot%", 10, 0).
			WillReturnRows(productRows(now, "p-1"))
		mock.ExpectCommit()

		page, err := repo.List(ctx, repository.ProductFilter{Search: "boot"}, repository.PageQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 1, page.Total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	price := 29.99
	mock.ExpectQuery("UPDATE products").
		WithArgs(price, "p-1").
		WillReturnRows(productRows(now, "p-1"))

	out, err := repo.Update(ctx, "p-1", repository.UpdateProductParams{Price: &price})

	assert.NoError(t, err)
	assert.Equal(t, "p-1", out.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductPostgres_SoftDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("marks a live row deleted", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewProductPostgres(db)

		mock.ExpectExec("UPDATE products SET deleted_at").
			WithArgs("p-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SoftDelete(ctx, "p-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown or already deleted product", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewProductPostgres(db)

		mock.ExpectExec("UPDATE products SET deleted_at").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.True(t, IsNoRowsError(repo.SoftDelete(ctx, "missing")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
