package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pimapi/internal/model"
)

func TestFamilyPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFamilyPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	family := &model.ProductFamily{ID: "fam-1", Name: "shoes"}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO product_families").
		WithArgs("fam-1", "shoes").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow("fam-1", "shoes", now, now))
	mock.ExpectExec("INSERT INTO family_attributes").
		WithArgs(sqlmock.AnyArg(), "fam-1", "ag-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO family_attributes").
		WithArgs(sqlmock.AnyArg(), "fam-1", "ag-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	out, err := repo.Create(ctx, family, []string{"ag-1", "ag-2"})

	assert.NoError(t, err)
	assert.Equal(t, "fam-1", out.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFamilyPostgres_ListEffectiveAttributes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFamilyPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()

	// Both the association and the attribute group itself must be live.
	mock.ExpectQuery(`fa.deleted_at IS NULL AND ag.deleted_at IS NULL`).
		WithArgs("fam-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "values", "created_at", "updated_at"}).
			AddRow("ag-1", "size", []byte(`["s","m"]`), now, now).
			AddRow("ag-2", "color", []byte(`["red"]`), now, now))

	groups, err := repo.ListEffectiveAttributes(ctx, "fam-1")

	assert.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "ag-1", groups[0].ID)
	assert.Equal(t, "ag-2", groups[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFamilyPostgres_ReplaceAttributes(t *testing.T) {
	ctx := context.Background()

	t.Run("retires live rows then inserts inside one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewFamilyPostgres(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE family_attributes SET deleted_at").
			WithArgs("fam-1").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("INSERT INTO family_attributes").
			WithArgs(sqlmock.AnyArg(), "fam-1", "ag-3").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.ReplaceAttributes(ctx, "fam-1", []string{"ag-3"})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty set is rejected without touching the database", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewFamilyPostgres(db)

		err = repo.ReplaceAttributes(ctx, "fam-1", nil)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed insert rolls the delete back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewFamilyPostgres(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE family_attributes SET deleted_at").
			WithArgs("fam-1").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("INSERT INTO family_attributes").
			WithArgs(sqlmock.AnyArg(), "fam-1", "ag-3").
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		err = repo.ReplaceAttributes(ctx, "fam-1", []string{"ag-3"})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFamilyPostgres_SoftDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades the marker to live associations", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewFamilyPostgres(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE product_families SET deleted_at").
			WithArgs("fam-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE family_attributes SET deleted_at").
			WithArgs("fam-1").
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		err = repo.SoftDelete(ctx, "fam-1")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown or already deleted family", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewFamilyPostgres(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE product_families SET deleted_at").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.SoftDelete(ctx, "missing")

		assert.True(t, IsNoRowsError(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFamilyPostgres_ExistsByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFamilyPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("shoes").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByName(ctx, "shoes")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
