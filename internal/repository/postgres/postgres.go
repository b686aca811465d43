package postgres

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"pimapi/internal/repository"
)

// Package postgres implements the repository interfaces over database/sql
// with parameterized queries. No business logic lives here.

// IsNoRowsError reports whether err is the database/sql no-rows sentinel.
func IsNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// translateError maps driver error codes to the sentinels callers understand:
// a unique-constraint violation becomes ErrDuplicate, and an id that cannot be
// parsed as a uuid (22P02) matches no row, so it becomes sql.ErrNoRows.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return repository.ErrDuplicate
		case "22P02":
			return sql.ErrNoRows
		}
	}
	return err
}

// requireAffected returns sql.ErrNoRows when an UPDATE matched no live row.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
