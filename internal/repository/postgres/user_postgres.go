package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pimapi/internal/model"
	"pimapi/internal/repository"
)

const userColumns = `id, name, email, role, profile_picture, account_access, password, hash, secret, forgot_password, created_at, updated_at`

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.ProfilePicture,
		&u.AccountAccess,
		&u.Password,
		&u.Hash,
		&u.Secret,
		&u.ForgotPassword,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, name, email, role, profile_picture, account_access, password, hash, secret)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns
	row := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Name,
		u.Email,
		u.Role,
		u.ProfilePicture,
		u.AccountAccess,
		u.Password,
		u.Hash,
		u.Secret,
	)
	out, err := scanUser(row)
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// FindByID fetches a single live user by ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail fetches the live user with this email.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

// ExistsByEmail reports whether a live user already uses the email.
func (r *UserPostgres) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND deleted_at IS NULL)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// FindByRecoveryTokens fetches the live user whose hash and secret both match.
func (r *UserPostgres) FindByRecoveryTokens(ctx context.Context, hash, secret string) (*model.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE hash = $1 AND secret = $2 AND deleted_at IS NULL
	`
	return scanUser(r.db.QueryRowContext(ctx, q, hash, secret))
}

// List returns a page of users plus the total count over the same filter.
func (r *UserPostgres) List(ctx context.Context, f repository.UserFilter, pq repository.PageQuery) (*repository.PageResult[model.User], error) {
	where, args := buildUserWhere(f)

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var total int
	qCount := "SELECT COUNT(*) FROM users WHERE " + where
	if err := tx.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	listArgs := append(append([]any{}, args...), pq.Limit, pq.Offset)
	qList := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`, userColumns, where, len(listArgs)-1, len(listArgs))

	rows, err := tx.QueryContext(ctx, qList, listArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.User]{Items: items, Total: total}, nil
}

// Update applies the non-nil fields and returns the stored record.
func (r *UserPostgres) Update(ctx context.Context, id string, p repository.UpdateUserParams) (*model.User, error) {
	set := []string{"updated_at = now()"}
	args := []any{}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Role != nil {
		add("role", *p.Role)
	}
	if p.ProfilePicture != nil {
		add("profile_picture", *p.ProfilePicture)
	}
	if p.AccountAccess != nil {
		add("account_access", *p.AccountAccess)
	}
	args = append(args, id)

	q := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING %s`, strings.Join(set, ", "), len(args), userColumns)

	out, err := scanUser(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// SetForgotPassword toggles the recovery flag.
func (r *UserPostgres) SetForgotPassword(ctx context.Context, id string, flag bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET forgot_password = $1, updated_at = now() WHERE id = $2 AND deleted_at IS NULL`, flag, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ResetPassword stores the new password hash and clears the recovery flag.
func (r *UserPostgres) ResetPassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password = $1, forgot_password = FALSE, updated_at = now() WHERE id = $2 AND deleted_at IS NULL`, passwordHash, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// SoftDelete marks the user deleted.
func (r *UserPostgres) SoftDelete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
