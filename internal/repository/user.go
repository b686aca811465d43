package repository

import (
	"context"

	"pimapi/internal/model"
)

// UpdateUserParams carries a partial update; nil fields are left unchanged.
type UpdateUserParams struct {
	Name           *string
	Role           *string
	ProfilePicture *string
	AccountAccess  *bool
}

// UserRepository defines data access for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)

	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail returns the live user with this email (the login identity).
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// ExistsByEmail reports whether a live user already uses the email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindByRecoveryTokens returns the live user whose hash and secret both
	// match exactly.
	FindByRecoveryTokens(ctx context.Context, hash, secret string) (*model.User, error)

	List(ctx context.Context, f UserFilter, pq PageQuery) (*PageResult[model.User], error)

	Update(ctx context.Context, id string, p UpdateUserParams) (*model.User, error)

	// SetForgotPassword toggles the recovery flag.
	SetForgotPassword(ctx context.Context, id string, flag bool) error

	// ResetPassword stores the new password hash and clears the recovery flag.
	ResetPassword(ctx context.Context, id, passwordHash string) error

	SoftDelete(ctx context.Context, id string) error
}
