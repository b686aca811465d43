package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pimapi/internal/auth"
	"pimapi/internal/mail"
	"pimapi/internal/model"
	"pimapi/internal/repository"
	"pimapi/internal/storage"
)

// CreateUserInput is the payload of the admin user-creation workflow.
type CreateUserInput struct {
	Name           string
	Email          string
	Password       string
	Role           string
	AccountAccess  bool
	ProfilePicture *FileUpload
}

// UpdateUserInput carries a partial update; nil fields are left unchanged.
// A ProfilePicture whose file name matches the current picture is treated as
// unchanged and not re-uploaded.
type UpdateUserInput struct {
	Name           *string
	Role           *string
	AccountAccess  *bool
	ProfilePicture *FileUpload
}

// UserListQuery selects and windows the user collection.
type UserListQuery struct {
	Search string
	Page   int
	Limit  int
}

// UserListResult is the service-level DTO for paginated users.
type UserListResult struct {
	Items      []model.User
	Pagination Pagination
}

// LoginResult bundles the authenticated user with a fresh token pair.
type LoginResult struct {
	User         *model.User
	AccessToken  string
	RefreshToken string
}

// UserService defines the use cases for user accounts.
type UserService interface {
	// Login verifies the credentials and the account-access flag, then
	// issues an access/refresh token pair.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Create registers a user with a hashed password and freshly generated
	// recovery tokens, uploading the profile picture when one is supplied.
	Create(ctx context.Context, in CreateUserInput) (*model.User, error)

	// List returns one page of matching users plus pagination metadata.
	List(ctx context.Context, q UserListQuery) (*UserListResult, error)

	Update(ctx context.Context, id string, in UpdateUserInput) (*model.User, error)

	// ForgotPassword flags the account for recovery and emails the reset
	// link embedding the account's hash and secret tokens.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword redeems the recovery tokens. It fails with
	// ErrInvalidToken unless a live user matches both tokens and has a
	// pending forgot-password request.
	ResetPassword(ctx context.Context, hash, secret, newPassword string) error

	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo    repository.UserRepository
	store   storage.Storage
	mailer  mail.Mailer
	tokens  auth.TokenIssuer
	hasher  auth.Hasher
	baseURL string
}

// NewUserService constructs a new UserService. baseURL prefixes the password
// reset link sent by ForgotPassword.
func NewUserService(
	repo repository.UserRepository,
	store storage.Storage,
	mailer mail.Mailer,
	tokens auth.TokenIssuer,
	hasher auth.Hasher,
	baseURL string,
) UserService {
	return &userService{
		repo:    repo,
		store:   store,
		mailer:  mailer,
		tokens:  tokens,
		hasher:  hasher,
		baseURL: baseURL,
	}
}

func (s *userService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(password, u.Password) {
		return nil, ErrInvalidCredentials
	}
	if !u.AccountAccess {
		return nil, ErrLoginDisabled
	}

	access, err := s.tokens.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	taken, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	hash, err := auth.NewRecoveryToken()
	if err != nil {
		return nil, err
	}
	secret, err := auth.NewRecoveryToken()
	if err != nil {
		return nil, err
	}

	// Profile pictures keep the client file name so a later update with the
	// same name is recognized as unchanged.
	var pictureURL string
	if in.ProfilePicture != nil {
		pic := in.ProfilePicture
		pictureURL, err = s.store.Upload(ctx, pic.Name, pic.Reader, pic.Size, pic.ContentType)
		if err != nil {
			return nil, fmt.Errorf("%w: upload profile picture: %v", ErrUpstream, err)
		}
	}

	u := &model.User{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Email:          in.Email,
		Role:           in.Role,
		ProfilePicture: pictureURL,
		AccountAccess:  in.AccountAccess,
		Password:       passwordHash,
		Hash:           hash,
		Secret:         secret,
		CreatedAt:      time.Now().UTC(),
	}
	out, err := s.repo.Create(ctx, u)
	if err != nil {
		if pictureURL != "" {
			if delErr := s.store.Delete(ctx, pictureURL); delErr != nil {
				logJSON(map[string]any{"msg": "compensating blob delete failed", "url": pictureURL, "error": delErr.Error()})
			}
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return out, nil
}

func (s *userService) List(ctx context.Context, q UserListQuery) (*UserListResult, error) {
	page, limit, offset, err := pageWindow(q.Page, q.Limit)
	if err != nil {
		return nil, err
	}

	res, err := s.repo.List(ctx,
		repository.UserFilter{Search: q.Search},
		repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}

	return &UserListResult{
		Items:      res.Items,
		Pagination: newPagination(page, limit, res.Total),
	}, nil
}

func (s *userService) Update(ctx context.Context, id string, in UpdateUserInput) (*model.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	params := repository.UpdateUserParams{
		Name:          in.Name,
		Role:          in.Role,
		AccountAccess: in.AccountAccess,
	}

	var previousURL string
	if in.ProfilePicture != nil {
		pic := in.ProfilePicture
		// Same file name as the stored picture means the client re-sent the
		// current image; skip the upload.
		if u.ProfilePicture == "" || storage.FileName(u.ProfilePicture) != pic.Name {
			url, err := s.store.Upload(ctx, pic.Name, pic.Reader, pic.Size, pic.ContentType)
			if err != nil {
				return nil, fmt.Errorf("%w: upload profile picture: %v", ErrUpstream, err)
			}
			params.ProfilePicture = &url
			previousURL = u.ProfilePicture
		}
	}

	out, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if params.ProfilePicture != nil {
			if delErr := s.store.Delete(ctx, *params.ProfilePicture); delErr != nil {
				logJSON(map[string]any{"msg": "compensating blob delete failed", "url": *params.ProfilePicture, "error": delErr.Error()})
			}
		}
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// The old picture is unreferenced now; removing it is best-effort.
	if previousURL != "" {
		if err := s.store.Delete(ctx, previousURL); err != nil {
			logJSON(map[string]any{"msg": "stale profile picture delete failed", "url": previousURL, "error": err.Error()})
		}
	}
	return out, nil
}

func (s *userService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}

	if err := s.repo.SetForgotPassword(ctx, u.ID, true); err != nil {
		return err
	}

	link := fmt.Sprintf("%sreset-password/?hash=%s&secret=%s", s.baseURL, u.Hash, u.Secret)
	body := fmt.Sprintf("Hello %s,\n\nUse the link below to reset your password:\n%s\n", u.Name, link)
	if err := s.mailer.Send(ctx, "Reset your password", body, []string{u.Email}); err != nil {
		// The flag stays set on a mail failure; the tokens remain
		// redeemable and a retried request can still deliver the link.
		return fmt.Errorf("%w: send reset mail: %v", ErrUpstream, err)
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, hash, secret, newPassword string) error {
	u, err := s.repo.FindByRecoveryTokens(ctx, hash, secret)
	if err != nil {
		if isNoRows(err) {
			return ErrInvalidToken
		}
		return err
	}
	if !u.ForgotPassword {
		return ErrInvalidToken
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.ResetPassword(ctx, u.ID, passwordHash); err != nil {
		return err
	}

	// Courtesy notification; a mail failure does not undo the reset.
	body := fmt.Sprintf("Hello %s,\n\nYour password has been changed.\n", u.Name)
	if err := s.mailer.Send(ctx, "Your password was reset", body, []string{u.Email}); err != nil {
		logJSON(map[string]any{"msg": "reset confirmation mail failed", "error": err.Error()})
	}
	return nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
