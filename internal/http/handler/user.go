package handler

import (
	"github.com/gofiber/fiber/v2"

	"pimapi/internal/service"
)

// UserHandler exposes the user-account endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler constructs a new UserHandler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Login handles POST /users/login/.
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseAndValidate(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := h.svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return failFromService(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{
		"user":          res.User,
		"access_token":  res.AccessToken,
		"refresh_token": res.RefreshToken,
	})
}

// List handles GET /users/?search=&page=&limit=.
func (h *UserHandler) List(c *fiber.Ctx) error {
	page, err := queryInt(c, "page", 0)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "page must be an integer")
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "limit must be an integer")
	}

	res, err := h.svc.List(c.UserContext(), service.UserListQuery{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return failFromService(c, err)
	}
	return successPage(c, fiber.StatusOK, res.Items, res.Pagination)
}

// Create handles POST /users/add/. Accepts JSON, or multipart/form-data with
// the picture under the "profile_picture" file field.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req createUserRequest
	var picture *service.FileUpload

	if isMultipart(c) {
		req = createUserRequest{
			Name:          c.FormValue("name"),
			Email:         c.FormValue("email"),
			Password:      c.FormValue("password"),
			Role:          c.FormValue("role"),
			AccountAccess: formBool(c, "account_access"),
		}
		fh, err := c.FormFile("profile_picture")
		if err == nil && fh != nil {
			up, closeFn, err := openUpload(fh)
			if err != nil {
				return fail(c, fiber.StatusBadRequest, errMalformedForm.Error())
			}
			defer closeFn()
			picture = up
		}
	} else if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed request body")
	}

	if err := validateStruct(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	out, err := h.svc.Create(c.UserContext(), service.CreateUserInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		AccountAccess:  req.AccountAccess,
		ProfilePicture: picture,
	})
	if err != nil {
		return failFromService(c, err)
	}
	return success(c, fiber.StatusCreated, out)
}

// Update handles PATCH /users/:id/update/. Accepts JSON, or multipart with a
// replacement "profile_picture" file.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return failFromService(c, err)
	}

	var req updateUserRequest
	var picture *service.FileUpload

	if isMultipart(c) {
		if v := c.FormValue("name"); v != "" {
			req.Name = &v
		}
		if v := c.FormValue("role"); v != "" {
			req.Role = &v
		}
		if v := c.FormValue("account_access"); v != "" {
			access := v == "true" || v == "1"
			req.AccountAccess = &access
		}
		fh, err := c.FormFile("profile_picture")
		if err == nil && fh != nil {
			up, closeFn, err := openUpload(fh)
			if err != nil {
				return fail(c, fiber.StatusBadRequest, errMalformedForm.Error())
			}
			defer closeFn()
			picture = up
		}
	} else if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed request body")
	}

	if err := validateStruct(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	out, err := h.svc.Update(c.UserContext(), id, service.UpdateUserInput{
		Name:           req.Name,
		Role:           req.Role,
		AccountAccess:  req.AccountAccess,
		ProfilePicture: picture,
	})
	if err != nil {
		return failFromService(c, err)
	}
	return success(c, fiber.StatusOK, out)
}

// ForgotPassword handles POST /users/forgot/password/.
func (h *UserHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := parseAndValidate(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.svc.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return failFromService(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"email": req.Email})
}

// ResetPassword handles PATCH /users/reset/password/.
func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := parseAndValidate(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.svc.ResetPassword(c.UserContext(), req.Hash, req.Secret, req.Password); err != nil {
		return failFromService(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"reset": true})
}

// Delete handles DELETE /users/:id/delete/.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return failFromService(c, err)
	}

	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return failFromService(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"id": id})
}
