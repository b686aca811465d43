package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pimapi/internal/service"
)

var validate = validator.New()

type createAttributeGroupRequest struct {
	Name   string          `json:"name" validate:"required"`
	Values json.RawMessage `json:"values" validate:"required"`
}

type updateAttributeGroupRequest struct {
	Name   *string         `json:"name" validate:"omitempty,min=1"`
	Values json.RawMessage `json:"values"`
}

type createFamilyRequest struct {
	Name       string   `json:"name" validate:"required"`
	Attributes []string `json:"attributes"`
}

type updateFamilyRequest struct {
	Name       *string  `json:"name" validate:"omitempty,min=1"`
	Attributes []string `json:"attributes"`
}

type createProductRequest struct {
	SKU         string          `json:"sku" form:"sku" validate:"required"`
	Name        string          `json:"name" form:"name" validate:"required"`
	Description string          `json:"description" form:"description"`
	Price       float64         `json:"price" form:"price" validate:"gte=0"`
	Family      *string         `json:"family" form:"family" validate:"omitempty,uuid"`
	Details     json.RawMessage `json:"details"`
	IsArchived  bool            `json:"is_archived" form:"is_archived"`
	IsPublished bool            `json:"is_published" form:"is_published"`
}

type bulkProductRequest struct {
	SKU         string          `json:"sku" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       float64         `json:"price" validate:"gte=0"`
	Family      *string         `json:"family" validate:"omitempty,uuid"`
	Details     json.RawMessage `json:"details"`
	Images      []string        `json:"images"`
	IsArchived  bool            `json:"is_archived"`
	IsPublished bool            `json:"is_published"`
}

type updateProductRequest struct {
	SKU         *string         `json:"sku" validate:"omitempty,min=1"`
	Name        *string         `json:"name" validate:"omitempty,min=1"`
	Description *string         `json:"description"`
	Price       *float64        `json:"price" validate:"omitempty,gte=0"`
	Family      *string         `json:"family" validate:"omitempty,uuid"`
	Details     json.RawMessage `json:"details"`
	Images      *[]string       `json:"images"`
	IsArchived  *bool           `json:"is_archived"`
	IsPublished *bool           `json:"is_published"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Name          string `json:"name" form:"name" validate:"required"`
	Email         string `json:"email" form:"email" validate:"required,email"`
	Password      string `json:"password" form:"password" validate:"required,min=8"`
	Role          string `json:"role" form:"role" validate:"required"`
	AccountAccess bool   `json:"account_access" form:"account_access"`
}

type updateUserRequest struct {
	Name          *string `json:"name" form:"name" validate:"omitempty,min=1"`
	Role          *string `json:"role" form:"role" validate:"omitempty,min=1"`
	AccountAccess *bool   `json:"account_access" form:"account_access"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Hash     string `json:"hash" validate:"required"`
	Secret   string `json:"secret" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// pathID returns the :id path parameter. All entity ids are uuids; anything
// else cannot address a row, so it is reported as not found before the
// database ever sees it.
func pathID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", service.ErrNotFound
	}
	return id, nil
}

// parseAndValidate decodes the body into req and runs the validation rules.
// The returned error is already a client-safe message.
func parseAndValidate(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fmt.Errorf("malformed request body")
	}
	return validateStruct(req)
}

func validateStruct(req any) error {
	if err := validate.Struct(req); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			f := invalid[0]
			return fmt.Errorf("field %s failed on rule %s", f.Field(), f.Tag())
		}
		return fmt.Errorf("invalid request body")
	}
	return nil
}

var (
	errInvalidPrice  = errors.New("price must be a number")
	errMalformedForm = errors.New("malformed form data")
)

// isMultipart reports whether the request carries form-data with files.
func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

func formBool(c *fiber.Ctx, name string) bool {
	v := c.FormValue(name)
	return v == "true" || v == "1"
}

// openUpload turns one multipart file header into a service upload.
// The caller must drain the reader before the request ends.
func openUpload(fh *multipart.FileHeader) (*service.FileUpload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	up := &service.FileUpload{
		Name:        fh.Filename,
		Reader:      f,
		Size:        fh.Size,
		ContentType: ct,
	}
	return up, func() { f.Close() }, nil
}
