package handler

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"pimapi/internal/service"
)

// ProductHandler exposes the product endpoints.
type ProductHandler struct {
	svc service.ProductService
}

// NewProductHandler constructs a new ProductHandler.
func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// queryInt parses an integer query parameter. Non-integer input is an error,
// not a silent default.
func queryInt(c *fiber.Ctx, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func queryBool(c *fiber.Ctx, name string) bool {
	v := c.Query(name)
	return v == "true" || v == "1"
}

// List handles GET /products/?search=&archived=&published=&page=&limit=.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page, err := queryInt(c, "page", 0)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "page must be an integer")
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "limit must be an integer")
	}

	res, err := h.svc.List(c.UserContext(), service.ProductListQuery{
		Search:    c.Query("search"),
		Archived:  queryBool(c, "archived"),
		Published: queryBool(c, "published"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return failFromService(c, err)
	}
	return successPage(c, fiber.StatusOK, res.Items, res.Pagination)
}

// Create handles POST /products/add/. Accepts JSON, or multipart/form-data
// with the images under the "images" file field.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req createProductRequest
	var images []service.FileUpload

	if isMultipart(c) {
		parsed, files, closeAll, err := h.parseMultipartCreate(c)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		defer closeAll()
		req = parsed
		images = files
	} else if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed request body")
	}

	if err := validateStruct(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	out, err := h.svc.Create(c.UserContext(), service.CreateProductInput{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		FamilyID:    req.Family,
		Details:     req.Details,
		Images:      images,
		IsArchived:  req.IsArchived,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return failFromService(c, err)
	}
	return success(c, fiber.StatusCreated, out)
}

func (h *ProductHandler) parseMultipartCreate(c *fiber.Ctx) (createProductRequest, []service.FileUpload, func(), error) {
	req := createProductRequest{
		SKU:         c.FormValue("sku"),
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		IsArchived:  formBool(c, "is_archived"),
		IsPublished: formBool(c, "is_published"),
	}
	if v := c.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, nil, func() {}, errInvalidPrice
		}
		req.Price = price
	}
	if v := c.FormValue("family"); v != "" {
		req.Family = &v
	}
	if v := c.FormValue("details"); v != "" {
		req.Details = json.RawMessage(v)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return req, nil, func() {}, errMalformedForm
	}

	var images []service.FileUpload
	var closers []func()
	closeAll := func() {
		for _, fn := range closers {
			fn()
		}
	}
	for _, fh := range form.File["images"] {
		up, closeFn, err := openUpload(fh)
		if err != nil {
			closeAll()
			return req, nil, func() {}, errMalformedForm
		}
		images = append(images, *up)
		closers = append(closers, closeFn)
	}
	return req, images, closeAll, nil
}

// CreateBulk handles POST /products/add/bulk/ with a JSON array body.
func (h *ProductHandler) CreateBulk(c *fiber.Ctx) error {
	var reqs []bulkProductRequest
	if err := c.BodyParser(&reqs); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed request body")
	}
	for i := range reqs {
		if err := validateStruct(&reqs[i]); err != nil {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
	}

	ins := make([]service.BulkProductInput, 0, len(reqs))
	for _, r := range reqs {
		ins = append(ins, service.BulkProductInput{
			SKU:         r.SKU,
			Name:        r.Name,
			Description: r.Description,
			Price:       r.Price,
			FamilyID:    r.Family,
			Details:     r.Details,
			Images:      r.Images,
			IsArchived:  r.IsArchived,
			IsPublished: r.IsPublished,
		})
	}

	n, err := h.svc.CreateBulk(c.UserContext(), ins)
	if err != nil {
		return failFromService(c, err)
	}
	return success(c, fiber.StatusCreated, fiber.Map{"created": n})
}

// Update handles PATCH /products/:id/update/.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return failFromService(c, err)
	}

	var req updateProductRequest
	if err := parseAndValidate(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	out, err := h.svc.Update(c.UserContext(), id, service.UpdateProductInput{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		FamilyID:    req.Family,
		Details:     req.Details,
		Images:      req.Images,
		IsArchived:  req.IsArchived,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return failFromService(c, err)
	}
	return success(c, fiber.StatusOK, out)
}

// Delete handles DELETE /products/:id/delete/.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return failFromService(c, err)
	}

	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return failFromService(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{"id": id})
}
