package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"pimapi/internal/model"
	"pimapi/internal/repository"
	"pimapi/internal/storage"
)

// CreateProductInput is the payload of the product create workflow. Images are
// raw uploads; the workflow stores them externally and keeps the URLs in
// upload order.
type CreateProductInput struct {
	SKU         string
	Name        string
	Description string
	Price       float64
	FamilyID    *string
	Details     json.RawMessage
	Images      []FileUpload
	IsArchived  bool
	IsPublished bool
}

// BulkProductInput is one row of the bulk create workflow. Bulk rows carry no
// file uploads; Images, if present, are already URLs.
type BulkProductInput struct {
	SKU         string
	Name        string
	Description string
	Price       float64
	FamilyID    *string
	Details     json.RawMessage
	Images      []string
	IsArchived  bool
	IsPublished bool
}

// UpdateProductInput carries a partial update; nil fields are left unchanged.
type UpdateProductInput struct {
	SKU         *string
	Name        *string
	Description *string
	Price       *float64
	FamilyID    *string
	Details     json.RawMessage
	Images      *[]string
	IsArchived  *bool
	IsPublished *bool
}

// ProductListQuery selects and windows the product collection. Archived and
// Published each add a predicate only when set; combined they AND together.
type ProductListQuery struct {
	Search    string
	Archived  bool
	Published bool
	Page      int
	Limit     int
}

// ProductListResult is the service-level DTO for paginated products.
type ProductListResult struct {
	Items      []model.Product
	Pagination Pagination
}

// ProductService defines the use cases for products.
type ProductService interface {
	// Create uploads the images in order, then inserts the product row.
	// A duplicate live sku fails with ErrConflict before any upload happens;
	// uploaded blobs are deleted again when a later step fails.
	Create(ctx context.Context, in CreateProductInput) (*model.Product, error)

	// CreateBulk inserts all rows in one transaction and returns the count.
	CreateBulk(ctx context.Context, ins []BulkProductInput) (int, error)

	// List returns one page of matching products plus pagination metadata.
	List(ctx context.Context, q ProductListQuery) (*ProductListResult, error)

	Update(ctx context.Context, id string, in UpdateProductInput) (*model.Product, error)

	Delete(ctx context.Context, id string) error
}

type productService struct {
	repo  repository.ProductRepository
	store storage.Storage
}

// NewProductService constructs a new ProductService.
func NewProductService(repo repository.ProductRepository, store storage.Storage) ProductService {
	return &productService{repo: repo, store: store}
}

func (s *productService) Create(ctx context.Context, in CreateProductInput) (*model.Product, error) {
	taken, err := s.repo.ExistsBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	urls, err := s.uploadImages(ctx, in.Images)
	if err != nil {
		return nil, err
	}

	p := &model.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		FamilyID:    in.FamilyID,
		Details:     in.Details,
		Images:      urls,
		IsArchived:  in.IsArchived,
		IsPublished: in.IsPublished,
		CreatedAt:   time.Now().UTC(),
	}
	out, err := s.repo.Create(ctx, p)
	if err != nil {
		s.deleteBlobs(ctx, urls)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return out, nil
}

// uploadImages stores each upload under a generated name and returns the URLs
// in input order. A failed upload deletes the blobs stored so far.
func (s *productService) uploadImages(ctx context.Context, images []FileUpload) ([]string, error) {
	if len(images) == 0 {
		return nil, nil
	}
	urls := make([]string, 0, len(images))
	for _, img := range images {
		name := uuid.New().String() + filepath.Ext(img.Name)
		url, err := s.store.Upload(ctx, name, img.Reader, img.Size, img.ContentType)
		if err != nil {
			s.deleteBlobs(ctx, urls)
			return nil, fmt.Errorf("%w: upload image: %v", ErrUpstream, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// deleteBlobs is best-effort compensation; failures are logged, not surfaced.
func (s *productService) deleteBlobs(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.store.Delete(ctx, url); err != nil {
			logJSON(map[string]any{"msg": "compensating blob delete failed", "url": url, "error": err.Error()})
		}
	}
}

func (s *productService) CreateBulk(ctx context.Context, ins []BulkProductInput) (int, error) {
	if len(ins) == 0 {
		return 0, fmt.Errorf("%w: empty product list", ErrValidation)
	}

	ps := make([]model.Product, 0, len(ins))
	now := time.Now().UTC()
	for i, in := range ins {
		if in.SKU == "" || in.Name == "" {
			return 0, fmt.Errorf("%w: row %d: sku and name are required", ErrValidation, i)
		}
		ps = append(ps, model.Product{
			ID:          uuid.New().String(),
			SKU:         in.SKU,
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			FamilyID:    in.FamilyID,
			Details:     in.Details,
			Images:      in.Images,
			IsArchived:  in.IsArchived,
			IsPublished: in.IsPublished,
			CreatedAt:   now,
		})
	}

	n, err := s.repo.CreateBulk(ctx, ps)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, ErrConflict
		}
		return 0, err
	}
	return n, nil
}

func (s *productService) List(ctx context.Context, q ProductListQuery) (*ProductListResult, error) {
	page, limit, offset, err := pageWindow(q.Page, q.Limit)
	if err != nil {
		return nil, err
	}

	res, err := s.repo.List(ctx,
		repository.ProductFilter{Search: q.Search, Archived: q.Archived, Published: q.Published},
		repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}

	return &ProductListResult{
		Items:      res.Items,
		Pagination: newPagination(page, limit, res.Total),
	}, nil
}

func (s *productService) Update(ctx context.Context, id string, in UpdateProductInput) (*model.Product, error) {
	out, err := s.repo.Update(ctx, id, repository.UpdateProductParams{
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		FamilyID:    in.FamilyID,
		Details:     in.Details,
		Images:      in.Images,
		IsArchived:  in.IsArchived,
		IsPublished: in.IsPublished,
	})
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return out, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
