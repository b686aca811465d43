package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pimapi/internal/model"
	"pimapi/internal/repository"
	repoMocks "pimapi/internal/repository/mocks"
	storeMocks "pimapi/internal/storage/mocks"
)

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path uploads images in order", func(t *testing.T) {
		mRepo := new(repoMocks.MockProductRepository)
		mStore := new(storeMocks.MockStorage)

		r1 := strings.NewReader("first")
		r2 := strings.NewReader("second")

		mRepo.On("ExistsBySKU", ctx, "SKU-1").Return(false, nil)
		mStore.On("Upload", ctx, mock.MatchedBy(func(name string) bool {
			return strings.HasSuffix(name, ".jpg")
		}), r1, int64(5), "image/jpeg").Return("http://blob/a.jpg", nil).Once()
		mStore.On("Upload", ctx, mock.MatchedBy(func(name string) bool {
			return strings.HasSuffix(name, ".png")
		}), r2, int64(6), "image/png").Return("http://blob/b.png", nil).Once()
		mRepo.On("Create", ctx, mock.MatchedBy(func(p *model.Product) bool {
			return p.SKU == "SKU-1" &&
				len(p.Images) == 2 &&
				p.Images[0] == "http://blob/a.jpg" &&
				p.Images[1] == "http://blob/b.png"
		})).Return(&model.Product{ID: "prod-1", SKU: "SKU-1"}, nil)

		svc := NewProductService(mRepo, mStore)
		out, err := svc.Create(ctx, CreateProductInput{
			SKU:  "SKU-1",
			Name: "sneaker",
			Images: []FileUpload{
				{Name: "front.jpg", Reader: r1, Size: 5, ContentType: "image/jpeg"},
				{Name: "back.png", Reader: r2, Size: 6, ContentType: "image/png"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "prod-1", out.ID)
		mRepo.AssertExpectations(t)
		mStore.AssertExpectations(t)
	})

	t.Run("duplicate sku conflicts before any upload", func(t *testing.T) {
		mRepo := new(repoMocks.MockProductRepository)
		mStore := new(storeMocks.MockStorage)

		mRepo.On("ExistsBySKU", ctx, "SKU-1").Return(true, nil)

		svc := NewProductService(mRepo, mStore)
		_, err := svc.Create(ctx, CreateProductInput{
			SKU:    "SKU-1",
			Name:   "sneaker",
			Images: []FileUpload{{Name: "front.jpg", Reader: strings.NewReader("x"), Size: 1}},
		})

		assert.ErrorIs(t, err, ErrConflict)
		mStore.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("failed upload deletes earlier blobs", func(t *testing.T) {
		mRepo := new(repoMocks.MockProductRepository)
		mStore := new(storeMocks.MockStorage)

		r1 := strings.NewReader("first")
		r2 := strings.NewReader("second")

		mRepo.On("ExistsBySKU", ctx, "SKU-1").Return(false, nil)
		mStore.On("Upload", ctx, mock.Anything, r1, int64(5), "").Return("http://blob/a.jpg", nil).Once()
		mStore.On("Upload", ctx, mock.Anything, r2, int64(6), "").Return("", errors.New("bucket down")).Once()
		mStore.On("Delete", ctx, "http://blob/a.jpg").Return(nil).Once()

		svc := NewProductService(mRepo, mStore)
		_, err := svc.Create(ctx, CreateProductInput{
			SKU:  "SKU-1",
			Name: "sneaker",
			Images: []FileUpload{
				{Name: "front.jpg", Reader: r1, Size: 5},
				{Name: "back.png", Reader: r2, Size: 6},
			},
		})

		assert.ErrorIs(t, err, ErrUpstream)
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mStore.AssertExpectations(t)
	})

	t.Run("db failure deletes uploaded blobs", func(t *testing.T) {
		mRepo := new(repoMocks.MockProductRepository)
		mStore := new(storeMocks.MockStorage)

		r1 := strings.NewReader("first")

		mRepo.On("ExistsBySKU", ctx, "SKU-1").Return(false, nil)
		mStore.On("Upload", ctx, mock.Anything, r1, int64(5), "").Return("http://blob/a.jpg", nil).Once()
		mRepo.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)
		mStore.On("Delete", ctx, "http://blob/a.jpg").Return(nil).Once()

		svc := NewProductService(mRepo, mStore)
		_, err := svc.Create(ctx, CreateProductInput{
			SKU:    "SKU-1",
			Name:   "sneaker",
			Images: []FileUpload{{Name: "front.jpg", Reader: r1, Size: 5}},
		})

		assert.ErrorIs(t, err, ErrConflict)
		mStore.AssertExpectations(t)
	})
}

func TestProductService_CreateBulk(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts all rows", func(t *testing.T) {
		mRepo := new(repoMocks.MockProductRepository)
		mStore := new(storeMocks.MockStorage)

		mRepo.On("CreateBulk", ctx, mock.MatchedBy(func(ps []model.Product) bool {
			return len(ps) == 2 && ps[0].SKU == "A" && ps[1].SKU == "B"
		})).Return(2, nil)

		svc := NewProductService(mRepo, mStore)
		n, err := svc.CreateBulk(ctx, []BulkProductInput{
			{SKU: "A", Name: "first"},
			{SKU: "B", Name: "second"},
		})

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		mRepo.AssertExpectations(t)
	})

	t.Run("missing sku fails validation", func(t *testing.T) {
		mRepo := new(repoMocks.MockProductRepository)
		mStore := new(storeMocks.MockStorage)

		svc := NewProductService(mRepo, mStore)
		_, err := svc.CreateBulk(ctx, []BulkProductInput{{Name: "no sku"}})

		assert.ErrorIs(t, err, ErrValidation)
		mRepo.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything)
	})

	t.Run("empty list fails validation", func(t *testing.T) {
		mRepo := new(repoMocks.MockProductRepository)
		mStore := new(storeMocks.MockStorage)

		svc := NewProductService(mRepo, mStore)
		_, err := svc.CreateBulk(ctx, nil)

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("third page of twenty five", func(t *testing.T) {
		mRepo := new(repoMocks.MockProductRepository)
		mStore := new(storeMocks.MockStorage)

		mRepo.On("List", ctx,
			repository.ProductFilter{Search: "shoe"},
			repository.PageQuery{Limit: 10, Offset: 20},
		).Return(&repository.PageResult[model.Product]{
			Items: []model.Product{{ID: "p-21"}, {ID: "p-22"}, {ID: "p-23"}, {ID: "p-24"}, {ID: "p-25"}},
			Total: 25,
		}, nil)

		svc := NewProductService(mRepo, mStore)
		out, err := svc.List(ctx, ProductListQuery{Search: "shoe", Page: 3, Limit: 10})

		require.NoError(t, err)
		assert.Len(t, out.Items, 5)
		assert.Equal(t, 3, out.Pagination.TotalPages)
		assert.Nil(t, out.Pagination.NextPage)
		require.NotNil(t, out.Pagination.PrevPage)
		assert.Equal(t, 2, *out.Pagination.PrevPage)
		mRepo.AssertExpectations(t)
	})

	t.Run("invalid limit rejected", func(t *testing.T) {
		mRepo := new(repoMocks.MockProductRepository)
		mStore := new(storeMocks.MockStorage)

		svc := NewProductService(mRepo, mStore)
		_, err := svc.List(ctx, ProductListQuery{Page: 1, Limit: -1})

		assert.ErrorIs(t, err, ErrValidation)
		mRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})
}
