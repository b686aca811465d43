package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pimapi/internal/model"
)

type MockFamilyRepository struct {
	mock.Mock
}

func (m *MockFamilyRepository) Create(ctx context.Context, family *model.ProductFamily, attributeGroupIDs []string) (*model.ProductFamily, error) {
	args := m.Called(ctx, family, attributeGroupIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductFamily), args.Error(1)
}

func (m *MockFamilyRepository) FindByID(ctx context.Context, id string) (*model.ProductFamily, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductFamily), args.Error(1)
}

func (m *MockFamilyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockFamilyRepository) List(ctx context.Context, search string) ([]model.ProductFamily, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductFamily), args.Error(1)
}

func (m *MockFamilyRepository) UpdateName(ctx context.Context, id, name string) (*model.ProductFamily, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductFamily), args.Error(1)
}

func (m *MockFamilyRepository) ListEffectiveAttributes(ctx context.Context, familyID string) ([]model.AttributeGroup, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AttributeGroup), args.Error(1)
}

func (m *MockFamilyRepository) ReplaceAttributes(ctx context.Context, familyID string, attributeGroupIDs []string) error {
	args := m.Called(ctx, familyID, attributeGroupIDs)
	return args.Error(0)
}

func (m *MockFamilyRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
