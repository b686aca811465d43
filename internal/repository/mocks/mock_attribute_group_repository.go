package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pimapi/internal/model"
	"pimapi/internal/repository"
)

type MockAttributeGroupRepository struct {
	mock.Mock
}

func (m *MockAttributeGroupRepository) Create(ctx context.Context, ag *model.AttributeGroup) (*model.AttributeGroup, error) {
	args := m.Called(ctx, ag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AttributeGroup), args.Error(1)
}

func (m *MockAttributeGroupRepository) FindByID(ctx context.Context, id string) (*model.AttributeGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AttributeGroup), args.Error(1)
}

func (m *MockAttributeGroupRepository) FindByIDs(ctx context.Context, ids []string) ([]model.AttributeGroup, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AttributeGroup), args.Error(1)
}

func (m *MockAttributeGroupRepository) List(ctx context.Context, search string) ([]model.AttributeGroup, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AttributeGroup), args.Error(1)
}

func (m *MockAttributeGroupRepository) Update(ctx context.Context, id string, p repository.UpdateAttributeGroupParams) (*model.AttributeGroup, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AttributeGroup), args.Error(1)
}

func (m *MockAttributeGroupRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
