package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"pimapi/internal/model"
	"pimapi/internal/service"
)

type MockAttributeGroupService struct {
	mock.Mock
}

func (m *MockAttributeGroupService) Create(ctx context.Context, name string, values json.RawMessage) (*model.AttributeGroup, error) {
	args := m.Called(ctx, name, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AttributeGroup), args.Error(1)
}

func (m *MockAttributeGroupService) List(ctx context.Context, search string) ([]model.AttributeGroup, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AttributeGroup), args.Error(1)
}

func (m *MockAttributeGroupService) Update(ctx context.Context, id string, in service.UpdateAttributeGroupInput) (*model.AttributeGroup, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AttributeGroup), args.Error(1)
}

func (m *MockAttributeGroupService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
