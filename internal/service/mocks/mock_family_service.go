package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pimapi/internal/model"
	"pimapi/internal/service"
)

type MockFamilyService struct {
	mock.Mock
}

func (m *MockFamilyService) Create(ctx context.Context, name string, attributeGroupIDs []string) (*service.FamilyWithAttributes, error) {
	args := m.Called(ctx, name, attributeGroupIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FamilyWithAttributes), args.Error(1)
}

func (m *MockFamilyService) List(ctx context.Context, search string) ([]service.FamilyWithAttributes, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.FamilyWithAttributes), args.Error(1)
}

func (m *MockFamilyService) Attributes(ctx context.Context, familyID string) ([]model.AttributeGroup, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AttributeGroup), args.Error(1)
}

func (m *MockFamilyService) Update(ctx context.Context, id string, in service.UpdateFamilyInput) (*service.FamilyWithAttributes, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FamilyWithAttributes), args.Error(1)
}

func (m *MockFamilyService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
