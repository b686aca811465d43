package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"pimapi/internal/model"
	"pimapi/internal/repository"
)

// UpdateAttributeGroupInput carries a partial update; nil fields are left
// unchanged.
type UpdateAttributeGroupInput struct {
	Name   *string
	Values json.RawMessage
}

// AttributeGroupService defines the use cases for attribute groups.
type AttributeGroupService interface {
	Create(ctx context.Context, name string, values json.RawMessage) (*model.AttributeGroup, error)

	// List returns live attribute groups, optionally filtered by a
	// case-insensitive name substring.
	List(ctx context.Context, search string) ([]model.AttributeGroup, error)

	Update(ctx context.Context, id string, in UpdateAttributeGroupInput) (*model.AttributeGroup, error)

	// Delete soft-deletes the group and retires its family associations.
	Delete(ctx context.Context, id string) error
}

type attributeGroupService struct {
	repo repository.AttributeGroupRepository
}

// NewAttributeGroupService constructs a new AttributeGroupService.
func NewAttributeGroupService(repo repository.AttributeGroupRepository) AttributeGroupService {
	return &attributeGroupService{repo: repo}
}

func (s *attributeGroupService) Create(ctx context.Context, name string, values json.RawMessage) (*model.AttributeGroup, error) {
	ag := &model.AttributeGroup{
		ID:        uuid.New().String(),
		Name:      name,
		Values:    values,
		CreatedAt: time.Now().UTC(),
	}
	out, err := s.repo.Create(ctx, ag)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return out, nil
}

func (s *attributeGroupService) List(ctx context.Context, search string) ([]model.AttributeGroup, error) {
	return s.repo.List(ctx, search)
}

func (s *attributeGroupService) Update(ctx context.Context, id string, in UpdateAttributeGroupInput) (*model.AttributeGroup, error) {
	out, err := s.repo.Update(ctx, id, repository.UpdateAttributeGroupParams{
		Name:   in.Name,
		Values: in.Values,
	})
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (s *attributeGroupService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
