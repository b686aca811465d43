package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"pimapi/internal/model"
	"pimapi/internal/repository"
)

// FamilyWithAttributes is a family together with its effective attribute set:
// the attribute groups reachable via a live association whose target group is
// itself live.
type FamilyWithAttributes struct {
	model.ProductFamily
	AttributeGroups []model.AttributeGroup `json:"attribute_groups"`
}

// UpdateFamilyInput carries a partial update. Rename and attribute replacement
// are independent; either may be absent.
type UpdateFamilyInput struct {
	Name              *string
	AttributeGroupIDs []string
}

// FamilyService defines the use cases for product families and their
// attribute-group associations.
type FamilyService interface {
	// Create makes a new family and associates it with the given attribute
	// groups. Unknown or soft-deleted ids are silently skipped. Fails with
	// ErrConflict when a live family already uses the name.
	Create(ctx context.Context, name string, attributeGroupIDs []string) (*FamilyWithAttributes, error)

	// List returns live families with their effective attribute sets,
	// optionally filtered by a case-insensitive name substring.
	List(ctx context.Context, search string) ([]FamilyWithAttributes, error)

	// Attributes returns the effective attribute set of one family.
	Attributes(ctx context.Context, familyID string) ([]model.AttributeGroup, error)

	// Update renames the family if Name is set and replaces its attribute
	// set if AttributeGroupIDs resolves to at least one live group. A nil or
	// all-unknown id list leaves the existing associations intact.
	Update(ctx context.Context, id string, in UpdateFamilyInput) (*FamilyWithAttributes, error)

	// Delete soft-deletes the family and its live associations.
	Delete(ctx context.Context, id string) error
}

type familyService struct {
	repo     repository.FamilyRepository
	attrRepo repository.AttributeGroupRepository
}

// NewFamilyService constructs a new FamilyService.
func NewFamilyService(repo repository.FamilyRepository, attrRepo repository.AttributeGroupRepository) FamilyService {
	return &familyService{repo: repo, attrRepo: attrRepo}
}

// resolveAttributeGroups maps requested ids onto live attribute groups,
// dropping unknown and soft-deleted ids without error.
func (s *familyService) resolveAttributeGroups(ctx context.Context, ids []string) ([]model.AttributeGroup, []string, error) {
	groups, err := s.attrRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	resolved := make([]string, 0, len(groups))
	for _, g := range groups {
		resolved = append(resolved, g.ID)
	}
	return groups, resolved, nil
}

func (s *familyService) Create(ctx context.Context, name string, attributeGroupIDs []string) (*FamilyWithAttributes, error) {
	taken, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	groups, resolved, err := s.resolveAttributeGroups(ctx, attributeGroupIDs)
	if err != nil {
		return nil, err
	}

	family := &model.ProductFamily{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	out, err := s.repo.Create(ctx, family, resolved)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &FamilyWithAttributes{ProductFamily: *out, AttributeGroups: groups}, nil
}

func (s *familyService) List(ctx context.Context, search string) ([]FamilyWithAttributes, error) {
	families, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, err
	}

	out := make([]FamilyWithAttributes, 0, len(families))
	for _, f := range families {
		groups, err := s.repo.ListEffectiveAttributes(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, FamilyWithAttributes{ProductFamily: f, AttributeGroups: groups})
	}
	return out, nil
}

func (s *familyService) Attributes(ctx context.Context, familyID string) ([]model.AttributeGroup, error) {
	if _, err := s.repo.FindByID(ctx, familyID); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.repo.ListEffectiveAttributes(ctx, familyID)
}

func (s *familyService) Update(ctx context.Context, id string, in UpdateFamilyInput) (*FamilyWithAttributes, error) {
	var family *model.ProductFamily
	var err error

	if in.Name != nil {
		family, err = s.repo.UpdateName(ctx, id, *in.Name)
		if err != nil {
			if isNoRows(err) {
				return nil, ErrNotFound
			}
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, ErrConflict
			}
			return nil, err
		}
	} else {
		family, err = s.repo.FindByID(ctx, id)
		if err != nil {
			if isNoRows(err) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}

	if len(in.AttributeGroupIDs) > 0 {
		_, resolved, err := s.resolveAttributeGroups(ctx, in.AttributeGroupIDs)
		if err != nil {
			return nil, err
		}
		// An empty resolved set leaves the current associations untouched.
		if len(resolved) > 0 {
			if err := s.repo.ReplaceAttributes(ctx, id, resolved); err != nil {
				return nil, err
			}
		}
	}

	groups, err := s.repo.ListEffectiveAttributes(ctx, id)
	if err != nil {
		return nil, err
	}
	return &FamilyWithAttributes{ProductFamily: *family, AttributeGroups: groups}, nil
}

func (s *familyService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
