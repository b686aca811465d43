package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pimapi/internal/model"
	"pimapi/internal/repository"
	repoMocks "pimapi/internal/repository/mocks"
)

func TestFamilyService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		famName    string
		groupIDs   []string
		setupMocks func(mRepo *repoMocks.MockFamilyRepository, mAttr *repoMocks.MockAttributeGroupRepository)
		wantErr    error
		wantGroups int
	}{
		{
			name:     "happy path resolves and associates groups",
			famName:  "shoes",
			groupIDs: []string{"ag-1", "ag-2"},
			setupMocks: func(mRepo *repoMocks.MockFamilyRepository, mAttr *repoMocks.MockAttributeGroupRepository) {
				mRepo.On("ExistsByName", ctx, "shoes").Return(false, nil)
				mAttr.On("FindByIDs", ctx, []string{"ag-1", "ag-2"}).Return([]model.AttributeGroup{
					{ID: "ag-1", Name: "size"},
					{ID: "ag-2", Name: "color"},
				}, nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(f *model.ProductFamily) bool {
					return f.Name == "shoes" && f.ID != ""
				}), []string{"ag-1", "ag-2"}).Return(&model.ProductFamily{ID: "fam-1", Name: "shoes"}, nil)
			},
			wantGroups: 2,
		},
		{
			name:     "unknown ids silently skipped",
			famName:  "shoes",
			groupIDs: []string{"ag-1", "missing"},
			setupMocks: func(mRepo *repoMocks.MockFamilyRepository, mAttr *repoMocks.MockAttributeGroupRepository) {
				mRepo.On("ExistsByName", ctx, "shoes").Return(false, nil)
				mAttr.On("FindByIDs", ctx, []string{"ag-1", "missing"}).Return([]model.AttributeGroup{
					{ID: "ag-1", Name: "size"},
				}, nil)
				mRepo.On("Create", ctx, mock.Anything, []string{"ag-1"}).
					Return(&model.ProductFamily{ID: "fam-1", Name: "shoes"}, nil)
			},
			wantGroups: 1,
		},
		{
			name:    "duplicate name conflicts",
			famName: "shoes",
			setupMocks: func(mRepo *repoMocks.MockFamilyRepository, mAttr *repoMocks.MockAttributeGroupRepository) {
				mRepo.On("ExistsByName", ctx, "shoes").Return(true, nil)
			},
			wantErr: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockFamilyRepository)
			mAttr := new(repoMocks.MockAttributeGroupRepository)
			tt.setupMocks(mRepo, mAttr)

			svc := NewFamilyService(mRepo, mAttr)
			out, err := svc.Create(ctx, tt.famName, tt.groupIDs)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Len(t, out.AttributeGroups, tt.wantGroups)
			}
			mRepo.AssertExpectations(t)
			mAttr.AssertExpectations(t)
		})
	}
}

func TestFamilyService_Update_ReplacesResolvedSet(t *testing.T) {
	ctx := context.Background()

	mRepo := new(repoMocks.MockFamilyRepository)
	mAttr := new(repoMocks.MockAttributeGroupRepository)

	mRepo.On("FindByID", ctx, "fam-1").Return(&model.ProductFamily{ID: "fam-1", Name: "shoes"}, nil)
	mAttr.On("FindByIDs", ctx, []string{"ag-2", "ag-3"}).Return([]model.AttributeGroup{
		{ID: "ag-2"}, {ID: "ag-3"},
	}, nil)
	mRepo.On("ReplaceAttributes", ctx, "fam-1", []string{"ag-2", "ag-3"}).Return(nil)
	mRepo.On("ListEffectiveAttributes", ctx, "fam-1").Return([]model.AttributeGroup{
		{ID: "ag-2"}, {ID: "ag-3"},
	}, nil)

	svc := NewFamilyService(mRepo, mAttr)
	out, err := svc.Update(ctx, "fam-1", UpdateFamilyInput{AttributeGroupIDs: []string{"ag-2", "ag-3"}})

	require.NoError(t, err)
	assert.Equal(t, []string{"ag-2", "ag-3"}, []string{out.AttributeGroups[0].ID, out.AttributeGroups[1].ID})
	mRepo.AssertExpectations(t)
	mAttr.AssertExpectations(t)
}

func TestFamilyService_Update_EmptyResolvedSetIsNoOp(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		groupIDs []string
		setup    func(mAttr *repoMocks.MockAttributeGroupRepository)
	}{
		{
			name:     "no ids supplied",
			groupIDs: nil,
			setup:    func(mAttr *repoMocks.MockAttributeGroupRepository) {},
		},
		{
			name:     "all ids unknown",
			groupIDs: []string{"missing-1", "missing-2"},
			setup: func(mAttr *repoMocks.MockAttributeGroupRepository) {
				mAttr.On("FindByIDs", ctx, []string{"missing-1", "missing-2"}).
					Return([]model.AttributeGroup{}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockFamilyRepository)
			mAttr := new(repoMocks.MockAttributeGroupRepository)
			tt.setup(mAttr)

			existing := []model.AttributeGroup{{ID: "ag-1", Name: "size"}}
			mRepo.On("FindByID", ctx, "fam-1").Return(&model.ProductFamily{ID: "fam-1", Name: "shoes"}, nil)
			mRepo.On("ListEffectiveAttributes", ctx, "fam-1").Return(existing, nil)

			svc := NewFamilyService(mRepo, mAttr)
			out, err := svc.Update(ctx, "fam-1", UpdateFamilyInput{AttributeGroupIDs: tt.groupIDs})

			require.NoError(t, err)
			assert.Equal(t, existing, out.AttributeGroups)
			mRepo.AssertNotCalled(t, "ReplaceAttributes", mock.Anything, mock.Anything, mock.Anything)
			mRepo.AssertExpectations(t)
			mAttr.AssertExpectations(t)
		})
	}
}

func TestFamilyService_Update_RenameConflict(t *testing.T) {
	ctx := context.Background()

	mRepo := new(repoMocks.MockFamilyRepository)
	mAttr := new(repoMocks.MockAttributeGroupRepository)

	name := "boots"
	mRepo.On("UpdateName", ctx, "fam-1", "boots").Return(nil, repository.ErrDuplicate)

	svc := NewFamilyService(mRepo, mAttr)
	_, err := svc.Update(ctx, "fam-1", UpdateFamilyInput{Name: &name})

	assert.ErrorIs(t, err, ErrConflict)
	mRepo.AssertExpectations(t)
}

func TestFamilyService_Attributes_UnknownFamily(t *testing.T) {
	ctx := context.Background()

	mRepo := new(repoMocks.MockFamilyRepository)
	mAttr := new(repoMocks.MockAttributeGroupRepository)
	mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

	svc := NewFamilyService(mRepo, mAttr)
	_, err := svc.Attributes(ctx, "missing")

	assert.ErrorIs(t, err, ErrNotFound)
	mRepo.AssertNotCalled(t, "ListEffectiveAttributes", mock.Anything, mock.Anything)
}
