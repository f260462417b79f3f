package workspaces_repositories

import (
	"context"
	"errors"

	workspaces_errors "teamspace/internal/features/workspaces/errors"
	workspaces_models "teamspace/internal/features/workspaces/models"

	"gorm.io/gorm"
)

type WorkspaceRepository struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

func (r *WorkspaceRepository) GetWorkspaceBySlug(
	ctx context.Context,
	slug string,
) (*workspaces_models.Workspace, error) {
	var workspace workspaces_models.Workspace

	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workspaces_errors.ErrWorkspaceNotFound
		}

		return nil, workspaces_errors.WrapStoreError("get workspace", err)
	}

	return &workspace, nil
}
