package services

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "task-manager.com/task-manager/internal/errors"
	model "task-manager.com/task-manager/internal/models"
	repository "task-manager.com/task-manager/internal/repositories"
)

type CategoryService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewCategoryService(store repository.Store, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		store:  store,
		logger: logger.With("service", "category"),
	}
}

// ListCategories returns every category ordered by display order, then name.
func (s *CategoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	s.logger.DebugContext(ctx, "listing categories")

	categories, err := s.store.Categories().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	s.logger.DebugContext(ctx, "getting category", "id", id)
	return s.store.Categories().FindByID(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, input model.CategoryInput) (*model.Category, error) {
	category := &model.Category{
		Name:         input.Name,
		Description:  input.Description,
		Color:        input.Color,
		DisplayOrder: input.DisplayOrder,
	}

	if err := s.store.Categories().Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.logger.InfoContext(ctx, "category created", "id", category.ID)
	return category, nil
}

// UpdateCategory overwrites the mutable fields of an existing category and
// returns the stored record.
func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, input model.CategoryInput) (*model.Category, error) {
	var updated *model.Category

	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		category, err := repos.Categories().FindByID(ctx, id)
		if err != nil {
			return err
		}

		category.Name = input.Name
		category.Description = input.Description
		category.Color = input.Color
		category.DisplayOrder = input.DisplayOrder

		if err := repos.Categories().Update(ctx, category); err != nil {
			return err
		}

		updated, err = repos.Categories().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update category %d: %w", id, err)
	}

	s.logger.InfoContext(ctx, "category updated", "id", id)
	return updated, nil
}

// DeleteCategory removes a category that no task references. The count and
// the delete share one transaction.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Categories().FindByID(ctx, id); err != nil {
			return err
		}

		count, err := repos.Categories().CountTasks(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			s.logger.WarnContext(ctx, "category still referenced by tasks", "id", id, "tasks", count)
			return apperrors.NewCategoryInUse(id, count)
		}

		return repos.Categories().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}

	s.logger.InfoContext(ctx, "category deleted", "id", id)
	return nil
}
