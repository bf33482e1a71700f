package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "task-manager.com/task-manager/internal/errors"
	model "task-manager.com/task-manager/internal/models"
)

type TaskRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Task, error)
	FindDetailByID(ctx context.Context, id int64) (*model.TaskDetail, error)
	ListDetails(ctx context.Context, filter model.TaskFilter) ([]model.TaskDetail, error)
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id int64) error
}

type TaskRepo struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound(apperrors.EntityTask, id)
		}
		return nil, err
	}
	return &task, nil
}

// detailQuery selects tasks joined with their category's name and color.
// Tasks pointing at a missing category still come back, with empty fields.
func (r *TaskRepo) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("tasks AS t").
		Select("t.*, COALESCE(c.name, '') AS category_name, COALESCE(c.color, '') AS category_color").
		Joins("LEFT JOIN categories AS c ON c.id = t.category_id")
}

func (r *TaskRepo) FindDetailByID(ctx context.Context, id int64) (*model.TaskDetail, error) {
	var detail model.TaskDetail
	res := r.detailQuery(ctx).Where("t.id = ?", id).Limit(1).Scan(&detail)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NewNotFound(apperrors.EntityTask, id)
	}
	return &detail, nil
}

func (r *TaskRepo) ListDetails(ctx context.Context, filter model.TaskFilter) ([]model.TaskDetail, error) {
	query := r.detailQuery(ctx)

	if filter.Status != nil {
		query = query.Where("t.status = ?", string(*filter.Status))
	}
	if filter.Priority != nil {
		query = query.Where("t.priority = ?", string(*filter.Priority))
	}
	if filter.CategoryID != nil {
		query = query.Where("t.category_id = ?", *filter.CategoryID)
	}

	details := []model.TaskDetail{}
	if err := query.Order("t.id asc").Scan(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

func (r *TaskRepo) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Update overwrites every mutable column; nil category or due date clear
// the stored value.
func (r *TaskRepo) Update(ctx context.Context, task *model.Task) error {
	now := time.Now().UTC()

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			"priority":    task.Priority,
			"category_id": task.CategoryID,
			"due_date":    task.DueDate,
			"updated_at":  now,
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return apperrors.NewNotFound(apperrors.EntityTask, task.ID)
	}

	task.UpdatedAt = now
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound(apperrors.EntityTask, id)
	}
	return nil
}
