package services

import (
	"context"
	"fmt"
	"log/slog"

	"task-manager.com/task-manager/internal/constants"
	model "task-manager.com/task-manager/internal/models"
	repository "task-manager.com/task-manager/internal/repositories"
)

type TaskService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewTaskService(store repository.Store, logger *slog.Logger) *TaskService {
	return &TaskService{
		store:  store,
		logger: logger.With("service", "task"),
	}
}

// ListTasks returns every task in creation order, enriched with its category.
func (s *TaskService) ListTasks(ctx context.Context) ([]model.TaskDetail, error) {
	return s.FilterTasks(ctx, model.TaskFilter{})
}

// FilterTasks returns the tasks matching every set predicate of filter.
func (s *TaskService) FilterTasks(ctx context.Context, filter model.TaskFilter) ([]model.TaskDetail, error) {
	s.logger.DebugContext(ctx, "listing tasks", "filtered", !filter.IsEmpty())

	tasks, err := s.store.Tasks().ListDetails(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (*model.TaskDetail, error) {
	s.logger.DebugContext(ctx, "getting task", "id", id)
	return s.store.Tasks().FindDetailByID(ctx, id)
}

func (s *TaskService) CreateTask(ctx context.Context, input model.TaskInput) (*model.TaskDetail, error) {
	task := &model.Task{}
	applyTaskInput(task, input)

	var created *model.TaskDetail
	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		if err := repos.Tasks().Create(ctx, task); err != nil {
			return err
		}

		var err error
		created, err = repos.Tasks().FindDetailByID(ctx, task.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.logger.InfoContext(ctx, "task created", "id", created.ID)
	return created, nil
}

// UpdateTask overwrites every mutable field of an existing task. A nil
// category or due date in input clears the stored value.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, input model.TaskInput) (*model.TaskDetail, error) {
	var updated *model.TaskDetail

	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		task, err := repos.Tasks().FindByID(ctx, id)
		if err != nil {
			return err
		}

		applyTaskInput(task, input)
		if err := repos.Tasks().Update(ctx, task); err != nil {
			return err
		}

		updated, err = repos.Tasks().FindDetailByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update task %d: %w", id, err)
	}

	s.logger.InfoContext(ctx, "task updated", "id", id)
	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Tasks().FindByID(ctx, id); err != nil {
			return err
		}
		return repos.Tasks().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}

	s.logger.InfoContext(ctx, "task deleted", "id", id)
	return nil
}

func applyTaskInput(task *model.Task, input model.TaskInput) {
	task.Title = input.Title
	task.Description = input.Description
	task.Status = input.Status
	task.Priority = input.Priority
	task.CategoryID = input.CategoryID
	task.DueDate = input.DueDate

	if task.Status == "" {
		task.Status = constants.DefaultStatus
	}
	if task.Priority == "" {
		task.Priority = constants.DefaultPriority
	}
}
