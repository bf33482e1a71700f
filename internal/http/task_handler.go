package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"task-manager.com/task-manager/internal/constants"
	dto "task-manager.com/task-manager/internal/data_models"
	apperrors "task-manager.com/task-manager/internal/errors"
	"task-manager.com/task-manager/internal/flash"
	"task-manager.com/task-manager/internal/http/validators"
	model "task-manager.com/task-manager/internal/models"
)

type taskFilterView struct {
	Status     string
	Priority   string
	CategoryID string
}

type taskListView struct {
	Tasks      []model.TaskDetail
	Categories []model.Category
	Statuses   []constants.TaskStatus
	Priorities []constants.TaskPriority
	Filter     taskFilterView
}

type taskDetailView struct {
	Task *model.TaskDetail
}

type taskFormView struct {
	ID         int64
	Action     string
	Form       dto.TaskForm
	Errors     map[string]string
	Categories []model.Category
	Statuses   []constants.TaskStatus
	Priorities []constants.TaskPriority
}

func parseTaskFilter(c echo.Context) (model.TaskFilter, taskFilterView, error) {
	view := taskFilterView{
		Status:     c.QueryParam("status"),
		Priority:   c.QueryParam("priority"),
		CategoryID: c.QueryParam("categoryId"),
	}

	var filter model.TaskFilter
	if view.Status != "" {
		status := constants.TaskStatus(view.Status)
		if !status.Valid() {
			return filter, view, apperrors.ErrInvalidFilter
		}
		filter.Status = &status
	}
	if view.Priority != "" {
		priority := constants.TaskPriority(view.Priority)
		if !priority.Valid() {
			return filter, view, apperrors.ErrInvalidFilter
		}
		filter.Priority = &priority
	}
	if view.CategoryID != "" {
		id, err := strconv.ParseInt(view.CategoryID, 10, 64)
		if err != nil {
			return filter, view, apperrors.ErrInvalidFilter
		}
		filter.CategoryID = &id
	}

	return filter, view, nil
}

func (h *Handler) ListTasks(c echo.Context) error {
	ctx := c.Request().Context()

	filter, filterView, err := parseTaskFilter(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.FilterTasks(ctx, filter)
	if err != nil {
		return err
	}

	categories, err := h.categoryService.ListCategories(ctx)
	if err != nil {
		return err
	}

	return h.render(c, http.StatusOK, "task_list", "Tasks", taskListView{
		Tasks:      tasks,
		Categories: categories,
		Statuses:   constants.TaskStatuses,
		Priorities: constants.TaskPriorities,
		Filter:     filterView,
	})
}

func (h *Handler) ShowTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return h.render(c, http.StatusOK, "task_detail", task.Title, taskDetailView{Task: task})
}

func (h *Handler) NewTask(c echo.Context) error {
	return h.renderTaskForm(c, http.StatusOK, 0, dto.NewTaskForm(), nil)
}

func (h *Handler) EditTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return h.renderTaskForm(c, http.StatusOK, id, dto.TaskFormFromDetail(*task), nil)
}

func (h *Handler) CreateTask(c echo.Context) error {
	var form dto.TaskForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderTaskForm(c, http.StatusUnprocessableEntity, 0, form, validators.FieldErrors(err))
	}

	input, err := form.ToInput()
	if err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), input)
	if err != nil {
		return err
	}

	h.pushFlash(c, flash.Success("Task created"))
	return h.redirect(c, fmt.Sprintf("/tasks/%d", task.ID))
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var form dto.TaskForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderTaskForm(c, http.StatusUnprocessableEntity, id, form, validators.FieldErrors(err))
	}

	input, err := form.ToInput()
	if err != nil {
		return err
	}

	if _, err := h.taskService.UpdateTask(c.Request().Context(), id, input); err != nil {
		return err
	}

	h.pushFlash(c, flash.Success("Task updated"))
	return h.redirect(c, fmt.Sprintf("/tasks/%d", id))
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		return err
	}

	h.pushFlash(c, flash.Success("Task deleted"))
	return h.redirect(c, "/tasks")
}

func (h *Handler) renderTaskForm(c echo.Context, status int, id int64, form dto.TaskForm, errs map[string]string) error {
	categories, err := h.categoryService.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}

	title, action := "New Task", "/tasks"
	if id > 0 {
		title, action = "Edit Task", fmt.Sprintf("/tasks/%d", id)
	}

	return h.render(c, status, "task_form", title, taskFormView{
		ID:         id,
		Action:     action,
		Form:       form,
		Errors:     errs,
		Categories: categories,
		Statuses:   constants.TaskStatuses,
		Priorities: constants.TaskPriorities,
	})
}
