package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"task-manager.com/task-manager/internal/constants"
	model "task-manager.com/task-manager/internal/models"
)

const DateLayout = "2006-01-02"

// TaskForm is the HTML form representation of a task. Every field is kept as
// submitted so an invalid form can be rendered back unchanged.
type TaskForm struct {
	Title       string `form:"title" validate:"notblank,max=100"`
	Description string `form:"description" validate:"max=1000"`
	Status      string `form:"status" validate:"required,oneof=TODO IN_PROGRESS DONE"`
	Priority    string `form:"priority" validate:"required,oneof=LOW MEDIUM HIGH"`
	CategoryID  string `form:"categoryId" validate:"omitempty,number,max=18"`
	DueDate     string `form:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

func NewTaskForm() TaskForm {
	return TaskForm{
		Status:   string(constants.DefaultStatus),
		Priority: string(constants.DefaultPriority),
	}
}

func TaskFormFromDetail(task model.TaskDetail) TaskForm {
	form := TaskForm{
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
	}
	if task.CategoryID != nil {
		form.CategoryID = strconv.FormatInt(*task.CategoryID, 10)
	}
	if task.DueDate != nil {
		form.DueDate = task.DueDate.Format(DateLayout)
	}
	return form
}

// ToInput converts a validated form into service input.
func (f TaskForm) ToInput() (model.TaskInput, error) {
	input := model.TaskInput{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Status:      constants.TaskStatus(f.Status),
		Priority:    constants.TaskPriority(f.Priority),
	}

	if f.CategoryID != "" {
		id, err := strconv.ParseInt(f.CategoryID, 10, 64)
		if err != nil {
			return model.TaskInput{}, fmt.Errorf("categoryId: %w", err)
		}
		input.CategoryID = &id
	}

	if f.DueDate != "" {
		due, err := time.ParseInLocation(DateLayout, f.DueDate, time.UTC)
		if err != nil {
			return model.TaskInput{}, fmt.Errorf("dueDate: %w", err)
		}
		input.DueDate = &due
	}

	return input, nil
}
