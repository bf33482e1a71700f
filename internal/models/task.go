package model

import (
	"time"

	"task-manager.com/task-manager/internal/constants"
)

type Task struct {
	ID          int64                  `gorm:"primaryKey;autoIncrement"`
	Title       string                 `gorm:"size:100;not null"`
	Description string                 `gorm:"size:1000"`
	Status      constants.TaskStatus   `gorm:"type:varchar(20);not null"`
	Priority    constants.TaskPriority `gorm:"type:varchar(20);not null"`
	CategoryID  *int64                 `gorm:"index"`
	DueDate     *time.Time             `gorm:"type:date"`
	CreatedAt   time.Time              `gorm:"not null"`
	UpdatedAt   time.Time              `gorm:"not null"`
}

// TaskDetail is a task joined with the display fields of its category.
// Both category fields are empty when the task has no category or the
// referenced category no longer exists.
type TaskDetail struct {
	Task
	CategoryName  string
	CategoryColor string
}

func (d TaskDetail) HasCategory() bool {
	return d.CategoryID != nil && d.CategoryName != ""
}

// TaskInput carries the caller-mutable fields of a task. Empty status or
// priority fall back to the defaults on create and update.
type TaskInput struct {
	Title       string
	Description string
	Status      constants.TaskStatus
	Priority    constants.TaskPriority
	CategoryID  *int64
	DueDate     *time.Time
}

// TaskFilter holds optional predicates; nil fields do not constrain.
type TaskFilter struct {
	Status     *constants.TaskStatus
	Priority   *constants.TaskPriority
	CategoryID *int64
}

func (f TaskFilter) IsEmpty() bool {
	return f.Status == nil && f.Priority == nil && f.CategoryID == nil
}
