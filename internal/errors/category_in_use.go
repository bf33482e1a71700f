package errors

import (
	"errors"
	"fmt"
)

var ErrCategoryInUse = errors.New("category in use")

// CategoryInUseError rejects deleting a category that tasks still reference.
type CategoryInUseError struct {
	ID        int64
	TaskCount int64
}

func NewCategoryInUse(id, taskCount int64) *CategoryInUseError {
	return &CategoryInUseError{ID: id, TaskCount: taskCount}
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("category %d is used by %d task(s) and cannot be deleted", e.ID, e.TaskCount)
}

func (e *CategoryInUseError) Unwrap() error {
	return ErrCategoryInUse
}
