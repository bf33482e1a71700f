package errors

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

const (
	EntityTask     = "task"
	EntityCategory = "category"
)

type NotFoundError struct {
	Entity string
	ID     int64
}

func NewNotFound(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
