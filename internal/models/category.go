package model

import "time"

type Category struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"size:50;not null"`
	Description  string    `gorm:"size:200"`
	Color        string    `gorm:"size:7"`
	DisplayOrder int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// CategoryInput carries the caller-mutable fields of a category.
type CategoryInput struct {
	Name         string
	Description  string
	Color        string
	DisplayOrder int
}
