package dto

import (
	"fmt"
	"strconv"
	"strings"

	"task-manager.com/task-manager/internal/constants"
	model "task-manager.com/task-manager/internal/models"
)

type CategoryForm struct {
	Name         string `form:"name" validate:"notblank,max=50"`
	Description  string `form:"description" validate:"max=200"`
	Color        string `form:"color" validate:"omitempty,colorcode"`
	DisplayOrder string `form:"displayOrder" validate:"omitempty,number,max=9"`
}

func NewCategoryForm() CategoryForm {
	return CategoryForm{
		Color:        constants.DefaultCategoryColor,
		DisplayOrder: "0",
	}
}

func CategoryFormFromModel(category model.Category) CategoryForm {
	return CategoryForm{
		Name:         category.Name,
		Description:  category.Description,
		Color:        category.Color,
		DisplayOrder: strconv.Itoa(category.DisplayOrder),
	}
}

// ToInput converts a validated form into service input. An empty display
// order is stored as 0.
func (f CategoryForm) ToInput() (model.CategoryInput, error) {
	input := model.CategoryInput{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Color:       f.Color,
	}

	if f.DisplayOrder != "" {
		order, err := strconv.Atoi(f.DisplayOrder)
		if err != nil {
			return model.CategoryInput{}, fmt.Errorf("displayOrder: %w", err)
		}
		input.DisplayOrder = order
	}

	return input, nil
}
