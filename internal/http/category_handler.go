package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-manager.com/task-manager/internal/data_models"
	apperrors "task-manager.com/task-manager/internal/errors"
	"task-manager.com/task-manager/internal/flash"
	"task-manager.com/task-manager/internal/http/validators"
	model "task-manager.com/task-manager/internal/models"
)

type categoryListView struct {
	Categories []model.Category
}

type categoryFormView struct {
	ID     int64
	Action string
	Form   dto.CategoryForm
	Errors map[string]string
}

func (h *Handler) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}

	return h.render(c, http.StatusOK, "category_list", "Categories", categoryListView{Categories: categories})
}

func (h *Handler) NewCategory(c echo.Context) error {
	return h.renderCategoryForm(c, http.StatusOK, 0, dto.NewCategoryForm(), nil)
}

func (h *Handler) EditCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	category, err := h.categoryService.GetCategory(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return h.renderCategoryForm(c, http.StatusOK, id, dto.CategoryFormFromModel(*category), nil)
}

func (h *Handler) CreateCategory(c echo.Context) error {
	var form dto.CategoryForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderCategoryForm(c, http.StatusUnprocessableEntity, 0, form, validators.FieldErrors(err))
	}

	input, err := form.ToInput()
	if err != nil {
		return err
	}

	if _, err := h.categoryService.CreateCategory(c.Request().Context(), input); err != nil {
		return err
	}

	h.pushFlash(c, flash.Success("Category created"))
	return h.redirect(c, "/categories")
}

func (h *Handler) UpdateCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var form dto.CategoryForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderCategoryForm(c, http.StatusUnprocessableEntity, id, form, validators.FieldErrors(err))
	}

	input, err := form.ToInput()
	if err != nil {
		return err
	}

	if _, err := h.categoryService.UpdateCategory(c.Request().Context(), id, input); err != nil {
		return err
	}

	h.pushFlash(c, flash.Success("Category updated"))
	return h.redirect(c, "/categories")
}

func (h *Handler) DeleteCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	err = h.categoryService.DeleteCategory(c.Request().Context(), id)
	if err != nil {
		var inUse *apperrors.CategoryInUseError
		if errors.As(err, &inUse) {
			h.pushFlash(c, flash.Error(inUse.Error()))
			return h.redirect(c, "/categories")
		}
		return err
	}

	h.pushFlash(c, flash.Success("Category deleted"))
	return h.redirect(c, "/categories")
}

func (h *Handler) renderCategoryForm(c echo.Context, status int, id int64, form dto.CategoryForm, errs map[string]string) error {
	title, action := "New Category", "/categories"
	if id > 0 {
		title, action = "Edit Category", fmt.Sprintf("/categories/%d", id)
	}

	return h.render(c, status, "category_form", title, categoryFormView{
		ID:     id,
		Action: action,
		Form:   form,
		Errors: errs,
	})
}
