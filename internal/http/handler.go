package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "task-manager.com/task-manager/internal/errors"
	"task-manager.com/task-manager/internal/flash"
	"task-manager.com/task-manager/internal/services"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	taskService     *services.TaskService
	categoryService *services.CategoryService
	flashes         flash.Store
	health          HealthChecker
	logger          *slog.Logger
}

func NewHandler(
	taskService *services.TaskService,
	categoryService *services.CategoryService,
	flashes flash.Store,
	health HealthChecker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		taskService:     taskService,
		categoryService: categoryService,
		flashes:         flashes,
		health:          health,
		logger:          logger,
	}
}

type pageData struct {
	Title   string
	Flashes []flash.Message
	Content interface{}
}

func (h *Handler) render(c echo.Context, status int, page, title string, content interface{}) error {
	return c.Render(status, page, pageData{
		Title:   title,
		Flashes: h.popFlashes(c),
		Content: content,
	})
}

func (h *Handler) redirect(c echo.Context, location string) error {
	return c.Redirect(http.StatusSeeOther, location)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrInvalidID
	}
	return id, nil
}

func (h *Handler) Home(c echo.Context) error {
	return h.redirect(c, "/tasks")
}

func (h *Handler) Health(c echo.Context) error {
	if err := h.health.Ping(c.Request().Context()); err != nil {
		h.logger.ErrorContext(c.Request().Context(), "health check failed", "error", err)
		return c.String(http.StatusServiceUnavailable, "unavailable")
	}
	return c.String(http.StatusOK, "ok")
}
