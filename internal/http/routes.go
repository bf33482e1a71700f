package http

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "task-manager.com/task-manager/internal/http/middlewares"
	"task-manager.com/task-manager/internal/http/validators"
)

// NewServer builds the echo instance with rendering, validation, error
// pages, request logging and every route registered.
func NewServer(h *Handler, renderer echo.Renderer, logger *slog.Logger, rateLimitPerMinute int) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = validators.New()
	e.HTTPErrorHandler = h.HandleError

	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= 500 {
					level = slog.LevelError
				}
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	}))

	Register(e, h, rateLimitPerMinute)
	return e
}

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/", h.Home)
	e.GET("/healthz", h.Health)

	e.GET("/tasks", h.ListTasks)
	e.GET("/tasks/new", h.NewTask)
	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks/:id", h.ShowTask)
	e.GET("/tasks/:id/edit", h.EditTask)
	e.POST("/tasks/:id", h.UpdateTask)
	e.POST("/tasks/:id/delete", h.DeleteTask)

	e.GET("/categories", h.ListCategories)
	e.GET("/categories/new", h.NewCategory)
	e.POST("/categories", h.CreateCategory)
	e.GET("/categories/:id/edit", h.EditCategory)
	e.POST("/categories/:id", h.UpdateCategory)
	e.POST("/categories/:id/delete", h.DeleteCategory)
}
