package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"task-manager.com/task-manager/internal/flash"
)

const flashCookieName = "flash_id"

func flashSessionID(c echo.Context) string {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return ""
	}
	return cookie.Value
}

func (h *Handler) pushFlash(c echo.Context, msg flash.Message) {
	id := flashSessionID(c)
	if id == "" {
		id = uuid.NewString()
		c.SetCookie(&http.Cookie{
			Name:     flashCookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	if err := h.flashes.Push(c.Request().Context(), id, msg); err != nil {
		h.logger.WarnContext(c.Request().Context(), "failed to store flash message", "error", err)
	}
}

func (h *Handler) popFlashes(c echo.Context) []flash.Message {
	id := flashSessionID(c)
	if id == "" {
		return nil
	}

	messages, err := h.flashes.Pop(c.Request().Context(), id)
	if err != nil {
		h.logger.WarnContext(c.Request().Context(), "failed to read flash messages", "error", err)
		return nil
	}
	return messages
}
