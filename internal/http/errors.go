package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "task-manager.com/task-manager/internal/errors"
)

type errorView struct {
	Status  int
	Heading string
	Message string
}

// HandleError is the echo HTTPErrorHandler. Missing records and routes
// render the 404 page, boundary exceptions keep their own status and any
// other failure is logged and rendered as a generic 500 page.
func (h *Handler) HandleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := h.describeError(c, err)

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}

	view := errorView{
		Status:  status,
		Heading: http.StatusText(status),
		Message: message,
	}
	if renderErr := c.Render(status, "error", pageData{Title: view.Heading, Content: view}); renderErr != nil {
		h.logger.ErrorContext(c.Request().Context(), "failed to render error page", "error", renderErr)
		_ = c.String(status, message)
	}
}

func (h *Handler) describeError(c echo.Context, err error) (int, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code == http.StatusNotFound {
			return http.StatusNotFound, "The page you requested does not exist."
		}
		if httpErr.Code >= http.StatusInternalServerError {
			h.logger.ErrorContext(c.Request().Context(), "request failed", "error", err)
			return httpErr.Code, "Something went wrong. Please try again later."
		}
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	}

	status := apperrors.StatusCode(err)
	switch {
	case status == http.StatusNotFound:
		var nf *apperrors.NotFoundError
		if errors.As(err, &nf) {
			return status, capitalize(nf.Error())
		}
		return status, "The requested record does not exist."
	case status >= http.StatusInternalServerError:
		h.logger.ErrorContext(c.Request().Context(), "request failed",
			"error", err,
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
		)
		return http.StatusInternalServerError, "Something went wrong. Please try again later."
	default:
		return status, err.Error()
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
