package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "task-manager.com/task-manager/internal/errors"
)

// RateLimiter caps state-changing requests per client IP within a fixed
// window. GET, HEAD and OPTIONS pass through untouched.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	return rateLimiter(limit, window, time.Now)
}

func rateLimiter(limit int, window time.Duration, now func() time.Time) echo.MiddlewareFunc {
	type bucket struct {
		count int
		start time.Time
	}

	var (
		mu        sync.Mutex
		buckets   = make(map[string]*bucket)
		lastSweep = now()
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			ts := now()
			key := c.RealIP()

			mu.Lock()
			if ts.Sub(lastSweep) > window {
				for k, b := range buckets {
					if ts.Sub(b.start) > window {
						delete(buckets, k)
					}
				}
				lastSweep = ts
			}

			b, ok := buckets[key]
			if !ok || ts.Sub(b.start) > window {
				b = &bucket{start: ts}
				buckets[key] = b
			}

			if b.count >= limit {
				mu.Unlock()
				return apperrors.ErrRateLimited
			}

			b.count++
			mu.Unlock()

			return next(c)
		}
	}
}
