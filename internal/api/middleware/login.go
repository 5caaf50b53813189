package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/ryzetech/lifestyle-api/internal/api/handler"
	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/core/ports"
)

// RequireLogin rejects sessions that have not logged in. It must run after
// Session.
func RequireLogin(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, _ := c.Get(handler.SessionIDKey).(string)
			snap, err := sessions.Snapshot(c.Request().Context(), sid)
			if err != nil {
				return err
			}
			if !snap.Account.Authenticated {
				return domain.ErrNotAuthenticated
			}
			return next(c)
		}
	}
}
