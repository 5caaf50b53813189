package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SessionIDKey is the echo context key the Session middleware stores the
// session id under.
const SessionIDKey = "session_id"

// sessionID returns the id injected by the Session middleware.
func sessionID(c echo.Context) (string, error) {
	id, _ := c.Get(SessionIDKey).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return id, nil
}

// bindAndValidate decodes the JSON body into req and validates it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
