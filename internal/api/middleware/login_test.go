package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ryzetech/lifestyle-api/internal/api/handler"
	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/core/ports"
	"github.com/ryzetech/lifestyle-api/internal/core/session"
)

type stubSnapshots struct {
	ports.SessionService
	authenticated bool
}

func (s stubSnapshots) Snapshot(_ context.Context, sid string) (session.Snapshot, error) {
	if sid == "" {
		return session.Snapshot{}, domain.ErrSessionNotFound
	}
	return session.Snapshot{ID: sid, Account: domain.Account{Authenticated: s.authenticated}}, nil
}

func runRequireLogin(t *testing.T, svc ports.SessionService, sid string) (bool, error) {
	t.Helper()
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if sid != "" {
		c.Set(handler.SessionIDKey, sid)
	}
	called := false
	err := RequireLogin(svc)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return called, err
}

func TestRequireLogin_Allowed(t *testing.T) {
	called, err := runRequireLogin(t, stubSnapshots{authenticated: true}, "s1")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireLogin_Anonymous(t *testing.T) {
	called, err := runRequireLogin(t, stubSnapshots{}, "s1")
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if called {
		t.Fatalf("next must not be called")
	}
}

func TestRequireLogin_UnknownSession(t *testing.T) {
	_, err := runRequireLogin(t, stubSnapshots{authenticated: true}, "")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
