package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ryzetech/lifestyle-api/internal/api/handler"
)

type stubTokens map[string]string

func (s stubTokens) ParseToken(token string) (string, error) {
	sid, ok := s[token]
	if !ok {
		return "", errors.New("bad token")
	}
	return sid, nil
}

func TestSessionMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Session(stubTokens{"good": "s1"})
	h := mw(func(c echo.Context) error {
		called = true
		if c.Get(handler.SessionIDKey) != "s1" {
			t.Fatalf("session id not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestSessionMiddleware_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic good",
		"unknown token":  "Bearer forged",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			h := Session(stubTokens{"good": "s1"})(func(echo.Context) error {
				t.Fatalf("next must not be called")
				return nil
			})

			err := h(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %v", err)
			}
		})
	}
}
