package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/core/ports"
	"github.com/ryzetech/lifestyle-api/internal/core/session"
)

// stubSessionService implements the calls a test sets; anything else panics
// through the nil embedded interface.
type stubSessionService struct {
	ports.SessionService

	loginFn   func(ctx context.Context, sid, phone, password string) (session.Snapshot, error)
	confirmFn func(ctx context.Context, sid, intentID string) (*ports.ConfirmResult, error)
	searchFn  func(ctx context.Context, sid, query string) ([]domain.Document, error)
	uploadFn  func(ctx context.Context, sid string, in ports.UploadInput) (*ports.UploadResult, error)
	subFn     func(ctx context.Context, sid string, in ports.SubscriptionInput) (domain.PurchaseIntent, error)
	sendFn    func(ctx context.Context, sid, text string) (ports.Conversation, error)
}

func (s *stubSessionService) Login(ctx context.Context, sid, phone, password string) (session.Snapshot, error) {
	return s.loginFn(ctx, sid, phone, password)
}

func (s *stubSessionService) Confirm(ctx context.Context, sid, intentID string) (*ports.ConfirmResult, error) {
	return s.confirmFn(ctx, sid, intentID)
}

func (s *stubSessionService) SearchDocuments(ctx context.Context, sid, query string) ([]domain.Document, error) {
	return s.searchFn(ctx, sid, query)
}

func (s *stubSessionService) Upload(ctx context.Context, sid string, in ports.UploadInput) (*ports.UploadResult, error) {
	return s.uploadFn(ctx, sid, in)
}

func (s *stubSessionService) RequestSubscription(ctx context.Context, sid string, in ports.SubscriptionInput) (domain.PurchaseIntent, error) {
	return s.subFn(ctx, sid, in)
}

func (s *stubSessionService) SendTutorMessage(ctx context.Context, sid, text string) (ports.Conversation, error) {
	return s.sendFn(ctx, sid, text)
}

// newContext builds an echo context carrying sid, as the Session middleware would.
func newContext(t *testing.T, method, target, body, sid string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sid != "" {
		c.Set(SessionIDKey, sid)
	}
	return c, rec
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d", code, he.Code)
	}
}

