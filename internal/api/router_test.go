package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/core/ports"
	"github.com/ryzetech/lifestyle-api/internal/core/service"
	"github.com/ryzetech/lifestyle-api/internal/core/session"
	"github.com/ryzetech/lifestyle-api/internal/infrastructure/memory"
)

// rejectingDispatcher makes every generation fall back immediately.
type rejectingDispatcher struct{}

func (rejectingDispatcher) Enqueue(ports.GenerationJob) bool { return false }

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	auth, err := service.NewAuthService("01412345678", "12345", "test-secret", time.Hour)
	require.NoError(t, err)

	svc := service.NewSessionService(memory.NewSessionStore(), auth, rejectingDispatcher{}, nil, nil, service.SessionServiceOptions{
		Session: session.Config{
			Name:            "Jame",
			PhoneNumber:     "01412345678",
			Balances:        domain.Balances{Coins: 0, Cash: 100, DataGB: 1},
			NotificationTTL: time.Minute,
		},
		Mixer: domain.DefaultMixerRates,
	}, zerolog.Nop())

	reg := prometheus.NewRegistry()
	e := NewRouter(Deps{
		Sessions:   svc,
		Tokens:     auth,
		Registerer: reg,
		Gatherer:   reg,
		Log:        zerolog.Nop(),
	})
	return &testServer{t: t, e: e}
}

func (s *testServer) do(method, path, token, body string) (int, map[string]any) {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func (s *testServer) session() string {
	s.t.Helper()
	code, body := s.do(http.MethodPost, "/v1/sessions", "", "")
	require.Equal(s.t, http.StatusCreated, code)
	token, _ := body["token"].(string)
	require.NotEmpty(s.t, token)
	return token
}

func balances(t *testing.T, snapshot any) map[string]any {
	t.Helper()
	snap, ok := snapshot.(map[string]any)
	require.True(t, ok, "snapshot missing")
	account := snap["account"].(map[string]any)
	return account["balances"].(map[string]any)
}

func TestRouter_LoginFailureIs401(t *testing.T) {
	s := newTestServer(t)
	token := s.session()

	code, body := s.do(http.MethodPost, "/v1/auth/login", token, `{"phone_number":"01412345678","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid credentials", body["error"])

	code, body = s.do(http.MethodGet, "/v1/session", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["account"].(map[string]any)["authenticated"])
}

func TestRouter_MissingTokenIs401(t *testing.T) {
	s := newTestServer(t)
	code, _ := s.do(http.MethodGet, "/v1/session", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_AnonymousPurchaseNeedsLogin(t *testing.T) {
	s := newTestServer(t)
	token := s.session()

	code, body := s.do(http.MethodPost, "/v1/purchases/packages", token, `{"package_id":"p3"}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, true, body["login_required"])
}

func TestRouter_ConfirmFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.session()

	code, _ := s.do(http.MethodPost, "/v1/auth/login", token, `{"phone_number":"01412345678","password":"12345"}`)
	require.Equal(t, http.StatusOK, code)

	// STARTER costs 97 of the 100 cash.
	code, body := s.do(http.MethodPost, "/v1/purchases/packages", token, `{"package_id":"p3"}`)
	require.Equal(t, http.StatusAccepted, code)
	intentID := body["intent"].(map[string]any)["id"].(string)

	code, body = s.do(http.MethodGet, "/v1/confirmation", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, intentID, body["pending"].(map[string]any)["id"])

	code, body = s.do(http.MethodPost, "/v1/confirmation/confirm", token, `{"intent_id":"`+intentID+`"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["applied"])
	b := balances(t, body["session"])
	assert.EqualValues(t, 3, b["cash_balance"])
	assert.EqualValues(t, 7716, b["coin_balance"])
	assert.EqualValues(t, 8, b["data_quota_gb"])

	// A second confirm has nothing to resolve.
	code, _ = s.do(http.MethodPost, "/v1/confirmation/confirm", token, `{"intent_id":"`+intentID+`"}`)
	assert.Equal(t, http.StatusConflict, code)

	// BLAZE (197) is now unaffordable: 200 with applied=false and nothing changes.
	code, body = s.do(http.MethodPost, "/v1/purchases/packages", token, `{"package_id":"p2"}`)
	require.Equal(t, http.StatusAccepted, code)
	intentID = body["intent"].(map[string]any)["id"].(string)

	code, body = s.do(http.MethodPost, "/v1/confirmation/confirm", token, `{"intent_id":"`+intentID+`"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["applied"])
	assert.Equal(t, "cash", body["shortfall_currency"])
	assert.EqualValues(t, 194, body["shortfall"])
	assert.EqualValues(t, 3, balances(t, body["session"])["cash_balance"])
}

func TestRouter_UnknownPackageIs404(t *testing.T) {
	s := newTestServer(t)
	token := s.session()
	code, _ := s.do(http.MethodPost, "/v1/auth/login", token, `{"phone_number":"01412345678","password":"12345"}`)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodPost, "/v1/purchases/packages", token, `{"package_id":"nope"}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouter_QuoteValidation(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(http.MethodPost, "/v1/mixer/quote", "", `{"data_gb":10,"voice_minutes":100,"validity_days":7}`)
	require.Equal(t, http.StatusOK, code)
	assert.NotZero(t, body["price_bdt"])

	code, _ = s.do(http.MethodPost, "/v1/mixer/quote", "", `{"data_gb":10,"voice_minutes":100,"validity_days":90}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)
	code, body := s.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}
