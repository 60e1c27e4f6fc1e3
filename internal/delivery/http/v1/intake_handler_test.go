package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-agency-backend/config"
	v1 "go-agency-backend/internal/delivery/http/v1"
	"go-agency-backend/internal/usecase"
	"go-agency-backend/pkg/email"
	"go-agency-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg email.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

type testServer struct {
	router *gin.Engine
	sender *MockSender
	logs   *observer.ObservedLogs
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.DebugLevel)
	audit := security.NewIntakeLogger(zap.New(core), "agency-intake", "test")
	sender := new(MockSender)

	cfg := &config.Config{FrontendURL: "https://agency.dev"}
	intakeUC := usecase.NewIntakeUsecase(sender, audit, usecase.IntakeConfig{
		From: "Agency Website <onboarding@resend.dev>",
		To:   "hello@agency.dev",
	}, usecase.ContactVariant(), usecase.PrototypeRequestVariant())

	router := v1.NewRouter(v1.RouterDeps{
		IntakeUC: intakeUC,
		HealthUC: usecase.NewHealthUsecase("resend", sender),
		Audit:    audit,
		Config:   cfg,
	})
	return &testServer{router: router, sender: sender, logs: logs}
}

func (s *testServer) post(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSubmitContact(t *testing.T) {
	t.Run("Should reject a payload missing message with 400", func(t *testing.T) {
		s := newTestServer(t)

		w := s.post("/submit/contact", `{"name":"A","email":"a@b.com"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Missing required fields", body["error"])
		assert.NotContains(t, body, "id")
		s.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Should return 500 and log when the provider fails", func(t *testing.T) {
		s := newTestServer(t)
		s.sender.On("Send", mock.Anything, mock.Anything).
			Return("", &email.ProviderError{Provider: "resend", StatusCode: 500, Name: "internal_server_error", Detail: "upstream down"}).Once()

		w := s.post("/submit/contact", `{"name":"Jane Doe","email":"jane@example.com","company":"Acme","message":"Please build us a site"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Failed to send email", body["error"])
		assert.NotContains(t, w.Body.String(), "upstream down")

		entries := s.logs.FilterMessage(string(security.EventDeliveryFailed)).All()
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].ContextMap()["details"], "upstream down")
		assert.Equal(t, w.Header().Get("X-Request-ID"), entries[0].ContextMap()["request_id"])
	})

	t.Run("Should return 200 with the provider id", func(t *testing.T) {
		s := newTestServer(t)
		s.sender.On("Send", mock.Anything, mock.Anything).Return("abc123", nil).Once()

		w := s.post("/submit/contact", `{"name":"Jane Doe","email":"jane@example.com","message":"Please build us a site","projectType":"web"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Email sent successfully", body["message"])
		assert.Equal(t, "abc123", body["id"])
		assert.NotContains(t, body, "error")
	})

	t.Run("Should convert malformed JSON into a generic 500", func(t *testing.T) {
		s := newTestServer(t)

		w := s.post("/submit/contact", `{"name":`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error", decode(t, w)["error"])
		s.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Should convert a panic into a generic 500", func(t *testing.T) {
		s := newTestServer(t)
		s.sender.On("Send", mock.Anything, mock.Anything).Panic("nil map write").Once()

		w := s.post("/submit/contact", `{"name":"Jane Doe","email":"jane@example.com","message":"Please build us a site"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error", decode(t, w)["error"])
		assert.NotContains(t, w.Body.String(), "nil map write")
		assert.Equal(t, 1, s.logs.FilterMessage(string(security.EventRequestFailed)).Len())
	})
}

func TestSubmitPrototypeRequest(t *testing.T) {
	t.Run("Should accept name and email only", func(t *testing.T) {
		s := newTestServer(t)
		s.sender.On("Send", mock.Anything, mock.Anything).Return("proto-9", nil).Once()

		w := s.post("/submit/prototype-request", `{"name":"Sam","email":"sam@example.com","source":"hero-cta"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "proto-9", decode(t, w)["id"])
	})

	t.Run("Should reject a missing name", func(t *testing.T) {
		s := newTestServer(t)

		w := s.post("/submit/prototype-request", `{"email":"sam@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required fields", decode(t, w)["error"])
	})
}

func TestRouterMiddleware(t *testing.T) {
	s := newTestServer(t)

	t.Run("Should answer CORS preflight for the frontend origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/submit/contact", nil)
		req.Header.Set("Origin", "https://agency.dev")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://agency.dev", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Should not allow unknown origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/submit/contact", nil)
		req.Header.Set("Origin", "https://evil.example")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Should reuse a valid incoming request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-ID", "3f1c2f8e-6f0c-4c8e-9d8e-0b7a4f1d2c3b")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "3f1c2f8e-6f0c-4c8e-9d8e-0b7a4f1d2c3b", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "ok", decode(t, w)["status"])
	})

	t.Run("Should set security headers on submit routes", func(t *testing.T) {
		w := s.post("/submit/contact", `{}`)
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	})
}
