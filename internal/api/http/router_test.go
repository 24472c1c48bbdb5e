package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/kayako-bot/internal/api/http/handlers"
	"github.com/spec-kit/kayako-bot/internal/auth"
	"github.com/spec-kit/kayako-bot/internal/dispatch"
	"github.com/spec-kit/kayako-bot/internal/observability"
	"github.com/spec-kit/kayako-bot/internal/persistence"
	"github.com/spec-kit/kayako-bot/internal/plugin"
)

type constSource struct{}

func (constSource) Uint16() uint16 { return 99 }

type failingStore struct{ persistence.PluginConfigStore }

func (failingStore) Ping(context.Context) error { return errors.New("down") }

type testApp struct {
	app     *fiber.App
	tokens  *auth.TokenManager
	metrics *observability.Metrics
}

func newTestApp(t *testing.T, store persistence.PluginConfigStore) *testApp {
	t.Helper()
	api := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if r.URL.Query().Get("e") != "/Tickets/Ticket/9182" {
			stdhttp.Error(w, "no such ticket", stdhttp.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`<tickets><ticket id="55"><subject>Cannot log in</subject></ticket></tickets>`))
	}))
	t.Cleanup(api.Close)

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	dispatcher := dispatch.NewDispatcher(dispatch.NewTemplates(), logger)
	kayako := plugin.NewKayako(logger, plugin.Options{Random: constSource{}, Metrics: metrics})
	if err := dispatcher.Load(kayako, map[string]string{
		plugin.KeyAPIKey:    "key",
		plugin.KeySecretKey: "secret",
		plugin.KeyBaseURL:   api.URL,
	}); err != nil {
		t.Fatalf("Load: %v", err)
	}

	tokens := auth.NewTokenManager("host-secret", 5)
	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("kayako-bot", "test", store),
		Messages:       handlers.NewMessagesHandler(dispatcher),
		Metrics:        handlers.NewMetricsHandler(metrics),
		HostMiddleware: auth.NewHostMiddleware(tokens),
	})
	return &testApp{app: app, tokens: tokens, metrics: metrics}
}

func (a *testApp) do(t *testing.T, method, path, body string, authorized bool) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		token, _, err := a.tokens.GenerateToken("test-host")
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return resp.StatusCode, out
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestMessagesRequiresToken(t *testing.T) {
	a := newTestApp(t, persistence.NewMemoryStore())
	status, body := a.do(t, "POST", "/v1/messages", `{"text":"kayako 9182"}`, false)
	if status != stdhttp.StatusUnauthorized || errorCode(body) != "UNAUTHORIZED" {
		t.Fatalf("got %d %v", status, body)
	}
}

func TestMessagesReplyWithSummary(t *testing.T) {
	a := newTestApp(t, persistence.NewMemoryStore())
	status, body := a.do(t, "POST", "/v1/messages", `{"id":"m-1","channel":"#support","text":"anyone on kayako 9182?"}`, true)
	if status != stdhttp.StatusOK {
		t.Fatalf("status %d: %v", status, body)
	}
	data := body["data"].(map[string]any)
	if data["message_id"] != "m-1" {
		t.Errorf("message_id = %v", data["message_id"])
	}
	replies := data["replies"].([]any)
	if len(replies) != 1 {
		t.Fatalf("replies = %v", replies)
	}
	md := replies[0].(map[string]any)["markdown"].(string)
	if !strings.HasPrefix(md, "[9182](") || !strings.HasSuffix(md, "/Tickets/Ticket/View/55): Cannot log in") {
		t.Errorf("markdown = %q", md)
	}
}

func TestMessagesSilentForUnknownTicket(t *testing.T) {
	a := newTestApp(t, persistence.NewMemoryStore())
	status, body := a.do(t, "POST", "/v1/messages", `{"text":"kayako 9999"}`, true)
	if status != stdhttp.StatusOK {
		t.Fatalf("status %d: %v", status, body)
	}
	replies := body["data"].(map[string]any)["replies"].([]any)
	if len(replies) != 0 {
		t.Errorf("expected no replies, got %v", replies)
	}
	if a.metrics.Snapshot().Lookups[observability.OutcomeNotFound] != 1 {
		t.Error("expected not_found lookup to be counted")
	}
}

func TestMessagesValidation(t *testing.T) {
	a := newTestApp(t, persistence.NewMemoryStore())
	status, body := a.do(t, "POST", "/v1/messages", `{"text":"   "}`, true)
	if status != stdhttp.StatusBadRequest || errorCode(body) != "VALIDATION_FAILED" {
		t.Fatalf("got %d %v", status, body)
	}
}

func TestHealth(t *testing.T) {
	a := newTestApp(t, persistence.NewMemoryStore())
	if status, body := a.do(t, "GET", "/health/live", "", false); status != stdhttp.StatusOK || body["status"] != "alive" {
		t.Errorf("live: %d %v", status, body)
	}
	if status, body := a.do(t, "GET", "/health/ready", "", false); status != stdhttp.StatusOK || body["status"] != "ready" {
		t.Errorf("ready: %d %v", status, body)
	}

	down := newTestApp(t, failingStore{})
	status, body := down.do(t, "GET", "/health/ready", "", false)
	if status != stdhttp.StatusServiceUnavailable || errorCode(body) != "DEPENDENCY_UNAVAILABLE" {
		t.Errorf("ready with failing store: %d %v", status, body)
	}
}

func TestUnknownRoute(t *testing.T) {
	a := newTestApp(t, persistence.NewMemoryStore())
	status, body := a.do(t, "GET", "/nope", "", false)
	if status != stdhttp.StatusNotFound || errorCode(body) != "NOT_FOUND" {
		t.Errorf("got %d %v", status, body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestApp(t, persistence.NewMemoryStore())
	a.do(t, "POST", "/v1/messages", `{"text":"kayako 9182"}`, true)
	status, body := a.do(t, "GET", "/metrics", "", false)
	if status != stdhttp.StatusOK {
		t.Fatalf("status %d", status)
	}
	lookups := body["data"].(map[string]any)["lookups"].(map[string]any)
	if lookups["found"] != float64(1) {
		t.Errorf("lookups = %v", lookups)
	}
}
