package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/devdesk/queue-api/internal/observability"
	apperrors "github.com/devdesk/queue-api/pkg/util"
)

func TestErrorResponseWriteFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	app := fiber.New()
	RegisterMiddlewares(app, zap.New(core), observability.NewMetrics("test"), MiddlewareConfig{AllowedOrigins: "*"})
	app.Get("/broken", func(c *fiber.Ctx) error {
		return apperrors.NewValidationError("bad input", map[string]any{"value": func() {}})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/broken", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	entries := logs.FilterMessage("failed to write error response").All()
	if len(entries) != 1 {
		t.Fatalf("warn entries = %d, want 1", len(entries))
	}
	if route := entries[0].ContextMap()["route"]; route != "/broken" {
		t.Fatalf("route field = %v", route)
	}
}
