package handlers_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"storefront/internal/http/handlers"
)

func errorApp() *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        html.New("../../web/templates", ".html"),
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(requestid.New())
	app.Get("/err", func(c *fiber.Ctx) error {
		return errors.New("db timeout: secret trace")
	})
	app.Get("/gone", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "row 42 missing in products_v2")
	})
	return app
}

func TestErrorHandlerFriendlyMessage(t *testing.T) {
	app := errorApp()

	var status int
	var s string
	logs := captureLogs(t, func() {
		resp, err := app.Test(httptest.NewRequest("GET", "/err", nil))
		if err != nil {
			t.Fatalf("test request failed: %v", err)
		}
		status = resp.StatusCode
		body, _ := io.ReadAll(resp.Body)
		s = string(body)
	})
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if !strings.Contains(s, "Something went wrong") {
		t.Fatalf("friendly message missing; body=%s", s)
	}
	if strings.Contains(s, "db timeout") || strings.Contains(s, "secret") {
		t.Fatalf("internal details leaked to user; body=%s", s)
	}
	e := find(logs, "server.error")
	if e == nil || e.Level != "error" || !strings.Contains(e.Err, "db timeout") || e.Status != 500 {
		t.Fatalf("server.error not logged with the cause: %+v", e)
	}
}

func TestErrorHandlerKeepsFiberStatus(t *testing.T) {
	app := errorApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/gone", nil))
	if err != nil {
		t.Fatalf("test request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	if !strings.Contains(s, "Page not found") {
		t.Fatalf("friendly 404 message missing; body=%s", s)
	}
	if strings.Contains(s, "products_v2") || strings.Contains(s, "row 42") {
		t.Fatalf("internal details leaked to user; body=%s", s)
	}
}
