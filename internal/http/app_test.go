package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/http/handlers"
	"storefront/internal/repos"
	"storefront/internal/services"
)

const testSecret = "test-secret"

// fakeGoogle accepts "good:<email>" id tokens.
type fakeGoogle struct{}

func (fakeGoogle) Verify(_ context.Context, idToken string) (domain.GoogleProfile, error) {
	email, ok := strings.CutPrefix(idToken, "good:")
	if !ok || email == "" {
		return domain.GoogleProfile{}, errors.New("token audience mismatch")
	}
	return domain.GoogleProfile{Subject: "sub-" + email, Name: "Tester", Email: email, Picture: "https://pic.example/t.png"}, nil
}

type testEnv struct {
	app    *fiber.App
	db     *sqlx.DB
	store  *catalog.MemoryStore
	orders *repos.OrderRepo
	users  *repos.UserRepo
}

func newTestApp(t *testing.T, gateway services.PaymentGateway) *testEnv {
	t.Helper()
	db, err := repos.OpenDB("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if gateway == nil {
		gateway = services.MockGateway{}
	}
	cfg := config.Config{
		JWTSecret:      testSecret,
		AdminEmails:    []string{"admin@example.com"},
		PaymentTimeout: 5 * time.Second,
		ReelDelay:      3 * time.Second,
	}
	store := catalog.NewMemoryStore()
	deps := handlers.NewDeps(db, cfg, store, fakeGoogle{}, gateway)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	handlers.Register(app, deps, nil)
	return &testEnv{app: app, db: db, store: store, orders: repos.NewOrderRepo(db), users: repos.NewUserRepo(db)}
}

// signIn runs the Google sign-in for email and returns the session token and
// user id.
func (e *testEnv) signIn(t *testing.T, email string) (string, int64) {
	t.Helper()
	resp := e.do(t, "POST", "/auth/google", "", map[string]any{"id_token": "good:" + email})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("sign in: status %d", resp.StatusCode)
	}
	var body struct {
		Success bool         `json:"success"`
		JWT     string       `json:"jwt"`
		User    *domain.User `json:"user"`
	}
	decode(t, resp, &body)
	if !body.Success || body.JWT == "" || body.User == nil {
		t.Fatalf("unexpected sign in body: %+v", body)
	}
	return body.JWT, body.User.ID
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

type message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func messageOf(t *testing.T, resp *http.Response) message {
	t.Helper()
	var m message
	decode(t, resp, &m)
	return m
}
