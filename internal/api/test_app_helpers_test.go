package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/avelinne/dosetrack/internal/db"
	"github.com/avelinne/dosetrack/internal/services"
	"github.com/avelinne/dosetrack/internal/storage"
	"github.com/gofiber/fiber/v2"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func newTestApp(t *testing.T, clock services.Clock) (*fiber.App, *Handler) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "dosetrack-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	blobs, err := storage.NewLocalBlobStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("create blob store: %v", err)
	}

	handler, err := NewHandler(database, testSecretKey, time.UTC, blobs, false, clock)
	if err != nil {
		t.Fatalf("create handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler
}

func performJSON(t *testing.T, app *fiber.App, method string, target string, payload any, cookie *http.Cookie) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, target, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		request.AddCookie(cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, target, err)
	}
	return response
}

func decodeJSONBody(t *testing.T, response *http.Response, out any) {
	t.Helper()

	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func responseCookie(response *http.Response, name string) *http.Cookie {
	for _, cookie := range response.Cookies() {
		if cookie.Name == name && cookie.Value != "" {
			return cookie
		}
	}
	return nil
}

func registerTestUser(t *testing.T, app *fiber.App, email string, role string) *http.Cookie {
	t.Helper()

	response := performJSON(t, app, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": "StrongPass1",
		"role":     role,
	}, nil)
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: expected status 201, got %d", email, response.StatusCode)
	}

	cookie := responseCookie(response, authCookieName)
	if cookie == nil {
		t.Fatalf("register %s: expected auth cookie", email)
	}
	return cookie
}

func createTestMedication(t *testing.T, app *fiber.App, cookie *http.Cookie, name string, deadline string) uint {
	t.Helper()

	response := performJSON(t, app, http.MethodPost, "/api/medications", map[string]string{
		"name":          name,
		"dosage":        "100mg",
		"deadline_time": deadline,
	}, cookie)

	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create medication %s: expected status 201, got %d", name, response.StatusCode)
	}

	var created struct {
		Medication struct {
			ID uint `json:"id"`
		} `json:"medication"`
	}
	decodeJSONBody(t, response, &created)
	if created.Medication.ID == 0 {
		t.Fatalf("create medication %s: expected non-zero id", name)
	}
	return created.Medication.ID
}

func switchTestRole(t *testing.T, app *fiber.App, cookie *http.Cookie, role string) *http.Cookie {
	t.Helper()

	response := performJSON(t, app, http.MethodPost, "/api/auth/role", map[string]string{"role": role}, cookie)
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("switch role to %s: expected status 200, got %d", role, response.StatusCode)
	}

	refreshed := responseCookie(response, authCookieName)
	if refreshed == nil {
		t.Fatal("expected refreshed auth cookie after role switch")
	}
	return refreshed
}
