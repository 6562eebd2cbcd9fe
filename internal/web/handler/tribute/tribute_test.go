package tribute

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/memoriam-dev/memoriam/internal/config"
	messagectl "github.com/memoriam-dev/memoriam/internal/db/controller/message"
	tributectl "github.com/memoriam-dev/memoriam/internal/db/controller/tribute"
	"github.com/memoriam-dev/memoriam/internal/db/models"
	messagehandler "github.com/memoriam-dev/memoriam/internal/web/handler/message"
)

const testPlaceholderURL = "https://via.placeholder.com/150"

// noOpViews is a minimal Fiber Views engine. It writes the "error" field
// when one is set, otherwise the template name, so tests can tell which
// page a handler rendered.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	if m, ok := data.(fiber.Map); ok {
		if v, exists := m["error"]; exists && v != nil {
			if msg, isString := v.(string); isString && msg != "" {
				_, _ = io.WriteString(w, msg)
				return nil
			}
		}
	}

	_, _ = io.WriteString(w, name)

	return nil
}

func newTestService(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.Tribute{}, &models.Message{}); err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}

	cfg := &config.Config{
		Site: config.Site{PlaceholderPhotoURL: testPlaceholderURL},
		Webserver: config.Webserver{
			PublicDir: t.TempDir(),
		},
	}

	app := fiber.New(fiber.Config{Views: noOpViews{}})

	var s Service
	s.Init(app, cfg, db)

	var ms messagehandler.Service
	ms.Init(app, cfg, db)

	return app, db
}

func performPost(t *testing.T, app *fiber.App, target string, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	return resp
}

func performGet(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	return resp
}

func TestPostCreate(t *testing.T) {
	t.Run("without photo records the placeholder and redirects home", func(t *testing.T) {
		app, db := newTestService(t)

		form := url.Values{
			"firstName":   {"Jane"},
			"lastName":    {"Doe"},
			"bio":         {"A life well lived."},
			"funeralHome": {"Restful Meadows"},
		}
		resp := performPost(t, app, CreatePath, form)

		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode != http.StatusFound {
			t.Fatalf("expected 302 Found, got %d", resp.StatusCode)
		}

		if loc := resp.Header.Get("Location"); loc != "/" {
			t.Fatalf("expected redirect to /, got %s", loc)
		}

		created, err := tributectl.GetByID(db, 1)
		if err != nil {
			t.Fatalf("expected tribute to exist: %v", err)
		}

		if created.FirstName != "Jane" || created.LastName != "Doe" {
			t.Fatalf("unexpected tribute stored: %+v", created)
		}

		if created.Photo != testPlaceholderURL {
			t.Fatalf("expected placeholder photo URL, got %q", created.Photo)
		}
	})

	t.Run("missing names render the form inline", func(t *testing.T) {
		testCases := []struct {
			name string
			form url.Values
		}{
			{name: "no first name", form: url.Values{"lastName": {"Doe"}}},
			{name: "no last name", form: url.Values{"firstName": {"Jane"}}},
			{name: "empty form", form: url.Values{}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				app, db := newTestService(t)

				resp := performPost(t, app, CreatePath, tc.form)

				defer func() {
					_ = resp.Body.Close()
				}()

				if resp.StatusCode != http.StatusOK {
					t.Fatalf("expected 200 OK on inline error, got %d", resp.StatusCode)
				}

				bodyBytes, _ := io.ReadAll(resp.Body)
				if !strings.Contains(string(bodyBytes), "First and last name are required") {
					t.Fatalf("expected validation message, got %q", string(bodyBytes))
				}

				tributes, err := tributectl.GetAll(db)
				if err != nil {
					t.Fatalf("failed to load tributes: %v", err)
				}

				if len(tributes) != 0 {
					t.Fatalf("no tribute must be created on a rejected form, got %d", len(tributes))
				}
			})
		}
	})
}

func TestGetDetail(t *testing.T) {
	t.Run("renders the tribute page", func(t *testing.T) {
		app, db := newTestService(t)

		err := tributectl.Create(db, &models.Tribute{FirstName: "Jane", LastName: "Doe"})
		if err != nil {
			t.Fatalf("failed to seed tribute: %v", err)
		}

		resp := performGet(t, app, "/tribute/1")

		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", resp.StatusCode)
		}

		bodyBytes, _ := io.ReadAll(resp.Body)
		if !strings.Contains(string(bodyBytes), DetailTemplateName) {
			t.Fatalf("expected detail template, got %q", string(bodyBytes))
		}
	})

	t.Run("unknown tribute is a 404", func(t *testing.T) {
		app, _ := newTestService(t)

		resp := performGet(t, app, "/tribute/99")

		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404 Not Found, got %d", resp.StatusCode)
		}
	})

	t.Run("malformed id is a 400", func(t *testing.T) {
		app, _ := newTestService(t)

		for _, target := range []string{"/tribute/abc", "/tribute/0", "/tribute/-1"} {
			resp := performGet(t, app, target)

			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("%s: expected 400 Bad Request, got %d", target, resp.StatusCode)
			}

			_ = resp.Body.Close()
		}
	})
}

// TestVisitorFlow walks the whole visitor path: create a tribute, view its
// empty detail page, leave a message, like it once.
func TestVisitorFlow(t *testing.T) {
	app, db := newTestService(t)

	// Create the tribute
	resp := performPost(t, app, CreatePath, url.Values{
		"firstName": {"Jane"},
		"lastName":  {"Doe"},
	})
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("create: expected 302, got %d", resp.StatusCode)
	}

	// Detail page exists with no messages yet
	resp = performGet(t, app, "/tribute/1")
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("detail: expected 200, got %d", resp.StatusCode)
	}

	messages, err := messagectl.GetByTribute(db, 1)
	if err != nil {
		t.Fatalf("failed to load messages: %v", err)
	}

	if len(messages) != 0 {
		t.Fatalf("expected no messages yet, got %d", len(messages))
	}

	// Leave a message
	resp = performPost(t, app, "/tribute/1/message", url.Values{
		"author":  {"Sam"},
		"content": {"RIP"},
	})
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("message: expected 302, got %d", resp.StatusCode)
	}

	messages, err = messagectl.GetByTribute(db, 1)
	if err != nil {
		t.Fatalf("failed to reload messages: %v", err)
	}

	if len(messages) != 1 || messages[0].Likes != 0 {
		t.Fatalf("expected one fresh message with 0 likes, got %+v", messages)
	}

	// Like it once
	resp = performPost(t, app, "/message/1/like", url.Values{})
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("like: expected 302, got %d", resp.StatusCode)
	}

	if loc := resp.Header.Get("Location"); loc != "/tribute/1" {
		t.Fatalf("like: expected redirect to /tribute/1, got %s", loc)
	}

	liked, err := messagectl.GetByID(db, messages[0].ID)
	if err != nil {
		t.Fatalf("failed to reload liked message: %v", err)
	}

	if liked.Likes != 1 {
		t.Fatalf("expected exactly 1 like, got %d", liked.Likes)
	}
}
