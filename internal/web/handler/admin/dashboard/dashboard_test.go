package dashboard

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage"
	"gorm.io/gorm"

	"github.com/memoriam-dev/memoriam/internal/config"
	"github.com/memoriam-dev/memoriam/internal/db/models"
	websess "github.com/memoriam-dev/memoriam/internal/web/session"
)

// noOpViews is a minimal Fiber Views engine writing the template name.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, _ interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name)

	return nil
}

// testStorage is a minimal in-memory implementation of storage.Storage for tests.
type testStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ storage.Storage = (*testStorage)(nil)

func (s *testStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.data[key]
	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

func (s *testStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string][]byte)
	}

	buf := make([]byte, len(val))
	copy(buf, val)
	s.data[key] = buf

	return nil
}

func (s *testStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

func (s *testStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)

	return nil
}

func (s *testStorage) Close() error { return nil }

func newTestService(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory db: %v", err)
	}

	err = db.AutoMigrate(&models.Tribute{}, &models.Message{}, &models.SiteSettings{})
	if err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}

	websess.Init(&testStorage{data: make(map[string][]byte)})

	app := fiber.New(fiber.Config{Views: noOpViews{}})

	var s Service
	s.Init(app, &config.Config{}, db)

	return app, db
}

// sessionCookie establishes a session for the given user and returns the
// cookie to attach to requests.
func sessionCookie(t *testing.T, user models.User) *http.Cookie {
	t.Helper()

	sessionID := websess.GenerateSessionID()

	data := &websess.Data{User: user}
	if err := data.Write(sessionID, time.Minute); err != nil {
		t.Fatalf("failed to write session: %v", err)
	}

	return &http.Cookie{Name: websess.CookieName, Value: sessionID}
}

func performGet(t *testing.T, app *fiber.App, target string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	return resp
}

func TestGet_AdminGate(t *testing.T) {
	testCases := []struct {
		name   string
		cookie func(t *testing.T) *http.Cookie
	}{
		{
			name:   "anonymous",
			cookie: func(*testing.T) *http.Cookie { return nil },
		},
		{
			name: "logged in but not admin",
			cookie: func(t *testing.T) *http.Cookie {
				return sessionCookie(t, models.User{ID: 2, Username: "visitor", IsAdmin: false})
			},
		},
		{
			name: "stale session id",
			cookie: func(*testing.T) *http.Cookie {
				return &http.Cookie{Name: websess.CookieName, Value: "expired"}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, _ := newTestService(t)

			resp := performGet(t, app, Path, tc.cookie(t))

			defer func() {
				_ = resp.Body.Close()
			}()

			if resp.StatusCode != http.StatusFound {
				t.Fatalf("expected 302 Found, got %d", resp.StatusCode)
			}

			if loc := resp.Header.Get("Location"); loc != "/login" {
				t.Fatalf("expected redirect to /login, got %s", loc)
			}
		})
	}
}

func TestGet_AdminSeesDashboard(t *testing.T) {
	app, db := newTestService(t)

	// settings row plus one tribute so the page has content to list
	err := db.Create(&models.SiteSettings{ID: 1, HeroTitle: "In Loving Memory"}).Error
	if err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}

	if err := db.Create(&models.Tribute{FirstName: "Jane", LastName: "Doe"}).Error; err != nil {
		t.Fatalf("failed to seed tribute: %v", err)
	}

	cookie := sessionCookie(t, models.User{ID: 1, Username: "root", IsAdmin: true})
	resp := performGet(t, app, Path, cookie)

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.StatusCode)
	}

	bodyBytes, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(bodyBytes), TemplateName) {
		t.Fatalf("expected dashboard template, got %q", string(bodyBytes))
	}
}

func TestGet_MissingSettingsRowStillRenders(t *testing.T) {
	app, _ := newTestService(t)

	cookie := sessionCookie(t, models.User{ID: 1, Username: "root", IsAdmin: true})
	resp := performGet(t, app, Path, cookie)

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK without a settings row, got %d", resp.StatusCode)
	}
}
