package logout

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage"

	"github.com/memoriam-dev/memoriam/internal/config"
	"github.com/memoriam-dev/memoriam/internal/db/models"
	websess "github.com/memoriam-dev/memoriam/internal/web/session"
)

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

func newTestApp(t *testing.T, cfg *config.Config) (*fiber.App, *testStorage) {
	t.Helper()

	store := &testStorage{data: make(map[string][]byte)}
	websess.Init(store)

	app := fiber.New()

	var s Service
	s.Init(app, cfg)

	return app, store
}

func TestLogout_DestroysSessionAndClearsCookie(t *testing.T) {
	app, store := newTestApp(t, &config.Config{})

	sessionID := websess.GenerateSessionID()

	data := &websess.Data{User: models.User{ID: 1, Username: "root", IsAdmin: true}}
	if err := data.Write(sessionID, time.Minute); err != nil {
		t.Fatalf("failed to write session: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, Path, nil)
	req.AddCookie(&http.Cookie{Name: websess.CookieName, Value: sessionID})

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 Found, got %d", resp.StatusCode)
	}

	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %s", loc)
	}

	// session data is gone from the store
	store.mu.RLock()
	_, exists := store.data[sessionID]
	store.mu.RUnlock()

	if exists {
		t.Fatal("session must be removed from the store")
	}

	// cookie is expired
	setCookie := resp.Header.Get("Set-Cookie")
	if !strings.Contains(setCookie, websess.CookieName+"=") {
		t.Fatalf("expected an expiring session cookie, got %q", setCookie)
	}

	if !strings.Contains(strings.ToLower(setCookie), "expires") {
		t.Fatalf("expected cookie expiry, got %q", setCookie)
	}
}

func TestLogout_WithoutSessionStillRedirects(t *testing.T) {
	app, _ := newTestApp(t, &config.Config{})

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		req := httptest.NewRequest(method, Path, nil)

		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("app.Test failed: %v", err)
		}

		if resp.StatusCode != http.StatusFound {
			t.Fatalf("%s: expected 302 Found, got %d", method, resp.StatusCode)
		}

		if loc := resp.Header.Get("Location"); loc != "/" {
			t.Fatalf("%s: expected redirect to /, got %s", method, loc)
		}

		_ = resp.Body.Close()
	}
}
