package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ayusman/kathak/internal/app"
	"github.com/ayusman/kathak/internal/gesture"
	"github.com/ayusman/kathak/internal/store"
)

func TestServer_HealthEndpoint(t *testing.T) {
	s := New(Config{})

	t.Run("returns 200 with JSON response", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}

		var response map[string]interface{}
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if response["status"] != "ok" {
			t.Errorf("expected status ok, got %v", response["status"])
		}
	})

	t.Run("rejects non-GET methods", func(t *testing.T) {
		methods := []string{http.MethodPost, http.MethodPut, http.MethodDelete}
		for _, method := range methods {
			req := httptest.NewRequest(method, "/api/health", nil)
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, req)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("%s: expected status %d, got %d", method, http.StatusMethodNotAllowed, rec.Code)
			}
		}
	})
}

func TestServer_HealthWithApp(t *testing.T) {
	tmpDir := t.TempDir()
	st, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer st.Close()

	a, err := app.New(app.Config{
		Store:     st,
		PluginDir: tmpDir,
		Gesture:   gesture.DefaultConfig(),
	})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	if err := a.LoadProfiles(); err != nil {
		t.Fatalf("failed to load profiles: %v", err)
	}

	s := New(Config{App: a})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var response map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	for _, field := range []string{"uptime", "fps", "latency_ms", "enabled", "profile"} {
		if _, ok := response[field]; !ok {
			t.Errorf("health response missing %q field", field)
		}
	}
	if response["profile"] == "" {
		t.Error("expected an active profile in health response")
	}
}

func TestServer_StaticFiles(t *testing.T) {
	tmpDir := t.TempDir()
	indexPath := filepath.Join(tmpDir, "index.html")
	content := "<html><body>Kathak</body></html>"
	if err := os.WriteFile(indexPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	tmpDB := filepath.Join(tmpDir, "test.db")
	st, err := store.New(tmpDB)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer st.Close()

	a, err := app.New(app.Config{
		Store:     st,
		PluginDir: tmpDir,
		Gesture:   gesture.DefaultConfig(),
	})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}

	s := New(Config{StaticDir: tmpDir, App: a})

	req := httptest.NewRequest(http.MethodGet, "/index.html", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if rec.Body.String() != content {
		t.Errorf("expected body %q, got %q", content, rec.Body.String())
	}
}

func TestServer_NotFound(t *testing.T) {
	s := New(Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/nonexistent", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestNew(t *testing.T) {
	s := New(Config{StaticDir: "./static"})
	if s == nil {
		t.Fatal("New returned nil")
	}
	if s.mux == nil {
		t.Error("server mux not initialized")
	}
}
