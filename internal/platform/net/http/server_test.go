package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"judolguard/internal/platform/config"
	phttp "judolguard/internal/platform/net/http"
)

func TestRouter_RoutesAndMiddleware(t *testing.T) {
	r := phttp.NewServer(config.New()).Router()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Scope", "api")
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/api/v1", func(api phttp.Router) {
		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "ok") })
		api.Post("/clean", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusCreated) })
	})
	r.Handle("/raw", http.NotFoundHandler())

	for _, tc := range []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/api/v1/health", http.StatusOK},
		{http.MethodPost, "/api/v1/clean", http.StatusCreated},
		{http.MethodGet, "/api/v1/clean", http.StatusMethodNotAllowed},
		{http.MethodGet, "/raw", http.StatusNotFound},
	} {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != tc.want {
			t.Fatalf("%s %s: want %d, got %d", tc.method, tc.path, tc.want, rec.Code)
		}
		if rec.Header().Get("X-Scope") != "api" {
			t.Fatalf("%s %s: middleware not applied", tc.method, tc.path)
		}
	}
}

func TestNewServer_Addr(t *testing.T) {
	t.Setenv("API_PORT", "")
	if got := phttp.NewServer(config.New()).Addr(); got != ":4000" {
		t.Fatalf("default addr %q", got)
	}
	t.Setenv("API_PORT", ":8088")
	if got := phttp.NewServer(config.New()).Addr(); got != ":8088" {
		t.Fatalf("addr %q", got)
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	t.Setenv("API_PORT", "127.0.0.1:0")
	srv := phttp.NewServer(config.New())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestServer_RunListenError(t *testing.T) {
	t.Setenv("API_PORT", "127.0.0.1:abc")
	if err := phttp.NewServer(config.New()).Run(context.Background()); err == nil {
		t.Fatalf("expected listen error")
	}
}

func TestMountProfiler(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		r := phttp.NewServer(config.New()).Router()
		phttp.MountProfiler(r, "/debug", enabled)
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil))
		want := http.StatusNotFound
		if enabled {
			want = http.StatusOK
		}
		if rec.Code != want {
			t.Fatalf("enabled=%v: want %d, got %d", enabled, want, rec.Code)
		}
	}
}
