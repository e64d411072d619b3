package middleware_test

import (
	"compress/flate"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"judolguard/internal/platform/logger"
	"judolguard/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func chain(h http.Handler, mws ...middleware.Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func TestRequestID_ReachesLogger(t *testing.T) {
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := chimw.GetReqID(r.Context())
		if got, _ := logger.IDs(r.Context()); rid == "" || got != rid {
			t.Errorf("logger id %q, chi id %q", got, rid)
		}
		if r.RemoteAddr != "203.0.113.9" {
			t.Errorf("real ip %q", r.RemoteAddr)
		}
	}), middleware.RequestID(), middleware.RealIP(), middleware.NoCache())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "rid-7")
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Cache-Control") == "" {
		t.Fatalf("NoCache did not set Cache-Control")
	}
}

func TestCompress(t *testing.T) {
	h := middleware.Compress(flate.BestSpeed)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"text":"`+strings.Repeat("gacor ", 800)+`"}`)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("encoding %q", rec.Header().Get("Content-Encoding"))
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"https://judol.example"}})(http.NotFoundHandler())
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/clean", nil)
	req.Header.Set("Origin", "https://judol.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK && rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://judol.example" {
		t.Fatalf("allow origin %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost) {
		t.Fatalf("allow methods %q", rec.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestThrottle_RejectsOverLimit(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	h := middleware.Throttle(1)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(started)
		<-release
	}))
	go h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/batch", nil))
	<-started

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/batch", nil))
	close(release)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("want 429, got %d", rec.Code)
	}
}
