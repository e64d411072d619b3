package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"judolguard/internal/platform/config"
	phttp "judolguard/internal/platform/net/http"
	"judolguard/internal/platform/store"
)

func TestMount_WithoutStores(t *testing.T) {
	t.Setenv("CORE_CLEAN_STEMMER", "none")

	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, Options{Config: config.New(), Store: &store.Store{}, EnableSwagger: true})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, req)
		return rr
	}

	rr := do(http.MethodPost, "/api/v1/clean", `{"text":"s g i 8 8 gacor"}`)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"cleaned":"sgi88 gacor"`) {
		t.Fatalf("clean => code=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(http.MethodPost, "/api/v1/analyze", `{"text":"DEPO 50K WD 500K DI sgi 88"}`)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"contains_judol_keywords":true`) {
		t.Fatalf("analyze => code=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(http.MethodGet, "/api/v1/meta/lexicon", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"pack_version"`) {
		t.Fatalf("lexicon => code=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(http.MethodGet, "/api/v1/meta/ready", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"skipped"`) {
		t.Fatalf("ready => code=%d body=%s", rr.Code, rr.Body.String())
	}

	// runs need postgres
	if rr = do(http.MethodPost, "/api/v1/runs/recent", `{}`); rr.Code != http.StatusNotFound {
		t.Fatalf("runs mounted without postgres: %d", rr.Code)
	}

	if rr = do(http.MethodGet, "/api/docs/doc.json", ""); rr.Code != http.StatusOK {
		t.Fatalf("docs => %d", rr.Code)
	}
}
