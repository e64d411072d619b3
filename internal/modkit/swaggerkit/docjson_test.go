package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "judolguard/internal/platform/net/http"
	kit "judolguard/internal/platform/testkit"
)

func get(t *testing.T, r phttp.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestDoc_EmbeddedDocument(t *testing.T) {
	doc, err := Doc("/api/v1")
	if err != nil {
		t.Fatalf("Doc: %v", err)
	}
	if doc["openapi"] != "3.0.3" {
		t.Fatalf("openapi = %v", doc["openapi"])
	}
	servers, _ := doc["servers"].([]any)
	if len(servers) != 1 || servers[0].(map[string]any)["url"] != "/api/v1" {
		t.Fatalf("servers = %v", doc["servers"])
	}

	paths := doc["paths"].(map[string]any)
	for _, p := range []string{"/clean", "/clean/batch", "/analyze", "/meta/lexicon", "/runs/report"} {
		if _, ok := paths[p]; !ok {
			t.Fatalf("missing path %s", p)
		}
	}
	resps := paths["/clean"].(map[string]any)["post"].(map[string]any)["responses"].(map[string]any)
	for _, c := range []string{"200", "400", "500"} {
		if _, ok := resps[c]; !ok {
			t.Fatalf("missing %s response on /clean", c)
		}
	}
	if _, ok := doc["components"].(map[string]any)["schemas"].(map[string]any)["ErrorResponse"]; !ok {
		t.Fatalf("ErrorResponse schema missing")
	}
}

func TestDoc_NormalizesVersionAndKeepsDeclaredResponses(t *testing.T) {
	kit.Swap(t, &docSource, func() []byte {
		return []byte(`{"swagger":"2.0","servers":[{"url":"/x"}],"paths":{"/p":{"get":{"responses":{"400":{"description":"mine"}}}}}}`)
	})
	doc, err := Doc("/api/v1")
	if err != nil {
		t.Fatalf("Doc: %v", err)
	}
	if _, ok := doc["swagger"]; ok || doc["openapi"] != "3.0.3" {
		t.Fatalf("version not normalized: %v", doc)
	}
	if doc["servers"].([]any)[0].(map[string]any)["url"] != "/x" {
		t.Fatalf("declared servers replaced")
	}
	resps := doc["paths"].(map[string]any)["/p"].(map[string]any)["get"].(map[string]any)["responses"].(map[string]any)
	if resps["400"].(map[string]any)["description"] != "mine" {
		t.Fatalf("declared 400 overwritten")
	}
	ex := resps["500"].(map[string]any)["content"].(map[string]any)["application/json"].(map[string]any)["example"]
	raw, _ := json.Marshal(ex)
	var wire map[string]any
	_ = json.Unmarshal(raw, &wire)
	if wire["status_code"] != float64(500) || wire["error"] != "internal error" {
		t.Fatalf("500 example %s", raw)
	}
}

func TestRegister_AppliesMutators(t *testing.T) {
	kit.Swap(t, &mutators, nil)
	Register(nil)
	Register(func(doc map[string]any) { doc["x-pack"] = "v1" })
	doc, err := Doc("/api/v1")
	if err != nil || doc["x-pack"] != "v1" {
		t.Fatalf("mutator not applied: %v", err)
	}
}

func TestMount(t *testing.T) {
	off := phttp.AdaptChi(chi.NewRouter())
	Mount(off, "/api/v1", false)
	if rr := get(t, off, "/api/docs/doc.json"); rr.Code != http.StatusNotFound {
		t.Fatalf("disabled docs served: %d", rr.Code)
	}

	on := phttp.AdaptChi(chi.NewRouter())
	Mount(on, "/api/v1", true)
	if rr := get(t, on, "/api/docs"); rr.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect code = %d", rr.Code)
	}
	rr := get(t, on, "/api/docs/doc.json")
	if rr.Code != http.StatusOK || rr.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("doc code = %d", rr.Code)
	}

	kit.Swap(t, &docSource, func() []byte { return []byte("{") })
	rr = get(t, on, "/api/docs/doc.json")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("broken doc code = %d", rr.Code)
	}
}
