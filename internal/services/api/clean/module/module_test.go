package module

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"judolguard/internal/core/cleaner"
	"judolguard/internal/core/rulepack"
	"judolguard/internal/core/stemmer"
	"judolguard/internal/modkit"
	"judolguard/internal/modkit/httpkit"
	"judolguard/internal/platform/config"
	phttp "judolguard/internal/platform/net/http"
	"judolguard/internal/platform/testkit"
	cleandom "judolguard/internal/services/api/clean/domain"
)

func newRouter(t *testing.T) httpkit.Router {
	t.Helper()
	p, err := rulepack.Load()
	if err != nil {
		t.Fatalf("load pack: %v", err)
	}
	nop := zerolog.Nop()
	c, err := cleaner.New(p, stemmer.Noop{}, cleaner.DefaultOptions(), &nop)
	if err != nil {
		t.Fatalf("cleaner: %v", err)
	}

	m := New(modkit.Deps{Log: nop, Cfg: config.New()}, modkit.WithPorts(Ports{Cleaner: c}))
	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)
	return r
}

func post(t *testing.T, r httpkit.Router, path, body string) (*httptest.ResponseRecorder, json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, req)

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s: bad envelope %q", path, rr.Body.String())
	}
	return rr, env.Data
}

func TestRoutes_Clean(t *testing.T) {
	r := newRouter(t)

	rr, data := post(t, r, "/clean", `{"text":"DEPO 50K WD 500K DI sgi 88"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", rr.Code, rr.Body.String())
	}
	var out cleandom.CleanOutput
	if err := json.Unmarshal(data, &out); err != nil || out.Cleaned != "depo 50k wd 500k sgi88" {
		t.Fatalf("out=%+v err=%v", out, err)
	}

	_, data = post(t, r, "/clean", `{"text":"slot88 gacor","domain_number":"remove"}`)
	if err := json.Unmarshal(data, &out); err != nil || out.Cleaned != "slot gacor" {
		t.Fatalf("override out=%+v err=%v", out, err)
	}
}

func TestRoutes_Batch(t *testing.T) {
	r := newRouter(t)

	rr, data := post(t, r, "/clean/batch", `{"texts":["s g i 8 8","di ke dan"]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", rr.Code, rr.Body.String())
	}
	var out cleandom.BatchOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Items) != 2 || out.Items[0].Cleaned != "sgi88" || !out.Items[1].Empty || out.Items[0].ID == "" {
		t.Fatalf("out=%+v", out)
	}
}

func TestRoutes_AnalyzeAndTrace(t *testing.T) {
	r := newRouter(t)

	rr, data := post(t, r, "/analyze", `{"text":"DEPO 50K WD 500K DI sgi 88"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", rr.Code, rr.Body.String())
	}
	var a cleandom.AnalyzeOutput
	if err := json.Unmarshal(data, &a); err != nil || !a.ContainsJudolKeywords || a.Cleaned != "depo 50k wd 500k sgi88" {
		t.Fatalf("analysis=%+v err=%v", a, err)
	}

	rr, data = post(t, r, "/clean/trace", `{"text":"s g i 8 8 gacor"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", rr.Code, rr.Body.String())
	}
	var tr cleandom.TraceOutput
	if err := json.Unmarshal(data, &tr); err != nil || tr.Cleaned != "sgi88 gacor" || len(tr.Stages) == 0 {
		t.Fatalf("trace=%+v err=%v", tr, err)
	}
}

func TestRoutes_BadInput(t *testing.T) {
	r := newRouter(t)

	cases := []struct {
		name, path, body string
		code             int
	}{
		{"unknown strategy", "/clean", `{"text":"x","number":"wild"}`, http.StatusBadRequest},
		{"unknown field", "/clean", `{"text":"x","extra":1}`, http.StatusBadRequest},
		{"empty batch", "/clean/batch", `{"texts":[]}`, http.StatusBadRequest},
		{"empty body", "/clean", ``, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rr, _ := post(t, r, tc.path, tc.body)
		if rr.Code != tc.code {
			t.Fatalf("%s: code=%d body=%s", tc.name, rr.Code, rr.Body.String())
		}
	}
}

func TestNew_RequiresCleaner(t *testing.T) {
	testkit.MustPanic(t, func() { New(modkit.Deps{}) })
	testkit.MustPanic(t, func() { New(modkit.Deps{}, modkit.WithPorts(Ports{})) })
}

func TestFromConfig(t *testing.T) {
	t.Setenv("CORE_API_MAX_BATCH", "50")
	got := FromConfig(config.New())
	if got.MaxBatch != 50 || got.Workers != 4 {
		t.Fatalf("cfg = %+v", got)
	}
}
