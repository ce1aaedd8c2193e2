package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nagyist/rover-android/pkg/buildinfo"
	"github.com/nagyist/rover-android/pkg/cache"
	rerrors "github.com/nagyist/rover-android/pkg/errors"
	"github.com/nagyist/rover-android/pkg/observability"
	"github.com/nagyist/rover-android/pkg/pipeline"
	"github.com/nagyist/rover-android/pkg/store"
)

const cardRequest = `{
  "document": {
    "name": "card",
    "width": 100,
    "root": {
      "type": "vstack",
      "spacing": 4,
      "children": [
        {"type": "text", "id": "title", "text": "Hello"},
        {"type": "rectangle", "id": "bar", "fill": "#ff0000", "modifiers": {"frame": {"height": 20}}}
      ]
    }
  }
}`

func newTestServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, nil)
	return New(Config{}, runner, st, nil), st
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorDetail {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Version != buildinfo.Get() {
		t.Errorf("body = %+v", body)
	}
}

func TestLayoutRecordsRun(t *testing.T) {
	s, st := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/layout", cardRequest)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var got layoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Document != "card" || got.Size.Width != 100 || got.Cached {
		t.Errorf("response = %+v, want card 100 wide, uncached", got)
	}
	if got.Constraints != "≤100x640" {
		t.Errorf("Constraints = %q, want ≤100x640", got.Constraints)
	}
	if got.Placement == nil || got.Boxes != got.Placement.Count() {
		t.Errorf("Boxes = %d, placement %v", got.Boxes, got.Placement)
	}
	if st.Len() != 1 {
		t.Errorf("stored runs = %d, want 1", st.Len())
	}

	again := do(t, s, http.MethodPost, "/v1/layout", cardRequest)
	var second layoutResponse
	_ = json.Unmarshal(again.Body.Bytes(), &second)
	if !second.Cached || second.RunID == got.RunID {
		t.Errorf("second response cached=%v run=%s, want a cached layout in a new run", second.Cached, second.RunID)
	}

	rec = do(t, s, http.MethodGet, "/v1/runs/"+got.RunID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET run status = %d", rec.Code)
	}
	var run store.Run
	if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
		t.Fatal(err)
	}
	if run.ID != got.RunID || run.Document != "card" || len(run.DocumentHash) != 64 || run.Placement == nil {
		t.Errorf("run = %+v", run)
	}

	rec = do(t, s, http.MethodGet, "/v1/runs?document=card&limit=1", "")
	var list struct {
		Runs []store.Run `json:"runs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Runs) != 1 || list.Runs[0].Placement != nil {
		t.Errorf("list = %+v, want one run without its tree", list.Runs)
	}

	if rec := do(t, s, http.MethodDelete, "/v1/runs/"+got.RunID, ""); rec.Code != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want 204", rec.Code)
	}
	rec = do(t, s, http.MethodGet, "/v1/runs/"+got.RunID, "")
	if rec.Code != http.StatusNotFound || decodeError(t, rec).Code != rerrors.ErrCodeNotFound {
		t.Errorf("GET deleted run = %d %s", rec.Code, rec.Body)
	}
}

func TestRender(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/render?format=png", cardRequest)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("body is not a PNG")
	}
	if rec.Header().Get(HeaderRunID) == "" || rec.Header().Get(HeaderCache) != "miss" {
		t.Errorf("headers = %v", rec.Header())
	}

	rec = do(t, s, http.MethodPost, "/v1/render?format=png", cardRequest)
	if got := rec.Header().Get(HeaderCache); got != "hit" {
		t.Errorf("second %s = %q, want hit", HeaderCache, got)
	}

	rec = do(t, s, http.MethodPost, "/v1/render", cardRequest)
	if ct := rec.Header().Get("Content-Type"); rec.Code != http.StatusOK || ct != "application/json" {
		t.Errorf("default render = %d %q, want 200 application/json", rec.Code, ct)
	}
}

func TestErrors(t *testing.T) {
	s, _ := newTestServer(t)
	s.cfg.MaxBodyBytes = 200

	tests := []struct {
		name   string
		target string
		body   string
		status int
		code   rerrors.Code
	}{
		{"malformed", "/v1/layout", `{"document": `, http.StatusBadRequest, rerrors.ErrCodeInvalidFormat},
		{"unknown field", "/v1/layout", `{"doc": {}}`, http.StatusBadRequest, rerrors.ErrCodeInvalidFormat},
		{"no document", "/v1/layout", `{"width": 10}`, http.StatusBadRequest, rerrors.ErrCodeInvalidInput},
		{"invalid document", "/v1/layout", `{"document": {"root": {"type": "button"}}}`, http.StatusBadRequest, rerrors.ErrCodeInvalidDocument},
		{"unknown format", "/v1/render?format=pdf", `{"document": {"root": {"type": "empty"}}}`, http.StatusBadRequest, rerrors.ErrCodeInvalidFormat},
		{"two formats", "/v1/render", `{"document": {"root": {"type": "empty"}}, "formats": ["png", "dot"]}`, http.StatusBadRequest, rerrors.ErrCodeInvalidInput},
		{"too large", "/v1/layout", `{"document": {"name": "` + strings.Repeat("x", 300) + `"}}`, http.StatusRequestEntityTooLarge, rerrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body)
			}
			if got := decodeError(t, rec).Code; got != tt.code {
				t.Errorf("code = %q, want %q", got, tt.code)
			}
		})
	}

	if rec := do(t, s, http.MethodGet, "/v1/runs?limit=many", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, want 400", rec.Code)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu        sync.Mutex
	responses []string
	errors    int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses = append(h.responses, method+" "+route+" "+http.StatusText(status))
}

func (h *recordingHTTPHooks) OnError(context.Context, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors++
}

func TestHTTPHooksSeeRoutePatterns(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	s, _ := newTestServer(t)
	do(t, s, http.MethodGet, "/v1/runs/does-not-exist", "")
	do(t, s, http.MethodGet, "/healthz", "")

	want := []string{"GET /v1/runs/{id} Not Found", "GET /healthz OK"}
	if len(hooks.responses) != len(want) {
		t.Fatalf("responses = %q, want %q", hooks.responses, want)
	}
	for i := range want {
		if hooks.responses[i] != want[i] {
			t.Errorf("response %d = %q, want %q", i, hooks.responses[i], want[i])
		}
	}
	if hooks.errors != 1 {
		t.Errorf("errors = %d, want 1", hooks.errors)
	}
}

func TestListenAndServeStopsWithContext(t *testing.T) {
	s := New(Config{Addr: "127.0.0.1:0"}, nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe() did not return after cancel")
	}
}

func TestStats(t *testing.T) {
	counters := observability.NewCounters()
	counters.Register()
	defer observability.Reset()

	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, nil)
	s := New(Config{Stats: counters}, runner, nil, nil)

	for i := 0; i < 2; i++ {
		if rec := do(t, s, http.MethodPost, "/v1/layout", cardRequest); rec.Code != http.StatusCreated && rec.Code != http.StatusOK {
			t.Fatalf("POST /v1/layout status = %d: %s", rec.Code, rec.Body)
		}
	}

	rec := do(t, s, http.MethodGet, "/v1/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /v1/stats status = %d", rec.Code)
	}
	var got observability.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if got.Layouts != 1 {
		t.Errorf("Layouts = %d, want 1 (second request served from cache)", got.Layouts)
	}
	if c := got.Cache["layout"]; c.Hits != 1 || c.Misses != 1 || c.Sets != 1 {
		t.Errorf("Cache[layout] = %+v, want one hit, miss and set", c)
	}
	if got.Responses["2xx"] != 2 {
		t.Errorf("Responses = %v, want 2xx:2", got.Responses)
	}

	plain, _ := newTestServer(t)
	if rec := do(t, plain, http.MethodGet, "/v1/stats", ""); rec.Code != http.StatusNotFound {
		t.Errorf("GET /v1/stats without counters status = %d, want 404", rec.Code)
	}
}
