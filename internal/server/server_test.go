package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/assetmap/pkg/cache"
	"github.com/matzehuels/assetmap/pkg/errors"
	"github.com/matzehuels/assetmap/pkg/observability"
	"github.com/matzehuels/assetmap/pkg/pipeline"
	"github.com/matzehuels/assetmap/pkg/projection"
)

const scenario = `{
  "nodes": [
    {"id": "A", "title": "App", "systems": ["Prod", "Dev"], "groups": ["pci"], "position": {"x": 0, "y": 0}},
    {"id": "B", "title": "DB", "systems": ["Prod"], "groups": ["pci"], "position": {"x": 300, "y": 0}}
  ],
  "edges": [
    {"id": "e1", "source": "A", "target": "B", "relation_type": "DEPENDS_ON"}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := New(Config{Runner: pipeline.NewRunner(c, nil, nil)})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestProject(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/api/v1/project", scenario)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", got)
	}

	var doc pipeline.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}

	counts := make(map[projection.Role]int)
	for _, el := range doc.Elements {
		counts[el.Role]++
	}
	want := map[projection.Role]int{
		projection.RoleCompound:    2,
		projection.RoleMultiSystem: 2,
		projection.RoleInstance:    1,
		projection.RoleConnector:   1,
		projection.RoleEdge:        1,
	}
	for role, n := range want {
		if counts[role] != n {
			t.Errorf("%s elements = %d, want %d", role, counts[role], n)
		}
	}

	again := post(t, ts.URL+"/api/v1/project", scenario)
	if got := again.Header.Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
}

func TestHulls(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		regions int
	}{
		{"visible", scenario, 1},
		{"hidden", strings.Replace(scenario, `"nodes"`, `"hidden": ["pci"], "nodes"`, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/v1/hulls", tt.body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			var body hullsResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if len(body.Regions) != tt.regions || len(body.Elements) != tt.regions {
				t.Fatalf("got %d regions and %d elements, want %d", len(body.Regions), len(body.Elements), tt.regions)
			}
			for _, el := range body.Elements {
				if !el.Data.Hull || el.Style.Selectable || el.Style.Draggable {
					t.Errorf("hull element = %+v", el)
				}
			}
		})
	}
}

func TestHullsExplicitBounds(t *testing.T) {
	ts := newTestServer(t)
	body := strings.Replace(scenario, `"nodes"`,
		`"bounds": {"boxes": {"node_4": {"min_x": 1000, "min_y": 1000, "max_x": 1100, "max_y": 1040}}}, "nodes"`, 1)

	resp := post(t, ts.URL+"/api/v1/hulls", body)
	var got hullsResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got.Regions) != 1 {
		t.Fatalf("regions = %d, want 1", len(got.Regions))
	}
	if got.Regions[0].Box.MaxX < 1100 {
		t.Errorf("box %+v should cover the explicit bounds of node_4", got.Regions[0].Box)
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		format      string
		status      int
		contentType string
		contains    string
	}{
		{"dot", http.StatusOK, "text/vnd.graphviz; charset=utf-8", "cluster_system_Prod"},
		{"json", http.StatusOK, "application/json", `"isHull": true`},
		{"pdf", http.StatusBadRequest, "application/json", string(errors.ErrCodeInvalidFormat)},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/v1/render?format="+tt.format, scenario)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			var sb strings.Builder
			if _, err := io.Copy(&sb, resp.Body); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(sb.String(), tt.contains) {
				t.Errorf("body does not contain %q", tt.contains)
			}
		})
	}
}

func TestBadRequests(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		path string
		body string
		code errors.Code
	}{
		{"malformed json", "/api/v1/project", `{"nodes": [`, errors.ErrCodeInvalidFormat},
		{"duplicate node", "/api/v1/project", `{"nodes": [{"id": "A"}, {"id": "A"}]}`, errors.ErrCodeDuplicateNode},
		{"bad engine", "/api/v1/render", `{"engine": "circo"}`, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.path, tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			var body errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.code {
				t.Errorf("code = %s, want %s", body.Code, tt.code)
			}
		})
	}
}

func TestBodyLimit(t *testing.T) {
	s := New(Config{MaxBodyBytes: 16})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp := post(t, ts.URL+"/api/v1/project", scenario)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
}

func (h *recordingHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, method+" "+route)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t)
	resp := post(t, ts.URL+"/api/v1/project", scenario)
	// The response completes only after the middleware has returned.
	if _, err := io.ReadAll(resp.Body); err != nil {
		t.Fatal(err)
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.routes) != 1 || hooks.routes[0] != "POST /api/v1/project" {
		t.Errorf("routes = %v, want [POST /api/v1/project]", hooks.routes)
	}
}
